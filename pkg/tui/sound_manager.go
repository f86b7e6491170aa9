package tui

import (
	"sync"
	"time"

	"github.com/decker502/slots/pkg/backend"
	"github.com/decker502/slots/pkg/game"
	"github.com/decker502/slots/pkg/logger"
	"github.com/decker502/slots/pkg/sound"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(48000)

// SoundManager 终端版音效播放
//
// 所有音效混入同一个 beep.Mixer，由 speaker 持续播放。
// 未初始化（或初始化失败）时所有播放调用都是空操作。
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	settings    *game.SettingsManager
	initialized bool
	logger      *zap.Logger
}

// NewSoundManager 创建音效管理器
//
// settings 提供音量与开关，可为 nil（使用默认音量）。
func NewSoundManager(settings *game.SettingsManager, l *zap.Logger) *SoundManager {
	return &SoundManager{
		mixer:    &beep.Mixer{},
		settings: settings,
		logger:   logger.OrNop(l).Named("SoundManager"),
	}
}

// Initialize 初始化 speaker 并开始播放混音器
func (m *SoundManager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Cleanup 停止所有音效
// speaker 没有关闭接口，清空后不再产生声音
func (m *SoundManager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	m.mixer.Clear()
	m.initialized = false
}

// Play 播放音效
//
// 返回:
//   - bool: 是否加入了混音器
func (m *SoundManager) Play(cue sound.Cue) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return false
	}
	s, ok := m.streamerFor(cue)
	if !ok {
		return false
	}

	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
	return true
}

// streamerFor 按当前音量合成音效；静音时返回 false
func (m *SoundManager) streamerFor(cue sound.Cue) (beep.Streamer, bool) {
	volume := game.DefaultSettings().EffectiveVolume()
	if m.settings != nil {
		volume = m.settings.GetSettings().EffectiveVolume()
	}
	if volume <= 0 {
		return nil, false
	}

	s, err := sound.NewCueStreamer(cue, sampleRate, volume)
	if err != nil {
		m.logger.Warn("failed to synthesize cue", zap.Stringer("cue", cue), zap.Error(err))
		return nil, false
	}
	return s, true
}

func (m *SoundManager) OnSpinStarted() {
	m.Play(sound.CueSpinStart)
}

func (m *SoundManager) OnReelStopped(int) {
	m.Play(sound.CueReelStop)
}

func (m *SoundManager) OnAllReelsRevealed(total decimal.Decimal, _ []backend.Position) {
	if total.IsPositive() {
		m.Play(sound.CueWin)
	}
}
