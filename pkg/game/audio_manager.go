package game

import (
	"github.com/decker502/slots/pkg/backend"
	"github.com/decker502/slots/pkg/logger"
	"github.com/decker502/slots/pkg/sound"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AudioManager 音频管理器
// 职责：
//   - 预渲染合成音效并缓存播放器
//   - 播放时应用 SettingsManager 中的音量设置
//   - 作为 Listener 响应旋转、停轴和中奖事件
//
// audio.Context 为 nil 时所有播放调用都返回 false（无声模式）。
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager
	players         map[sound.Cue]*audio.Player
	logger          *zap.Logger
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
//   - l: 日志器，可为 nil
func NewAudioManager(ctx *audio.Context, sm *SettingsManager, l *zap.Logger) *AudioManager {
	am := &AudioManager{
		context:         ctx,
		settingsManager: sm,
		players:         make(map[sound.Cue]*audio.Player),
		logger:          logger.OrNop(l).Named("AudioManager"),
	}
	am.preload()
	return am
}

// preload 预渲染所有音效，避免首次播放时的延迟
func (am *AudioManager) preload() {
	if am.context == nil {
		return
	}
	for _, cue := range sound.AllCues {
		pcm, err := sound.RenderCue(cue, am.context.SampleRate(), 1.0)
		if err != nil {
			am.logger.Warn("failed to render cue", zap.Stringer("cue", cue), zap.Error(err))
			continue
		}
		am.players[cue] = am.context.NewPlayerFromBytes(pcm)
	}
	am.logger.Debug("cues preloaded", zap.Int("count", len(am.players)))
}

// PlayCue 播放音效
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlayCue(cue sound.Cue) bool {
	volume := am.volume()
	if volume <= 0 {
		return false
	}

	player, ok := am.players[cue]
	if !ok {
		return false
	}

	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		am.logger.Warn("failed to rewind cue", zap.Stringer("cue", cue), zap.Error(err))
	}
	player.Play()
	return true
}

// volume 当前实际音量
func (am *AudioManager) volume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().EffectiveVolume()
	}
	return DefaultSettings().EffectiveVolume()
}

// OnSpinStarted 开始旋转音效
func (am *AudioManager) OnSpinStarted() {
	am.PlayCue(sound.CueSpinStart)
}

// OnReelStopped 停轴音效
func (am *AudioManager) OnReelStopped(int) {
	am.PlayCue(sound.CueReelStop)
}

// OnAllReelsRevealed 有派彩时播放中奖音效
func (am *AudioManager) OnAllReelsRevealed(total decimal.Decimal, _ []backend.Position) {
	if total.IsPositive() {
		am.PlayCue(sound.CueWin)
	}
}
