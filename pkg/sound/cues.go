// Package sound 合成转轴音效
//
// 音效全部由正弦波实时合成，不依赖音频资源文件。同一组音效既可以交给
// beep 的 speaker 播放（终端版），也可以渲染成 PCM 交给 ebiten 播放（桌面版）。
package sound

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Cue 音效类型
type Cue int

const (
	// CueSpinStart 开始旋转
	CueSpinStart Cue = iota
	// CueReelStop 单列停轴
	CueReelStop
	// CueWin 中奖展示
	CueWin
)

// AllCues 所有音效（用于预渲染）
var AllCues = []Cue{CueSpinStart, CueReelStop, CueWin}

func (c Cue) String() string {
	switch c {
	case CueSpinStart:
		return "spin-start"
	case CueReelStop:
		return "reel-stop"
	case CueWin:
		return "win"
	default:
		return "unknown"
	}
}

// note 单个音符
type note struct {
	freq     float64
	duration time.Duration
	release  time.Duration
}

var cueNotes = map[Cue][]note{
	// C5 → E5 上行
	CueSpinStart: {
		{freq: 523.25, duration: 60 * time.Millisecond, release: 30 * time.Millisecond},
		{freq: 659.25, duration: 80 * time.Millisecond, release: 50 * time.Millisecond},
	},
	// 低频短促的"咔哒"
	CueReelStop: {
		{freq: 196.0, duration: 50 * time.Millisecond, release: 40 * time.Millisecond},
	},
	// C6 E6 G6 琶音
	CueWin: {
		{freq: 1046.5, duration: 90 * time.Millisecond, release: 40 * time.Millisecond},
		{freq: 1318.51, duration: 90 * time.Millisecond, release: 40 * time.Millisecond},
		{freq: 1567.98, duration: 180 * time.Millisecond, release: 120 * time.Millisecond},
	},
}

// NewCueStreamer 创建音效流
//
// 参数:
//   - cue: 音效类型
//   - sr: 采样率
//   - volume: 线性音量 0.0 ~ 1.0，0 时静音
//
// 返回:
//   - beep.Streamer: 有限长度的音效流
//   - error: 未知音效或频率超出采样率允许范围
func NewCueStreamer(cue Cue, sr beep.SampleRate, volume float64) (beep.Streamer, error) {
	notes, ok := cueNotes[cue]
	if !ok {
		return nil, fmt.Errorf("unknown cue %d", cue)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			return nil, fmt.Errorf("cue %s: %w", cue, err)
		}
		length := sr.N(n.duration)
		parts = append(parts, newRelease(beep.Take(length, tone), length, sr.N(n.release)))
	}

	return withVolume(beep.Seq(parts...), volume), nil
}

// Duration 音效总时长
func Duration(cue Cue) time.Duration {
	var total time.Duration
	for _, n := range cueNotes[cue] {
		total += n.duration
	}
	return total
}

// withVolume 线性音量转换为 effects.Volume（以 2 为底）
// math.Log2(0) 为 -Inf，因此 0 音量直接静音
func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(volume)}
}

// release 在音符结尾做线性淡出，避免截断产生爆音
type release struct {
	streamer beep.Streamer
	position int
	total    int
	fade     int
}

func newRelease(s beep.Streamer, total, fade int) beep.Streamer {
	if fade > total {
		fade = total
	}
	return &release{streamer: s, total: total, fade: fade}
}

func (r *release) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = r.streamer.Stream(samples)
	start := r.total - r.fade
	for i := 0; i < n; i++ {
		if r.position >= start && r.fade > 0 {
			vol := float64(r.total-r.position) / float64(r.fade)
			if vol < 0 {
				vol = 0
			}
			samples[i][0] *= vol
			samples[i][1] *= vol
		}
		r.position++
	}
	return n, ok
}

func (r *release) Err() error { return r.streamer.Err() }
