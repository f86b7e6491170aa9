package game

import (
	"testing"

	"github.com/decker502/slots/pkg/sound"
	"github.com/shopspring/decimal"
)

// TestAudioManagerWithoutContext 测试无音频上下文时的无声模式
func TestAudioManagerWithoutContext(t *testing.T) {
	am := NewAudioManager(nil, NewSettingsManager(nil, nil), nil)

	for _, cue := range sound.AllCues {
		if am.PlayCue(cue) {
			t.Errorf("PlayCue(%s) should fail without an audio context", cue)
		}
	}

	// 监听器回调不应 panic
	am.OnSpinStarted()
	am.OnReelStopped(0)
	am.OnAllReelsRevealed(decimal.NewFromInt(10), nil)
}

// TestAudioManagerMuted 测试关闭音效时不播放
func TestAudioManagerMuted(t *testing.T) {
	sm := NewSettingsManager(nil, nil)
	sm.SetSoundEnabled(false)
	am := NewAudioManager(nil, sm, nil)

	if am.volume() != 0 {
		t.Errorf("volume = %v, want 0 when muted", am.volume())
	}
	if am.PlayCue(sound.CueWin) {
		t.Error("muted manager should not play")
	}
}

// TestAudioManagerDefaultVolume 测试未设置 SettingsManager 时使用默认音量
func TestAudioManagerDefaultVolume(t *testing.T) {
	am := NewAudioManager(nil, nil, nil)
	if got, want := am.volume(), DefaultSettings().EffectiveVolume(); got != want {
		t.Errorf("volume = %v, want %v", got, want)
	}
}
