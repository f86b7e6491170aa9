package sound

import (
	"github.com/gopxl/beep"
)

// renderChunk 每次从流中读取的采样数
const renderChunk = 512

// RenderPCM16 把有限长度的音效流渲染为 16 位小端立体声 PCM
//
// 输出格式与 ebiten audio.Context.NewPlayerFromBytes 的输入一致。
func RenderPCM16(s beep.Streamer) []byte {
	buf := make([][2]float64, renderChunk)
	out := make([]byte, 0, renderChunk*4)

	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for ch := 0; ch < 2; ch++ {
				v := toInt16(buf[i][ch])
				out = append(out, byte(v), byte(v>>8))
			}
		}
		if !ok || n == 0 {
			break
		}
	}
	return out
}

// RenderCue 按采样率渲染音效
func RenderCue(cue Cue, sampleRate int, volume float64) ([]byte, error) {
	s, err := NewCueStreamer(cue, beep.SampleRate(sampleRate), volume)
	if err != nil {
		return nil, err
	}
	return RenderPCM16(s), nil
}

func toInt16(v float64) int16 {
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	return int16(v * 32767)
}
