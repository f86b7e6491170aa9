package config

import "testing"

func TestReelSetOriginIsCentered(t *testing.T) {
	x, y := ReelSetOrigin(6, 7, 80)

	if got := x + 6*ReelGap/2; got != GameWindowWidth/2.0 {
		t.Errorf("reel set should be horizontally centered, center=%v", got)
	}
	if got := y + 7*80/2.0; got != GameWindowHeight/2.0 {
		t.Errorf("reel set should be vertically centered, center=%v", got)
	}
}

func TestVisibleWindow(t *testing.T) {
	tests := []struct {
		rows   int
		pitch  float64
		top    float64
		bottom float64
	}{
		{rows: 3, pitch: 80, top: 230, bottom: 470},
		{rows: 4, pitch: 80, top: 190, bottom: 510},
		{rows: 1, pitch: 100, top: 300, bottom: 400},
	}
	for _, tt := range tests {
		top, bottom := VisibleWindow(tt.rows, tt.pitch)
		if top != tt.top || bottom != tt.bottom {
			t.Errorf("VisibleWindow(%d, %v) = (%v, %v), want (%v, %v)",
				tt.rows, tt.pitch, top, bottom, tt.top, tt.bottom)
		}
	}
}
