package systems

import (
	"testing"

	"github.com/decker502/slots/pkg/components"
)

func TestAdvance(t *testing.T) {
	tests := []struct {
		name      string
		offset    float64
		velocity  float64
		direction int
		deltaTime float64
		want      float64
	}{
		{"down small step", 0, 13, components.ScrollDirectionDown, 1, 13},
		{"up small step", 0, 13, components.ScrollDirectionUp, 1, -13},
		{"down clamps at boundary", 70, 13, components.ScrollDirectionDown, 1, 80},
		{"up clamps at boundary", -70, 13, components.ScrollDirectionUp, 1, -80},
		{"speed above pitch is capped", 0, 500, components.ScrollDirectionDown, 1, 80},
		{"delta time scales step", 0, 10, components.ScrollDirectionDown, 2.5, 25},
		{"zero velocity", 40, 0, components.ScrollDirectionDown, 1, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advance(tt.offset, tt.velocity, tt.direction, tt.deltaTime, 0, 80)
			if got != tt.want {
				t.Errorf("Advance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldWrap(t *testing.T) {
	if !ShouldWrap(80, components.ScrollDirectionDown, 0, 80) {
		t.Error("downward offset at home+pitch should wrap")
	}
	if ShouldWrap(79.9, components.ScrollDirectionDown, 0, 80) {
		t.Error("downward offset below boundary should not wrap")
	}
	if !ShouldWrap(-80, components.ScrollDirectionUp, 0, 80) {
		t.Error("upward offset at home-pitch should wrap")
	}
	if ShouldWrap(80, components.ScrollDirectionUp, 0, 80) {
		t.Error("upward reel must not wrap on downward boundary")
	}
}

func TestMoveAndWrapDown(t *testing.T) {
	track := components.NewSymbolTrack(labeledTrack(5), 80)
	reel := &components.ReelComponent{Direction: components.ScrollDirectionDown, Velocity: 50, CanMove: true}

	if MoveAndWrap(reel, track, 80, 1) {
		t.Fatal("first step should not wrap")
	}
	if !MoveAndWrap(reel, track, 80, 1) {
		t.Fatal("second step should wrap")
	}

	if reel.ScrollOffset != reel.HomeOffset {
		t.Errorf("offset should reset to home after wrap, got %v", reel.ScrollOffset)
	}
	if track.Front().ID != "4" {
		t.Errorf("expected last symbol moved to front, got %q", track.Front().ID)
	}
	for i, slot := range track.Slots {
		if slot.Position != float64(i)*80 {
			t.Errorf("slot %d position = %v, want %v", i, slot.Position, float64(i)*80)
		}
	}
}

func TestMoveAndWrapUp(t *testing.T) {
	track := components.NewSymbolTrack(labeledTrack(5), 80)
	reel := &components.ReelComponent{Direction: components.ScrollDirectionUp, Velocity: 80, CanMove: true}

	if !MoveAndWrap(reel, track, 80, 1) {
		t.Fatal("full pitch step should wrap")
	}
	if track.Front().ID != "1" {
		t.Errorf("expected first symbol moved to back, got front %q", track.Front().ID)
	}
	if got := track.Slots[track.Len()-1].ID; got != "0" {
		t.Errorf("expected back %q, got %q", "0", got)
	}
}

func TestReelMotionSystemSkipsStoppedReels(t *testing.T) {
	ctx := newTestContext(t, 2, 3, 5)
	reel, _, _ := ctx.Reel(0)
	reel.CanMove = true
	reel.Velocity = 20
	idle, _, _ := ctx.Reel(1)
	idle.Velocity = 20

	NewReelMotionSystem(nil).Update(ctx, 1)

	if reel.ScrollOffset != 20 {
		t.Errorf("moving reel offset = %v, want 20", reel.ScrollOffset)
	}
	if idle.ScrollOffset != 0 {
		t.Errorf("reel without CanMove should stay put, got %v", idle.ScrollOffset)
	}
}

func TestMotionPreservesTrackMultiset(t *testing.T) {
	ctx := newTestContext(t, 2, 3, 7)
	for i := 0; i < 2; i++ {
		reel, _, _ := ctx.Reel(i)
		reel.CanMove = true
		reel.Velocity = 37
	}

	for tick := 0; tick < 200; tick++ {
		NewReelMotionSystem(nil).Update(ctx, 1)
	}

	for i := 0; i < 2; i++ {
		_, track, _ := ctx.Reel(i)
		if track.Len() != 7 {
			t.Fatalf("reel %d track length = %d, want 7", i, track.Len())
		}
		seen := make(map[string]int)
		for _, id := range track.IDs() {
			seen[id]++
		}
		for _, sym := range labeledTrack(7) {
			if seen[sym.ID] != 1 {
				t.Errorf("reel %d symbol %q count = %d, want 1", i, sym.ID, seen[sym.ID])
			}
		}
	}
}
