package systems

import (
	"reflect"
	"testing"

	"github.com/decker502/slots/pkg/backend"
	"github.com/shopspring/decimal"
)

func TestRevealBarrierFiresOnce(t *testing.T) {
	ctx := newTestContext(t, 4, 3, 7)
	ctx.Outcome = &backend.SpinOutcome{
		StopSymbols: []string{"0", "0", "0", "0"},
		Wins: []backend.Win{
			{SymbolID: "0", Positions: []backend.Position{{Reel: 0, Row: 0}, {Reel: 1, Row: 0}}, Amount: decimal.NewFromInt(5)},
		},
	}
	system := NewWinRevealSystem(nil)

	for i := 0; i < 3; i++ {
		reel, _, _ := ctx.Reel(i)
		reel.CanShowWin = true
	}
	if _, fired := system.Update(ctx); fired {
		t.Fatal("barrier must not fire with 3 of 4 reels ready")
	}

	reel, _, _ := ctx.Reel(3)
	reel.CanShowWin = true

	result, fired := system.Update(ctx)
	if !fired {
		t.Fatal("barrier should fire once all reels are ready")
	}
	if !result.Total.Equal(decimal.NewFromInt(5)) {
		t.Errorf("total = %s, want 5", result.Total)
	}

	for i := 0; i < 4; i++ {
		r, _, _ := ctx.Reel(i)
		if r.CanShowWin {
			t.Errorf("reel %d CanShowWin should be cleared in the same tick", i)
		}
	}
	if _, fired := system.Update(ctx); fired {
		t.Error("barrier must not fire twice for one spin")
	}
}

func TestRevealBarrierEmptySet(t *testing.T) {
	ctx := newTestContext(t, 1, 1, 1)
	ctx.ReelIDs = nil
	if AllReelsReady(ctx) {
		t.Error("empty reel set must not be ready")
	}
}

func TestAggregateTotalsAndPositions(t *testing.T) {
	ctx := newTestContext(t, 3, 3, 5)
	wins := []backend.Win{
		{
			SymbolID:  "a",
			Positions: []backend.Position{{Reel: 2, Row: 1}, {Reel: 0, Row: 1}, {Reel: 1, Row: 1}},
			Amount:    decimal.RequireFromString("1.25"),
		},
		{
			SymbolID:  "b",
			Positions: []backend.Position{{Reel: 0, Row: 1}, {Reel: 0, Row: 0}, {Reel: 9, Row: 0}, {Reel: 1, Row: 42}},
			Amount:    decimal.RequireFromString("0.75"),
		},
	}

	result := NewWinRevealSystem(nil).Aggregate(ctx, wins)

	if !result.Total.Equal(decimal.NewFromInt(2)) {
		t.Errorf("total = %s, want 2", result.Total)
	}

	want := []backend.Position{{Reel: 0, Row: 0}, {Reel: 0, Row: 1}, {Reel: 1, Row: 1}, {Reel: 2, Row: 1}}
	if !reflect.DeepEqual(result.Positions, want) {
		t.Errorf("positions = %v, want %v", result.Positions, want)
	}

	_, track, _ := ctx.Reel(0)
	if !track.Slots[0].Highlighted || !track.Slots[1].Highlighted || track.Slots[2].Highlighted {
		t.Errorf("unexpected highlights on reel 0: %+v", track.Slots)
	}

	// 交换顺序后总额不变
	reversed := NewWinRevealSystem(nil).Aggregate(ctx, []backend.Win{wins[1], wins[0]})
	if !reversed.Total.Equal(result.Total) {
		t.Errorf("total depends on order: %s vs %s", reversed.Total, result.Total)
	}
	if !reflect.DeepEqual(reversed.Positions, want) {
		t.Error("highlighting should be idempotent")
	}
}

func TestAggregateNoWins(t *testing.T) {
	ctx := newTestContext(t, 2, 3, 5)
	result := NewWinRevealSystem(nil).Aggregate(ctx, nil)
	if !result.Total.IsZero() {
		t.Errorf("total = %s, want 0", result.Total)
	}
	if len(result.Positions) != 0 {
		t.Errorf("positions = %v, want none", result.Positions)
	}
}

func TestClearHighlights(t *testing.T) {
	ctx := newTestContext(t, 2, 3, 5)
	NewWinRevealSystem(nil).Aggregate(ctx, []backend.Win{
		{SymbolID: "x", Positions: []backend.Position{{Reel: 0, Row: 2}, {Reel: 1, Row: 0}}, Amount: decimal.NewFromInt(1)},
	})

	ClearHighlights(ctx)

	for i := 0; i < 2; i++ {
		_, track, _ := ctx.Reel(i)
		for j, slot := range track.Slots {
			if slot.Highlighted {
				t.Errorf("reel %d slot %d still highlighted", i, j)
			}
		}
	}
}

func TestFullSpinRevealsOnce(t *testing.T) {
	ctx := newTestContext(t, 3, 3, 7)
	ctx.Outcome = &backend.SpinOutcome{
		StopSymbols: []string{"2", "5", "6"},
		Wins: []backend.Win{
			{SymbolID: "2", Positions: []backend.Position{{Reel: 0, Row: 0}}, Amount: decimal.NewFromInt(3)},
			{SymbolID: "5", Positions: []backend.Position{{Reel: 1, Row: 0}}, Amount: decimal.NewFromInt(4)},
		},
	}
	for i, sym := range ctx.Outcome.StopSymbols {
		armStop(ctx, i, sym)
	}

	system := NewWinRevealSystem(nil)
	reveals := 0
	var total decimal.Decimal
	for tick := 0; tick < 400; tick++ {
		step(ctx, 1)
		if result, fired := system.Update(ctx); fired {
			reveals++
			total = result.Total
		}
	}

	if reveals != 1 {
		t.Fatalf("reveals = %d, want 1", reveals)
	}
	if !total.Equal(ctx.Outcome.TotalAmount()) {
		t.Errorf("total = %s, want %s", total, ctx.Outcome.TotalAmount())
	}
	for i, sym := range ctx.Outcome.StopSymbols {
		_, track, _ := ctx.Reel(i)
		if track.Front().ID != sym {
			t.Errorf("reel %d front = %q, want %q", i, track.Front().ID, sym)
		}
	}
}
