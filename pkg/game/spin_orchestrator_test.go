package game

import (
	"strconv"
	"testing"

	"github.com/decker502/slots/pkg/backend"
	"github.com/decker502/slots/pkg/components"
	"github.com/decker502/slots/pkg/config"
	"github.com/decker502/slots/pkg/ecs"
	"github.com/shopspring/decimal"
)

// testReelConfiguration 生成标签为 "0".."size-1" 的配置
func testReelConfiguration(reels, rows, size int) *backend.ReelConfiguration {
	rc := &backend.ReelConfiguration{ReelCount: reels, RowCount: rows}
	for i := 0; i < reels; i++ {
		track := make([]backend.Symbol, size)
		for j := range track {
			track[j] = backend.Symbol{ID: strconv.Itoa(j), Face: j % 5}
		}
		rc.SymbolTracks = append(rc.SymbolTracks, track)
	}
	return rc
}

// recordingListener 记录所有事件
type recordingListener struct {
	started   int
	stopped   []int
	revealed  int
	total     decimal.Decimal
	positions []backend.Position
	rebuilt   [][2]int
}

func (r *recordingListener) OnSpinStarted() { r.started++ }

func (r *recordingListener) OnReelStopped(i int) { r.stopped = append(r.stopped, i) }

func (r *recordingListener) OnAllReelsRevealed(total decimal.Decimal, positions []backend.Position) {
	r.revealed++
	r.total = total
	r.positions = positions
}

func (r *recordingListener) OnReelSetRebuilt(reels, rows int) {
	r.rebuilt = append(r.rebuilt, [2]int{reels, rows})
}

func newTestOrchestrator(t *testing.T, reels, rows, size int) (*SpinOrchestrator, *recordingListener) {
	t.Helper()

	o := NewSpinOrchestrator(config.DefaultReelConfig(), nil)
	rec := &recordingListener{}
	o.AddListener(rec)
	o.Queue().Push(Command{Kind: CommandReelSetChanged, Configuration: testReelConfiguration(reels, rows, size)})
	o.Tick(1)

	if got := len(o.Snapshot().Reels); got != reels {
		t.Fatalf("reel set has %d reels, want %d", got, reels)
	}
	return o, rec
}

// tickUntil 执行 Tick 直到 cond 成立，最多 limit 帧
func tickUntil(o *SpinOrchestrator, limit int, cond func() bool) bool {
	for i := 0; i < limit; i++ {
		o.Tick(1)
		if cond() {
			return true
		}
	}
	return false
}

func TestOrchestratorBuildsReelSet(t *testing.T) {
	o, rec := newTestOrchestrator(t, 5, 3, 7)

	snap := o.Snapshot()
	if snap.RowCount != 3 {
		t.Errorf("RowCount = %d, want 3", snap.RowCount)
	}
	for i, reel := range snap.Reels {
		if len(reel.Visible) != 3 || len(reel.Slots) != 7 {
			t.Errorf("reel %d: visible %d slots %d", i, len(reel.Visible), len(reel.Slots))
		}
		if reel.Phase != components.ReelPhaseIdle {
			t.Errorf("reel %d phase = %v, want idle", i, reel.Phase)
		}
		wantDir := components.ScrollDirectionDown
		if i%2 == 1 {
			wantDir = components.ScrollDirectionUp
		}
		if reel.Direction != wantDir {
			t.Errorf("reel %d direction = %d, want %d", i, reel.Direction, wantDir)
		}
	}
	if len(rec.rebuilt) != 1 || rec.rebuilt[0] != [2]int{5, 3} {
		t.Errorf("rebuilt events = %v", rec.rebuilt)
	}
}

func TestOrchestratorInvalidConfigurationKeepsReelSet(t *testing.T) {
	o, _ := newTestOrchestrator(t, 3, 3, 7)

	bad := testReelConfiguration(4, 8, 7)
	o.Queue().Push(Command{Kind: CommandReelSetChanged, Configuration: bad})
	o.Tick(1)

	if got := len(o.Snapshot().Reels); got != 3 {
		t.Errorf("invalid configuration replaced reel set: %d reels", got)
	}
}

func TestOrchestratorFullSpin(t *testing.T) {
	o, rec := newTestOrchestrator(t, 4, 3, 7)

	outcome := &backend.SpinOutcome{
		SpinID:      "s1",
		StopSymbols: []string{"3", "1", "6", "0"},
		Wins: []backend.Win{
			{SymbolID: "3", Positions: []backend.Position{{Reel: 0, Row: 0}, {Reel: 1, Row: 2}}, Amount: decimal.RequireFromString("2.5")},
			{SymbolID: "1", Positions: []backend.Position{{Reel: 1, Row: 0}}, Amount: decimal.RequireFromString("1.5")},
		},
	}

	o.Queue().Push(Command{Kind: CommandSpinRequested, SpinID: 1})
	o.Queue().Push(Command{Kind: CommandOutcomeReceived, SpinID: 1, Outcome: outcome})
	o.Tick(1)

	if rec.started != 1 {
		t.Fatalf("spin started events = %d, want 1", rec.started)
	}
	if !o.Busy() {
		t.Error("orchestrator should report busy while spinning")
	}

	// 先加速一段时间再停
	for i := 0; i < 60; i++ {
		o.Tick(1)
	}
	o.Queue().Push(Command{Kind: CommandStopRequested, SpinID: 1})

	if !tickUntil(o, 2000, func() bool { return rec.revealed > 0 }) {
		t.Fatal("wins never revealed")
	}
	for i := 0; i < 100; i++ {
		o.Tick(1)
	}

	if rec.revealed != 1 {
		t.Errorf("revealed %d times, want 1", rec.revealed)
	}
	if len(rec.stopped) != 4 {
		t.Errorf("stopped events = %v, want 4", rec.stopped)
	}
	if !rec.total.Equal(decimal.NewFromInt(4)) {
		t.Errorf("total = %s, want 4", rec.total)
	}
	if o.Busy() {
		t.Error("orchestrator should be idle after reveal")
	}

	snap := o.Snapshot()
	if !snap.Revealed || !snap.Total.Equal(decimal.NewFromInt(4)) {
		t.Errorf("snapshot reveal = %v total %s", snap.Revealed, snap.Total)
	}
	for i, reel := range snap.Reels {
		if reel.Visible[0].ID != outcome.StopSymbols[i] {
			t.Errorf("reel %d front = %q, want %q", i, reel.Visible[0].ID, outcome.StopSymbols[i])
		}
		if reel.Phase != components.ReelPhaseStopped {
			t.Errorf("reel %d phase = %v, want stopped", i, reel.Phase)
		}
		if reel.ScrollOffset != 0 {
			t.Errorf("reel %d offset = %v, want home", i, reel.ScrollOffset)
		}
	}
	if !snap.Reels[1].Visible[2].Highlighted || !snap.Reels[0].Visible[0].Highlighted {
		t.Error("winning positions should be highlighted")
	}
	if snap.Reels[2].Visible[0].Highlighted {
		t.Error("non-winning position should not be highlighted")
	}
}

func TestOrchestratorStopBeforeOutcomeIsPending(t *testing.T) {
	o, rec := newTestOrchestrator(t, 2, 3, 7)

	o.Queue().Push(Command{Kind: CommandSpinRequested, SpinID: 1})
	o.Queue().Push(Command{Kind: CommandStopRequested, SpinID: 1})
	for i := 0; i < 30; i++ {
		o.Tick(1)
	}
	for _, reel := range o.Snapshot().Reels {
		if reel.Phase != components.ReelPhaseSpinning {
			t.Fatalf("reel %d should keep spinning without outcome, phase %v", reel.Index, reel.Phase)
		}
	}

	o.Queue().Push(Command{Kind: CommandOutcomeReceived, SpinID: 1, Outcome: &backend.SpinOutcome{StopSymbols: []string{"2", "5"}}})
	o.Tick(1)
	for _, reel := range o.Snapshot().Reels {
		if reel.Phase != components.ReelPhaseDecelerating {
			t.Errorf("pending stop should arm deceleration, reel %d phase %v", reel.Index, reel.Phase)
		}
	}

	if !tickUntil(o, 2000, func() bool { return rec.revealed > 0 }) {
		t.Fatal("wins never revealed")
	}
	if !rec.total.IsZero() {
		t.Errorf("total = %s, want 0", rec.total)
	}
}

func TestOrchestratorOutcomeFailureKeepsSpinning(t *testing.T) {
	o, rec := newTestOrchestrator(t, 3, 3, 7)

	o.Queue().Push(Command{Kind: CommandSpinRequested, SpinID: 1})
	o.Queue().Push(Command{Kind: CommandOutcomeFailed, SpinID: 1, Err: errFakeBackend})
	o.Queue().Push(Command{Kind: CommandStopRequested, SpinID: 1})

	for i := 0; i < 500; i++ {
		o.Tick(1)
	}

	if rec.revealed != 0 || len(rec.stopped) != 0 {
		t.Error("reels must not stop after a failed outcome fetch")
	}
	for _, reel := range o.Snapshot().Reels {
		if reel.Phase != components.ReelPhaseSpinning {
			t.Errorf("reel %d phase = %v, want spinning", reel.Index, reel.Phase)
		}
	}
}

func TestOrchestratorRejectsMismatchedOutcome(t *testing.T) {
	o, _ := newTestOrchestrator(t, 3, 3, 7)

	o.Queue().Push(Command{Kind: CommandSpinRequested, SpinID: 1})
	o.Queue().Push(Command{Kind: CommandOutcomeReceived, SpinID: 1, Outcome: &backend.SpinOutcome{StopSymbols: []string{"1", "2"}}})
	o.Queue().Push(Command{Kind: CommandStopRequested, SpinID: 1})
	o.Tick(1)

	for _, reel := range o.Snapshot().Reels {
		if reel.Phase != components.ReelPhaseSpinning {
			t.Errorf("mismatched outcome must not arm stop, reel %d phase %v", reel.Index, reel.Phase)
		}
	}
}

func TestOrchestratorDiscardsStaleOutcome(t *testing.T) {
	o, _ := newTestOrchestrator(t, 2, 3, 7)

	o.Queue().Push(Command{Kind: CommandSpinRequested, SpinID: 1})
	o.Queue().Push(Command{Kind: CommandSpinRequested, SpinID: 2})
	o.Queue().Push(Command{Kind: CommandOutcomeReceived, SpinID: 1, Outcome: &backend.SpinOutcome{StopSymbols: []string{"1", "2"}}})
	o.Queue().Push(Command{Kind: CommandStopRequested, SpinID: 2})
	o.Tick(1)

	for _, reel := range o.Snapshot().Reels {
		if reel.Phase != components.ReelPhaseSpinning {
			t.Errorf("stale outcome must be ignored, reel %d phase %v", reel.Index, reel.Phase)
		}
	}
}

func TestOrchestratorDefersReelSetChangeWhileSpinning(t *testing.T) {
	o, rec := newTestOrchestrator(t, 3, 3, 7)

	o.Queue().Push(Command{Kind: CommandSpinRequested, SpinID: 1})
	o.Tick(1)
	o.Queue().Push(Command{Kind: CommandReelSetChanged, Configuration: testReelConfiguration(5, 4, 7)})
	o.Tick(1)

	if got := len(o.Snapshot().Reels); got != 3 {
		t.Errorf("reel set changed while spinning: %d reels", got)
	}
	if len(rec.rebuilt) != 1 {
		t.Errorf("rebuilt events = %v, want only the initial build", rec.rebuilt)
	}

	// 停稳后应用被推迟的配置
	o.Queue().Push(Command{Kind: CommandOutcomeReceived, SpinID: 1, Outcome: &backend.SpinOutcome{StopSymbols: []string{"1", "2", "3"}}})
	o.Queue().Push(Command{Kind: CommandStopRequested, SpinID: 1})
	if !tickUntil(o, 3000, func() bool { return rec.revealed > 0 }) {
		t.Fatal("spin never completed")
	}
	o.Tick(1)

	snap := o.Snapshot()
	if len(snap.Reels) != 5 || snap.RowCount != 4 {
		t.Errorf("after stop: %d reels %d rows, want 5/4", len(snap.Reels), snap.RowCount)
	}
	if last := rec.rebuilt[len(rec.rebuilt)-1]; last != [2]int{5, 4} {
		t.Errorf("last rebuild = %v, want [5 4]", last)
	}
	if o.Busy() {
		t.Error("orchestrator should be idle after the deferred rebuild")
	}
}

func TestOrchestratorHandledSpin(t *testing.T) {
	o, _ := newTestOrchestrator(t, 2, 3, 7)

	if got := o.HandledSpin(); got != 0 {
		t.Fatalf("HandledSpin() = %d before any spin, want 0", got)
	}

	o.Queue().Push(Command{Kind: CommandSpinRequested, SpinID: 3})
	if got := o.HandledSpin(); got != 0 {
		t.Errorf("HandledSpin() = %d before the tick, want 0", got)
	}
	o.Tick(1)
	if got := o.HandledSpin(); got != 3 {
		t.Errorf("HandledSpin() = %d after the tick, want 3", got)
	}
	if !o.Busy() {
		t.Error("Busy() should be true once the spin is handled")
	}
}

func TestOrchestratorSpinCancelsBounceAndHighlights(t *testing.T) {
	o, rec := newTestOrchestrator(t, 2, 3, 7)

	o.Queue().Push(Command{Kind: CommandSpinRequested, SpinID: 1})
	o.Queue().Push(Command{Kind: CommandOutcomeReceived, SpinID: 1, Outcome: &backend.SpinOutcome{
		StopSymbols: []string{"4", "4"},
		Wins:        []backend.Win{{SymbolID: "4", Positions: []backend.Position{{Reel: 0, Row: 0}, {Reel: 1, Row: 0}}, Amount: decimal.NewFromInt(1)}},
	}})
	o.Queue().Push(Command{Kind: CommandStopRequested, SpinID: 1})

	if !tickUntil(o, 2000, func() bool { return rec.revealed > 0 }) {
		t.Fatal("wins never revealed")
	}

	// 回弹仍在进行时开始新一轮旋转
	bouncing := false
	for _, id := range o.ctx.ReelIDs {
		if ecs.HasComponent[*components.BounceAnimationComponent](o.ctx.EntityManager, id) {
			bouncing = true
		}
	}
	if !bouncing {
		t.Fatal("bounce should still be running right after reveal")
	}
	o.Queue().Push(Command{Kind: CommandSpinRequested, SpinID: 2})
	o.Tick(1)

	for _, id := range o.ctx.ReelIDs {
		if ecs.HasComponent[*components.BounceAnimationComponent](o.ctx.EntityManager, id) {
			t.Error("spin must cancel in-flight bounce")
		}
	}
	snap := o.Snapshot()
	if snap.Revealed {
		t.Error("new spin should clear the previous reveal")
	}
	for _, reel := range snap.Reels {
		for _, slot := range reel.Slots {
			if slot.Highlighted {
				t.Errorf("reel %d slot %d still highlighted", reel.Index, slot.Index)
			}
		}
	}
}

func TestOrchestratorSpinWithoutReelSet(t *testing.T) {
	o := NewSpinOrchestrator(config.DefaultReelConfig(), nil)
	rec := &recordingListener{}
	o.AddListener(rec)

	o.Queue().Push(Command{Kind: CommandSpinRequested, SpinID: 1})
	o.Tick(1)

	if rec.started != 0 {
		t.Error("spin without reel set should be ignored")
	}
	if rec.revealed != 0 {
		t.Error("empty reel set must never reveal")
	}
}

func TestOrchestratorClock(t *testing.T) {
	o := NewSpinOrchestrator(config.DefaultReelConfig(), nil)
	for i := 0; i < 60; i++ {
		o.Tick(1)
	}
	if now := o.Now(); now < 0.999 || now > 1.001 {
		t.Errorf("60 nominal frames should advance 1 second, got %v", now)
	}
	o.Tick(-5)
	if now := o.Now(); now < 0.999 {
		t.Errorf("negative delta must not rewind clock, got %v", now)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	o, _ := newTestOrchestrator(t, 1, 3, 7)

	snap := o.Snapshot()
	snap.Reels[0].Slots[0].ID = "mutated"

	if o.Snapshot().Reels[0].Slots[0].ID == "mutated" {
		t.Error("snapshot must not share memory with the reel set")
	}
}

func TestCommandQueue(t *testing.T) {
	q := NewCommandQueue()
	if q.Drain() != nil {
		t.Error("empty queue should drain to nil")
	}

	q.Push(Command{Kind: CommandSpinRequested, SpinID: 1})
	q.Push(Command{Kind: CommandStopRequested, SpinID: 1})
	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}

	cmds := q.Drain()
	if len(cmds) != 2 || cmds[0].Kind != CommandSpinRequested || cmds[1].Kind != CommandStopRequested {
		t.Errorf("unexpected drain order: %v", cmds)
	}
	if q.Len() != 0 {
		t.Error("queue should be empty after drain")
	}
}

func TestCommandKindString(t *testing.T) {
	if CommandOutcomeFailed.String() != "OutcomeFailed" {
		t.Errorf("String() = %q", CommandOutcomeFailed.String())
	}
	if CommandKind(42).String() != "Unknown" {
		t.Error("unknown kind should stringify as Unknown")
	}
}
