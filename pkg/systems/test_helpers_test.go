package systems

import (
	"strconv"
	"testing"

	"github.com/decker502/slots/pkg/backend"
	"github.com/decker502/slots/pkg/config"
	"github.com/decker502/slots/pkg/ecs"
)

// labeledTrack 生成标签为 "0".."size-1" 的符号带
func labeledTrack(size int) []backend.Symbol {
	track := make([]backend.Symbol, size)
	for i := range track {
		track[i] = backend.Symbol{ID: strconv.Itoa(i), Face: i % 4}
	}
	return track
}

// newTestContext 创建 reels 列、每列 size 个符号的模拟上下文
func newTestContext(t *testing.T, reels, rows, size int) *SimulationContext {
	t.Helper()

	rc := &backend.ReelConfiguration{ReelCount: reels, RowCount: rows}
	for i := 0; i < reels; i++ {
		rc.SymbolTracks = append(rc.SymbolTracks, labeledTrack(size))
	}
	if err := rc.Validate(); err != nil {
		t.Fatalf("invalid test configuration: %v", err)
	}

	ctx := NewSimulationContext(ecs.NewEntityManager(), config.DefaultReelConfig())
	ctx.BuildReelSet(rc)
	return ctx
}

// step 按编排顺序执行一帧：运动、速度、停轴、回弹
func step(ctx *SimulationContext, deltaTime float64) []int {
	ctx.Now += deltaTime / ctx.Config.NominalFrameRate
	NewReelMotionSystem(nil).Update(ctx, deltaTime)
	NewReelSpeedSystem().Update(ctx)
	stopped := NewReelStopSystem(nil).Update(ctx)
	NewBounceAnimationSystem().Update(ctx)
	return stopped
}
