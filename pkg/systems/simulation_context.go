package systems

import (
	"github.com/decker502/slots/pkg/backend"
	"github.com/decker502/slots/pkg/components"
	"github.com/decker502/slots/pkg/config"
	"github.com/decker502/slots/pkg/ecs"
)

// SimulationContext 模拟上下文
//
// 由 SpinOrchestrator 持有，每帧传给所有系统。转轴实体、时钟和本次
// 旋转的出奖结果都在这里，不存在进程级全局状态。
type SimulationContext struct {
	EntityManager *ecs.EntityManager
	Config        *config.ReelConfig

	// ReelIDs 按列顺序排列的转轴实体
	ReelIDs []ecs.EntityID

	// RowCount 可见行数
	RowCount int

	// Now 模拟时钟（秒）
	Now float64

	// Outcome 本次旋转的出奖结果，整个转轴集合共享；未到达时为 nil
	Outcome *backend.SpinOutcome
}

// NewSimulationContext 创建空的模拟上下文
func NewSimulationContext(em *ecs.EntityManager, cfg *config.ReelConfig) *SimulationContext {
	return &SimulationContext{
		EntityManager: em,
		Config:        cfg,
		ReelIDs:       make([]ecs.EntityID, 0),
	}
}

// ReelCount 转轴列数
func (c *SimulationContext) ReelCount() int {
	return len(c.ReelIDs)
}

// Reel 获取第 index 列的运动状态与符号带
func (c *SimulationContext) Reel(index int) (*components.ReelComponent, *components.SymbolTrackComponent, bool) {
	if index < 0 || index >= len(c.ReelIDs) {
		return nil, nil, false
	}
	return c.reelByID(c.ReelIDs[index])
}

func (c *SimulationContext) reelByID(id ecs.EntityID) (*components.ReelComponent, *components.SymbolTrackComponent, bool) {
	reel, ok := ecs.GetComponent[*components.ReelComponent](c.EntityManager, id)
	if !ok {
		return nil, nil, false
	}
	track, ok := ecs.GetComponent[*components.SymbolTrackComponent](c.EntityManager, id)
	if !ok {
		return nil, nil, false
	}
	return reel, track, true
}

// BuildReelSet 按配置重建整个转轴集合
//
// 旧的转轴实体全部销毁，不做增量修改。调用方须先校验 rc。
func (c *SimulationContext) BuildReelSet(rc *backend.ReelConfiguration) {
	for _, id := range c.ReelIDs {
		c.EntityManager.DestroyEntity(id)
	}
	c.EntityManager.RemoveMarkedEntities()

	c.ReelIDs = make([]ecs.EntityID, 0, rc.ReelCount)
	c.RowCount = rc.RowCount
	c.Outcome = nil

	for i := 0; i < rc.ReelCount; i++ {
		id := c.EntityManager.CreateEntity()
		ecs.AddComponent(c.EntityManager, id, &components.ReelComponent{
			Index:            i,
			Direction:        c.Config.DirectionForReel(i),
			DecelerationRate: c.Config.Motion.BaseDecelerationRate,
			ScrollOffset:     c.Config.Track.HomeOffset,
			HomeOffset:       c.Config.Track.HomeOffset,
		})
		ecs.AddComponent(c.EntityManager, id, components.NewSymbolTrack(rc.SymbolTracks[i], c.Config.Track.Pitch))
		c.ReelIDs = append(c.ReelIDs, id)
	}
}
