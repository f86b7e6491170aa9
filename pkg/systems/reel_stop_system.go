package systems

import (
	"github.com/decker502/slots/pkg/components"
	"github.com/decker502/slots/pkg/ecs"
	"github.com/decker502/slots/pkg/logger"
	"go.uber.org/zap"
)

// ReelStopSystem 停轴对齐系统
//
// 对每个已降到最低速度（CanStop）的转轴，同时检查：
//  1. 滚动偏移在起始位置容差内
//  2. 最前槽位的符号等于目标符号
//
// 两者同时满足才停轴；否则继续以最低速度滚动，直到某次回绕后满足。
// 目标符号不在符号带中时转轴会一直滚动（仅在下发停止指令时告警）。
type ReelStopSystem struct {
	logger *zap.Logger
}

// NewReelStopSystem 创建停轴对齐系统
func NewReelStopSystem(l *zap.Logger) *ReelStopSystem {
	return &ReelStopSystem{logger: logger.OrNop(l).Named("ReelStopSystem")}
}

// Update 检查并完成停轴
//
// 返回:
//   - []int: 本帧停轴的列索引（按列顺序）
func (s *ReelStopSystem) Update(ctx *SimulationContext) []int {
	var stopped []int
	for _, id := range ctx.ReelIDs {
		reel, track, ok := ctx.reelByID(id)
		if !ok || !reel.CanStop {
			continue
		}

		if !components.IsAtHome(reel, ctx.Config.Stop.Tolerance) {
			continue
		}
		if track.Front().ID != reel.TargetStopSymbol {
			continue
		}

		s.finalize(ctx, id, reel)
		stopped = append(stopped, reel.Index)
	}
	return stopped
}

// finalize 停轴：清除运动标志、重置减速率、标记可展示中奖并启动回弹
func (s *ReelStopSystem) finalize(ctx *SimulationContext, id ecs.EntityID, reel *components.ReelComponent) {
	reel.CanMove = false
	reel.Velocity = 0
	reel.DecelerationRate = ctx.Config.Motion.BaseDecelerationRate
	reel.CanShowWin = true
	reel.CanStop = false

	bounce := ctx.Config.Bounce
	if bounce.Oscillations > 0 {
		ecs.AddComponent(ctx.EntityManager, id, &components.BounceAnimationComponent{
			Kind:         components.AnimationKindBounce,
			Start:        ctx.Now,
			Duration:     ctx.Config.BounceDuration(),
			Amplitude:    bounce.Amplitude,
			Oscillations: bounce.Oscillations,
			Direction:    components.ScrollDirectionDown,
		})
	}

	s.logger.Debug("reel stopped",
		zap.Int("reel", reel.Index),
		zap.String("symbol", reel.TargetStopSymbol),
		zap.Float64("offset", reel.ScrollOffset))
}
