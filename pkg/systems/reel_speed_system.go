package systems

import (
	"github.com/decker502/slots/pkg/components"
	"github.com/decker502/slots/pkg/config"
)

// ReelSpeedSystem 速度控制系统
//
// 加速：每帧 velocity += IncreaseRate，直到不低于 MaxVelocity。
// 不做钳制，最终速度可能超出上限不到一个 IncreaseRate。
//
// 减速：每帧 velocity -= DecelerationRate，减速率本身同时衰减到下限，
// 形成先快后慢的缓动。速度降到 MinVelocity 后钳制并允许停轴。
type ReelSpeedSystem struct{}

// NewReelSpeedSystem 创建速度控制系统
func NewReelSpeedSystem() *ReelSpeedSystem {
	return &ReelSpeedSystem{}
}

// Update 更新所有转轴的速度
func (s *ReelSpeedSystem) Update(ctx *SimulationContext) {
	motion := ctx.Config.Motion
	for _, id := range ctx.ReelIDs {
		reel, _, ok := ctx.reelByID(id)
		if !ok || !reel.CanMove {
			continue
		}
		if components.CanAccelerate(reel, motion.MaxVelocity) {
			Accelerate(reel, motion)
		}
		if reel.CanDecelerate {
			Decelerate(reel, motion)
		}
	}
}

// Accelerate 加速一帧
func Accelerate(reel *components.ReelComponent, motion config.MotionConfig) {
	if reel.Velocity < motion.MaxVelocity {
		reel.Velocity += motion.IncreaseRate
	}
}

// Decelerate 减速一帧
//
// 速度不高于 MinVelocity 时钳制为 MinVelocity 并置 CanStop。
// CanDecelerate 保持不变，只有下一次旋转才会清除。
//
// 返回:
//   - bool: 本帧是否已处于最低速度
func Decelerate(reel *components.ReelComponent, motion config.MotionConfig) bool {
	if reel.Velocity > motion.MinVelocity {
		reel.Velocity -= reel.DecelerationRate

		if reel.DecelerationRate > motion.DecelerationFloor {
			reel.DecelerationRate -= motion.DecelerationDecay
		}
	}

	if reel.Velocity <= motion.MinVelocity {
		reel.Velocity = motion.MinVelocity
		reel.CanStop = true
		return true
	}
	return false
}
