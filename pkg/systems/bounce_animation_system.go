package systems

import (
	"math"

	"github.com/decker502/slots/pkg/components"
	"github.com/decker502/slots/pkg/ecs"
	"github.com/decker502/slots/pkg/utils"
)

// BounceAnimationSystem 回弹动画系统
//
// 每帧根据模拟时钟计算回弹位移，动画结束时把偏移精确复位到起始位置
// 并移除组件。
type BounceAnimationSystem struct{}

// NewBounceAnimationSystem 创建回弹动画系统
func NewBounceAnimationSystem() *BounceAnimationSystem {
	return &BounceAnimationSystem{}
}

// Update 推进所有回弹动画
func (s *BounceAnimationSystem) Update(ctx *SimulationContext) {
	em := ctx.EntityManager
	for _, id := range ecs.GetEntitiesWith2[*components.BounceAnimationComponent, *components.ReelComponent](em) {
		bounce, _ := ecs.GetComponent[*components.BounceAnimationComponent](em, id)
		reel, _ := ecs.GetComponent[*components.ReelComponent](em, id)

		if !bounce.InProgress(ctx.Now) {
			reel.ScrollOffset = reel.HomeOffset
			ecs.RemoveComponent[*components.BounceAnimationComponent](em, id)
			continue
		}

		reel.ScrollOffset = reel.HomeOffset + BounceDisplacement(bounce, ctx.Now)
	}
}

// BounceDisplacement 计算 now 时刻相对起始位置的回弹位移
//
// 总进度被均分为 Oscillations 段，每段是一次正弦往返。
func BounceDisplacement(b *components.BounceAnimationComponent, now float64) float64 {
	if b.Oscillations <= 0 {
		return 0
	}
	scaled := b.GetProgress(now) * float64(b.Oscillations)
	_, local := math.Modf(scaled)
	return float64(b.Direction) * b.Amplitude * utils.YoyoSine(local)
}

// CancelBounce 取消转轴上进行中的回弹动画，偏移复位到起始位置
//
// 新一轮旋转开始前必须调用，否则残留动画会与新的运动争夺偏移。
//
// 返回:
//   - bool: 是否确实取消了动画
func CancelBounce(em *ecs.EntityManager, id ecs.EntityID) bool {
	if !ecs.HasComponent[*components.BounceAnimationComponent](em, id) {
		return false
	}
	ecs.RemoveComponent[*components.BounceAnimationComponent](em, id)
	if reel, ok := ecs.GetComponent[*components.ReelComponent](em, id); ok {
		reel.ScrollOffset = reel.HomeOffset
	}
	return true
}
