package systems

import (
	"math"

	"github.com/decker502/slots/pkg/components"
	"github.com/decker502/slots/pkg/logger"
	"go.uber.org/zap"
)

// ReelMotionSystem 转轴运动系统
//
// 按速度推进滚动偏移，越过一个符号间距时回绕符号带。
type ReelMotionSystem struct {
	logger *zap.Logger
}

// NewReelMotionSystem 创建转轴运动系统
func NewReelMotionSystem(l *zap.Logger) *ReelMotionSystem {
	return &ReelMotionSystem{logger: logger.OrNop(l).Named("ReelMotionSystem")}
}

// Update 推进所有可移动的转轴
func (s *ReelMotionSystem) Update(ctx *SimulationContext, deltaTime float64) {
	pitch := ctx.Config.Track.Pitch
	for _, id := range ctx.ReelIDs {
		reel, track, ok := ctx.reelByID(id)
		if !ok || !reel.CanMove {
			continue
		}
		if MoveAndWrap(reel, track, pitch, deltaTime) {
			s.logger.Debug("wrapped",
				zap.Int("reel", reel.Index),
				zap.String("front", track.Front().ID))
		}
	}
}

// MoveAndWrap 推进一列转轴并在需要时回绕
//
// 回绕与重新排列在同一次调用内完成，调用结束时偏移已复位到起始位置。
//
// 返回:
//   - bool: 本次是否发生回绕
func MoveAndWrap(reel *components.ReelComponent, track *components.SymbolTrackComponent, pitch, deltaTime float64) bool {
	reel.ScrollOffset = Advance(reel.ScrollOffset, reel.Velocity, reel.Direction, deltaTime, reel.HomeOffset, pitch)

	if !ShouldWrap(reel.ScrollOffset, reel.Direction, reel.HomeOffset, pitch) {
		return false
	}

	if reel.Direction == components.ScrollDirectionDown {
		track.WrapDown(pitch)
	} else {
		track.WrapUp(pitch)
	}
	reel.ScrollOffset = reel.HomeOffset
	return true
}

// Advance 计算一帧后的滚动偏移
//
// 若整步移动不会越过下一个间距边界，则直接移动；否则钳制到
// home + direction*pitch。因此每帧最多移动一个间距，速度过高时
// 实际速度会被封顶。
func Advance(offset, velocity float64, direction int, deltaTime, home, pitch float64) float64 {
	next := offset + velocity*deltaTime*float64(direction)
	if math.Abs(home-next) < pitch {
		return next
	}
	return home + float64(direction)*pitch
}

// ShouldWrap 偏移是否到达回绕边界
//
//	向下: offset >= home + pitch
//	向上: offset <= home - pitch
func ShouldWrap(offset float64, direction int, home, pitch float64) bool {
	if direction == components.ScrollDirectionDown {
		return offset >= home+pitch
	}
	return offset <= home-pitch
}
