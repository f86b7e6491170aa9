package components

import "math"

// 滚动方向
const (
	ScrollDirectionDown = 1
	ScrollDirectionUp   = -1
)

// ReelPhase 转轴所处阶段（由标志位推导，不单独存储）
type ReelPhase int

const (
	// ReelPhaseIdle 从未旋转过
	ReelPhaseIdle ReelPhase = iota
	// ReelPhaseSpinning 加速或匀速滚动中
	ReelPhaseSpinning
	// ReelPhaseDecelerating 收到停止指令，正在减速/对齐
	ReelPhaseDecelerating
	// ReelPhaseStopped 已停在目标符号上（本次旋转的终态）
	ReelPhaseStopped
)

// String 返回阶段名称（用于日志）
func (p ReelPhase) String() string {
	switch p {
	case ReelPhaseIdle:
		return "idle"
	case ReelPhaseSpinning:
		return "spinning"
	case ReelPhaseDecelerating:
		return "decelerating"
	case ReelPhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ReelComponent 转轴运动状态组件
//
// 每列转轴一个实体，本组件记录该列的速度、方向和状态标志。
// 是否可以加速、当前阶段等派生状态通过 CanAccelerate / Phase 计算，
// 不作为字段保存，避免与标志位不一致。
type ReelComponent struct {
	// Index 列索引（0 开始，自左向右）
	Index int

	// Direction 滚动方向：+1 向下，-1 向上
	Direction int

	// Velocity 当前速度（像素/名义帧），非负
	Velocity float64

	// DecelerationRate 当前减速率
	// 减速过程中逐帧衰减到下限，新一轮旋转开始或停轴时重置为初始值
	DecelerationRate float64

	CanMove       bool
	CanDecelerate bool
	CanStop       bool

	// CanShowWin 本列已停稳，等待全部转轴就绪后展示中奖
	CanShowWin bool

	// TargetStopSymbol 本次旋转要停在最前槽位的符号ID
	// 收到停止指令前为空
	TargetStopSymbol string

	// ScrollOffset 当前滚动偏移
	ScrollOffset float64

	// HomeOffset 静止时的滚动偏移
	HomeOffset float64
}

// CanAccelerate 是否可以继续加速
//
// 条件：可移动 且 速度未达上限 且 未进入减速
func CanAccelerate(r *ReelComponent, maxVelocity float64) bool {
	return r.CanMove && r.Velocity < maxVelocity && !r.CanDecelerate
}

// Phase 推导转轴当前阶段
func Phase(r *ReelComponent) ReelPhase {
	switch {
	case r.CanMove && r.CanDecelerate:
		return ReelPhaseDecelerating
	case r.CanMove:
		return ReelPhaseSpinning
	case r.TargetStopSymbol != "":
		return ReelPhaseStopped
	default:
		return ReelPhaseIdle
	}
}

// IsAtHome 滚动偏移是否在起始位置的容差范围内
func IsAtHome(r *ReelComponent, tolerance float64) bool {
	return math.Abs(r.ScrollOffset-r.HomeOffset) < tolerance
}
