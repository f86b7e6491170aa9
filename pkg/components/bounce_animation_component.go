package components

// AnimationKind 动画类型
type AnimationKind int

const (
	// AnimationKindBounce 停轴回弹
	AnimationKindBounce AnimationKind = iota
)

// BounceAnimationComponent 回弹动画组件
//
// 停轴时挂载到转轴实体上。动画不依赖外部调度器：每帧用当前时钟
// 与 Start/Duration 比较即可判断是否仍在进行（now - Start < Duration），
// 结束后由 BounceAnimationSystem 移除。
type BounceAnimationComponent struct {
	Kind AnimationKind

	// Start 开始时间（秒，模拟时钟）
	Start float64

	// Duration 总时长（秒）
	Duration float64

	// Amplitude 越过起始位置的最大距离（像素）
	Amplitude float64

	// Oscillations 往返次数
	Oscillations int

	// Direction 越过的方向；无论转轴朝哪个方向滚动，回弹总是先向下越过
	Direction int
}

// InProgress 动画在 now 时刻是否仍在进行
func (b *BounceAnimationComponent) InProgress(now float64) bool {
	return now-b.Start < b.Duration
}

// GetProgress 获取动画进度（0.0 到 1.0）
func (b *BounceAnimationComponent) GetProgress(now float64) float64 {
	if b.Duration <= 0 {
		return 1.0
	}
	progress := (now - b.Start) / b.Duration
	if progress < 0 {
		return 0.0
	}
	if progress > 1.0 {
		return 1.0
	}
	return progress
}
