package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 参考：https://easings.net/

// EaseInOutSine 正弦缓入缓出
// 特点：两端平缓，中间最快（回弹动画单程使用）
// 公式：f(t) = -(cos(πt) - 1) / 2
func EaseInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// YoyoSine 正弦往返
// 在 t ∈ [0, 1] 内从 0 出发到 1 再回到 0，每一程都使用 EaseInOutSine
//
//	t <= 0.5: f(t) = EaseInOutSine(2t)
//	t >  0.5: f(t) = EaseInOutSine(2 - 2t)
func YoyoSine(t float64) float64 {
	if t <= 0.5 {
		return EaseInOutSine(2 * t)
	}
	return EaseInOutSine(2 - 2*t)
}
