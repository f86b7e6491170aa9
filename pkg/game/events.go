package game

import (
	"github.com/decker502/slots/pkg/backend"
	"github.com/shopspring/decimal"
)

// Listener 转轴事件监听器
//
// 所有回调都在 Tick 所在的 goroutine 上同步调用，实现方不得阻塞。
type Listener interface {
	// OnSpinStarted 新一轮旋转开始
	OnSpinStarted()

	// OnReelStopped 第 reelIndex 列停轴
	OnReelStopped(reelIndex int)

	// OnAllReelsRevealed 全部转轴停稳并完成中奖汇总
	OnAllReelsRevealed(total decimal.Decimal, positions []backend.Position)
}

// ReelSetListener 可选接口：转轴集合重建后收到新的列数/行数
//
// 实现 Listener 的类型可以同时实现此接口，编排器通过类型断言调用。
type ReelSetListener interface {
	OnReelSetRebuilt(reelCount, rowCount int)
}

// ListenerFuncs 以函数字段实现 Listener，未设置的回调忽略
type ListenerFuncs struct {
	SpinStarted      func()
	ReelStopped      func(reelIndex int)
	AllReelsRevealed func(total decimal.Decimal, positions []backend.Position)
	ReelSetRebuilt   func(reelCount, rowCount int)
}

func (f ListenerFuncs) OnSpinStarted() {
	if f.SpinStarted != nil {
		f.SpinStarted()
	}
}

func (f ListenerFuncs) OnReelStopped(reelIndex int) {
	if f.ReelStopped != nil {
		f.ReelStopped(reelIndex)
	}
}

func (f ListenerFuncs) OnAllReelsRevealed(total decimal.Decimal, positions []backend.Position) {
	if f.AllReelsRevealed != nil {
		f.AllReelsRevealed(total, positions)
	}
}

func (f ListenerFuncs) OnReelSetRebuilt(reelCount, rowCount int) {
	if f.ReelSetRebuilt != nil {
		f.ReelSetRebuilt(reelCount, rowCount)
	}
}
