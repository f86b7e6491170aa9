package game

import (
	"sync/atomic"

	"github.com/decker502/slots/pkg/backend"
	"github.com/decker502/slots/pkg/components"
	"github.com/decker502/slots/pkg/config"
	"github.com/decker502/slots/pkg/ecs"
	"github.com/decker502/slots/pkg/logger"
	"github.com/decker502/slots/pkg/systems"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SpinOrchestrator 旋转编排器
//
// 持有整个转轴集合（通过 SimulationContext），每帧：
//  1. 推进模拟时钟
//  2. 处理指令队列
//  3. 按列顺序执行运动、速度、停轴、回弹
//  4. 检查全部就绪屏障，满足时汇总中奖
//
// 除 Queue() 和 Busy() 外，所有方法都只能在 Tick 所在的 goroutine 上调用。
type SpinOrchestrator struct {
	ctx   *systems.SimulationContext
	queue *CommandQueue

	motion *systems.ReelMotionSystem
	speed  *systems.ReelSpeedSystem
	stop   *systems.ReelStopSystem
	bounce *systems.BounceAnimationSystem
	reveal *systems.WinRevealSystem

	listeners []Listener
	logger    *zap.Logger

	// spinID 当前旋转序号；0 表示尚未旋转
	spinID uint64
	// stopPending 出奖结果到达前收到的停止指令
	stopPending bool
	// handledSpinLocal 本帧处理过的最大旋转序号，帧末发布到 handledSpin
	handledSpinLocal uint64

	lastReveal *systems.RevealResult

	// deferred 转轴运动时被拒绝的重建，停稳后再应用
	deferred *backend.ReelConfiguration

	// busy 是否有转轴在运动，供其他 goroutine 读取
	busy atomic.Bool
	// handledSpin 已被 Tick 处理的最大旋转序号（接受或拒绝都算）
	handledSpin atomic.Uint64
}

// NewSpinOrchestrator 创建编排器
//
// 初始转轴集合为空，通过 CommandReelSetChanged 指令构建。
func NewSpinOrchestrator(cfg *config.ReelConfig, l *zap.Logger) *SpinOrchestrator {
	l = logger.OrNop(l)
	return &SpinOrchestrator{
		ctx:    systems.NewSimulationContext(ecs.NewEntityManager(), cfg),
		queue:  NewCommandQueue(),
		motion: systems.NewReelMotionSystem(l),
		speed:  systems.NewReelSpeedSystem(),
		stop:   systems.NewReelStopSystem(l),
		bounce: systems.NewBounceAnimationSystem(),
		reveal: systems.NewWinRevealSystem(l),
		logger: l.Named("SpinOrchestrator"),
	}
}

// Queue 指令队列（可在任意 goroutine 使用）
func (o *SpinOrchestrator) Queue() *CommandQueue {
	return o.queue
}

// AddListener 注册事件监听器
func (o *SpinOrchestrator) AddListener(l Listener) {
	o.listeners = append(o.listeners, l)
}

// Busy 是否有转轴在运动（可在任意 goroutine 调用，反映上一帧结束时的状态）
func (o *SpinOrchestrator) Busy() bool {
	return o.busy.Load()
}

// HandledSpin 已被 Tick 处理的最大旋转序号（可在任意 goroutine 调用）
//
// 小于控制器已提交的序号时，说明旋转指令仍在队列中，Busy() 尚未反映它。
func (o *SpinOrchestrator) HandledSpin() uint64 {
	return o.handledSpin.Load()
}

// Now 模拟时钟（秒）
func (o *SpinOrchestrator) Now() float64 {
	return o.ctx.Now
}

// Tick 执行一帧
//
// 参数:
//   - deltaTime: 经过的时间，以名义帧为单位（1.0 = 一帧）
func (o *SpinOrchestrator) Tick(deltaTime float64) {
	if deltaTime < 0 {
		deltaTime = 0
	}
	o.ctx.Now += deltaTime / o.ctx.Config.NominalFrameRate

	for _, cmd := range o.queue.Drain() {
		o.handle(cmd)
	}

	o.motion.Update(o.ctx, deltaTime)
	o.speed.Update(o.ctx)
	for _, index := range o.stop.Update(o.ctx) {
		for _, l := range o.listeners {
			l.OnReelStopped(index)
		}
	}
	o.bounce.Update(o.ctx)

	if result, fired := o.reveal.Update(o.ctx); fired {
		o.lastReveal = &result
		for _, l := range o.listeners {
			l.OnAllReelsRevealed(result.Total, result.Positions)
		}
	}

	moving := o.anyMoving()
	if !moving && o.deferred != nil {
		rc := o.deferred
		o.deferred = nil
		o.rebuild(rc)
	}

	// 先发布 busy 再发布序号：读到新序号的一方一定能看到对应的 busy
	o.busy.Store(moving)
	o.handledSpin.Store(o.handledSpinLocal)
}

func (o *SpinOrchestrator) handle(cmd Command) {
	o.logger.Debug("command", zap.Stringer("kind", cmd.Kind), zap.Uint64("spin", cmd.SpinID))

	switch cmd.Kind {
	case CommandSpinRequested:
		if cmd.SpinID > o.handledSpinLocal {
			o.handledSpinLocal = cmd.SpinID
		}
		o.startSpin(cmd.SpinID)
	case CommandStopRequested:
		o.requestStop()
	case CommandOutcomeReceived:
		o.attachOutcome(cmd.SpinID, cmd.Outcome)
	case CommandOutcomeFailed:
		if cmd.SpinID == o.spinID {
			// 不重试：转轴继续滚动，直到下一次旋转
			o.logger.Warn("spin outcome request failed, reels keep spinning",
				zap.Uint64("spin", cmd.SpinID), zap.Error(cmd.Err))
		}
	case CommandReelSetChanged:
		o.rebuild(cmd.Configuration)
	default:
		o.logger.Warn("unknown command", zap.Int("kind", int(cmd.Kind)))
	}
}

// startSpin 重置所有转轴进入旋转
//
// 先取消回弹动画再重置标志，避免残留动画与新一轮运动争夺偏移。
func (o *SpinOrchestrator) startSpin(spinID uint64) {
	if o.ctx.ReelCount() == 0 {
		o.logger.Warn("spin requested without a reel set")
		return
	}

	o.spinID = spinID
	o.stopPending = false
	o.lastReveal = nil
	o.ctx.Outcome = nil

	systems.ClearHighlights(o.ctx)

	base := o.ctx.Config.Motion.BaseDecelerationRate
	for _, id := range o.ctx.ReelIDs {
		systems.CancelBounce(o.ctx.EntityManager, id)

		reel, ok := ecs.GetComponent[*components.ReelComponent](o.ctx.EntityManager, id)
		if !ok {
			continue
		}
		reel.CanMove = true
		reel.CanDecelerate = false
		reel.CanStop = false
		reel.CanShowWin = false
		reel.Velocity = 0
		reel.DecelerationRate = base
		reel.ScrollOffset = reel.HomeOffset
		reel.TargetStopSymbol = ""
	}

	o.busy.Store(true)
	for _, l := range o.listeners {
		l.OnSpinStarted()
	}
}

// requestStop 处理停止指令；出奖结果未到达时先记下
func (o *SpinOrchestrator) requestStop() {
	if !o.anyMoving() {
		return
	}
	if o.ctx.Outcome == nil {
		o.stopPending = true
		o.logger.Debug("stop deferred until outcome arrives", zap.Uint64("spin", o.spinID))
		return
	}
	o.armStop()
}

// attachOutcome 把出奖结果挂到整个转轴集合上
func (o *SpinOrchestrator) attachOutcome(spinID uint64, outcome *backend.SpinOutcome) {
	if spinID != o.spinID {
		o.logger.Debug("discarding stale outcome",
			zap.Uint64("spin", spinID), zap.Uint64("current", o.spinID))
		return
	}
	if outcome == nil {
		o.logger.Warn("empty spin outcome", zap.Uint64("spin", spinID))
		return
	}
	if err := outcome.Validate(o.ctx.ReelCount()); err != nil {
		o.logger.Warn("spin outcome rejected, reels keep spinning",
			zap.Uint64("spin", spinID), zap.Error(err))
		return
	}

	// 目标不在符号带中时转轴会一直滚动，这里只告警
	for i, symbol := range outcome.StopSymbols {
		if _, track, ok := o.ctx.Reel(i); ok && !track.Contains(symbol) {
			o.logger.Warn("stop symbol absent from track, reel will not stop",
				zap.Int("reel", i), zap.String("symbol", symbol))
		}
	}

	o.ctx.Outcome = outcome
	if o.stopPending {
		o.armStop()
	}
}

// armStop 为每列设置目标符号并开始减速
func (o *SpinOrchestrator) armStop() {
	o.stopPending = false
	for i, id := range o.ctx.ReelIDs {
		reel, ok := ecs.GetComponent[*components.ReelComponent](o.ctx.EntityManager, id)
		if !ok || !reel.CanMove || reel.CanDecelerate {
			continue
		}
		reel.CanDecelerate = true
		reel.TargetStopSymbol = o.ctx.Outcome.StopSymbols[i]
	}
}

// rebuild 整体替换转轴集合
//
// 有转轴在运动时推迟到停稳后执行；配置无效时保留原集合。
func (o *SpinOrchestrator) rebuild(rc *backend.ReelConfiguration) {
	if rc == nil {
		o.logger.Warn("reel set change without configuration")
		return
	}
	if o.anyMoving() {
		o.logger.Warn("reel set change deferred until reels stop",
			zap.Int("reels", rc.ReelCount), zap.Int("rows", rc.RowCount))
		o.deferred = rc
		return
	}
	if err := rc.Validate(); err != nil {
		o.logger.Warn("invalid reel configuration, keeping current reel set", zap.Error(err))
		return
	}

	o.ctx.BuildReelSet(rc)
	o.deferred = nil
	o.stopPending = false
	o.lastReveal = nil

	o.logger.Info("reel set rebuilt",
		zap.Int("reels", rc.ReelCount), zap.Int("rows", rc.RowCount))
	for _, l := range o.listeners {
		if rl, ok := l.(ReelSetListener); ok {
			rl.OnReelSetRebuilt(rc.ReelCount, rc.RowCount)
		}
	}
}

func (o *SpinOrchestrator) anyMoving() bool {
	for i := 0; i < o.ctx.ReelCount(); i++ {
		if reel, _, ok := o.ctx.Reel(i); ok && reel.CanMove {
			return true
		}
	}
	return false
}

// SlotView 渲染用的槽位视图
type SlotView struct {
	ID          string
	Face        int
	Index       int
	Position    float64
	Highlighted bool
}

// ReelView 渲染用的转轴视图
type ReelView struct {
	Index        int
	Direction    int
	ScrollOffset float64
	Phase        components.ReelPhase

	// Visible 前 RowCount 个槽位（自顶向下）
	Visible []SlotView
	// Slots 全部槽位，用于绘制滚动中露出的溢出部分
	Slots []SlotView
}

// Snapshot 一帧的可视状态
type Snapshot struct {
	Now      float64
	RowCount int
	Reels    []ReelView

	// Revealed 本次旋转是否已完成中奖汇总
	Revealed  bool
	Total     decimal.Decimal
	Positions []backend.Position
}

// Snapshot 生成当前可视状态（返回值不与内部状态共享内存）
func (o *SpinOrchestrator) Snapshot() Snapshot {
	snap := Snapshot{
		Now:      o.ctx.Now,
		RowCount: o.ctx.RowCount,
		Reels:    make([]ReelView, 0, o.ctx.ReelCount()),
		Total:    decimal.Zero,
	}

	for i := 0; i < o.ctx.ReelCount(); i++ {
		reel, track, ok := o.ctx.Reel(i)
		if !ok {
			continue
		}
		view := ReelView{
			Index:        reel.Index,
			Direction:    reel.Direction,
			ScrollOffset: reel.ScrollOffset,
			Phase:        components.Phase(reel),
			Slots:        make([]SlotView, track.Len()),
		}
		for j, slot := range track.Slots {
			view.Slots[j] = SlotView{
				ID:          slot.ID,
				Face:        slot.Face,
				Index:       j,
				Position:    slot.Position,
				Highlighted: slot.Highlighted,
			}
		}
		rows := o.ctx.RowCount
		if rows > len(view.Slots) {
			rows = len(view.Slots)
		}
		view.Visible = view.Slots[:rows]
		snap.Reels = append(snap.Reels, view)
	}

	if o.lastReveal != nil {
		snap.Revealed = true
		snap.Total = o.lastReveal.Total
		snap.Positions = append([]backend.Position(nil), o.lastReveal.Positions...)
	}
	return snap
}
