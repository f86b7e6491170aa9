package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/decker502/slots/pkg/backend"
	"github.com/decker502/slots/pkg/logger"
	"go.uber.org/zap"
)

// ErrSpinInProgress 转轴运动中不允许修改列数/行数
var ErrSpinInProgress = errors.New("reels are moving")

// ErrReelSetChanging 列数/行数修改进行中，不允许开始旋转
var ErrReelSetChanging = errors.New("reel set is changing")

// 增减按钮的步长
const (
	addReelStep    = 1
	addRowStep     = 1
	reduceReelStep = 3
	reduceRowStep  = 1
)

// DefaultRequestTimeout 单次后端请求的超时时间
const DefaultRequestTimeout = 5 * time.Second

// SpinController 旋转控制器
//
// 面向 UI 的入口：把按钮操作转换为编排器指令，并在后台 goroutine 中
// 调用后端，结果通过指令队列回到 Tick。后端调用永远不会阻塞 Tick。
//
// 旋转与列数/行数修改互斥：已提交但尚未被 Tick 处理的旋转同样视为运动中，
// 修改进行中时拒绝旋转。
type SpinController struct {
	backend      backend.Backend
	orchestrator *SpinOrchestrator
	logger       *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// applyMu 串行化对后端配置的修改与重新加载
	applyMu sync.Mutex

	// mu 保护以下字段
	mu      sync.Mutex
	timeout time.Duration
	spinSeq uint64
	// reelCount/rowCount 最近一次成功加载的配置
	reelCount int
	rowCount  int
	// wantReels/wantRows 最近一次提交的目标，连续增减以它为基准
	wantReels int
	wantRows  int
	// changing 进行中的修改数量
	changing int
}

// NewSpinController 创建旋转控制器
//
// 参数:
//   - parent: 控制器生命周期的上下文，取消后所有后台请求随之取消
//   - b: 出奖服务
//   - o: 编排器
//   - l: 日志器，可为 nil
func NewSpinController(parent context.Context, b backend.Backend, o *SpinOrchestrator, l *zap.Logger) *SpinController {
	ctx, cancel := context.WithCancel(parent)
	return &SpinController{
		backend:      b,
		orchestrator: o,
		logger:       logger.OrNop(l).Named("SpinController"),
		ctx:          ctx,
		cancel:       cancel,
		timeout:      DefaultRequestTimeout,
	}
}

// SetRequestTimeout 修改单次后端请求超时，对之后发起的请求生效
func (c *SpinController) SetRequestTimeout(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = d
}

func (c *SpinController) requestTimeout() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeout
}

// Counts 最近一次成功加载的列数与行数
func (c *SpinController) Counts() (reels, rows int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reelCount, c.rowCount
}

// Load 同步读取后端当前配置并提交重建指令（启动时调用）
func (c *SpinController) Load() error {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()
	return c.reload()
}

// Spin 开始新一轮旋转并在后台请求出奖结果
//
// 返回:
//   - error: 列数/行数修改进行中时返回 ErrReelSetChanging
func (c *SpinController) Spin() error {
	c.mu.Lock()
	if c.changing > 0 {
		c.mu.Unlock()
		c.logger.Info("spin refused while reel set is changing")
		return ErrReelSetChanging
	}
	c.spinSeq++
	spinID := c.spinSeq
	timeout := c.timeout
	queue := c.orchestrator.Queue()
	queue.Push(Command{Kind: CommandSpinRequested, SpinID: spinID})
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(c.ctx, timeout)
		defer cancel()

		outcome, err := c.backend.RequestSpinOutcome(ctx)
		if err != nil {
			c.logger.Warn("spin outcome request failed", zap.Uint64("spin", spinID), zap.Error(err))
			queue.Push(Command{Kind: CommandOutcomeFailed, SpinID: spinID, Err: err})
			return
		}
		c.logger.Debug("spin outcome received",
			zap.Uint64("spin", spinID), zap.Strings("stops", outcome.StopSymbols))
		queue.Push(Command{Kind: CommandOutcomeReceived, SpinID: spinID, Outcome: outcome})
	}()
	return nil
}

// Stop 请求停轴
func (c *SpinController) Stop() {
	c.mu.Lock()
	spinID := c.spinSeq
	c.mu.Unlock()
	c.orchestrator.Queue().Push(Command{Kind: CommandStopRequested, SpinID: spinID})
}

// SetReelCount 修改列数
func (c *SpinController) SetReelCount(n int) error {
	return c.changeCounts(func(_, rows int) (int, int) { return n, rows })
}

// SetRowCount 修改行数
func (c *SpinController) SetRowCount(n int) error {
	return c.changeCounts(func(reels, _ int) (int, int) { return reels, n })
}

// AddReelAndRow 增加一列一行
func (c *SpinController) AddReelAndRow() error {
	return c.changeCounts(func(reels, rows int) (int, int) {
		return reels + addReelStep, rows + addRowStep
	})
}

// ReduceReelAndRow 减少三列一行
func (c *SpinController) ReduceReelAndRow() error {
	return c.changeCounts(func(reels, rows int) (int, int) {
		return reels - reduceReelStep, rows - reduceRowStep
	})
}

// SetCounts 同时修改列数与行数
//
// 立即校验参数并检查转轴是否在运动；后端调用在后台完成，
// 完成后提交重建指令。
//
// 返回:
//   - error: ErrSpinInProgress 或包装后的 backend.ErrInvalidReelCount / ErrInvalidRowCount
func (c *SpinController) SetCounts(reels, rows int) error {
	return c.changeCounts(func(int, int) (int, int) { return reels, rows })
}

// RestoreCounts 恢复上次保存的列数/行数
//
// 保存值无效或与当前一致时什么都不做。
func (c *SpinController) RestoreCounts(saved *Settings) error {
	if saved == nil || saved.ReelCount <= 0 || saved.RowCount <= 0 {
		return nil
	}
	if reels, rows := c.Counts(); reels == saved.ReelCount && rows == saved.RowCount {
		return nil
	}
	c.logger.Info("restoring saved counts",
		zap.Int("reels", saved.ReelCount), zap.Int("rows", saved.RowCount))
	return c.SetCounts(saved.ReelCount, saved.RowCount)
}

// changeCounts 以最近提交的目标为基准计算新的列数/行数并在后台应用
func (c *SpinController) changeCounts(target func(reels, rows int) (int, int)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	reels, rows := target(c.wantReels, c.wantRows)
	if reels <= 0 {
		return fmt.Errorf("set reel count %d: %w", reels, backend.ErrInvalidReelCount)
	}
	if rows <= 0 {
		return fmt.Errorf("set row count %d: %w", rows, backend.ErrInvalidRowCount)
	}
	if c.spinActive() {
		c.logger.Info("count change refused while spinning",
			zap.Int("reels", reels), zap.Int("rows", rows))
		return ErrSpinInProgress
	}

	c.wantReels, c.wantRows = reels, rows
	c.changing++

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.applyCounts()
	}()
	return nil
}

// spinActive 是否有旋转未结束（调用方持有 mu）
//
// 先读已处理序号再读 busy：旋转指令被处理的那一帧末尾 busy 已经为真。
func (c *SpinController) spinActive() bool {
	if c.orchestrator.HandledSpin() < c.spinSeq {
		return true
	}
	return c.orchestrator.Busy()
}

// applyCounts 把最近提交的目标写入后端后重新加载配置
//
// 多个修改排队时后执行的一方会发现目标已生效，不再重复调用后端。
// 失败时仍尝试重新加载，使本地计数与后端保持一致。
func (c *SpinController) applyCounts() {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	c.mu.Lock()
	reels, rows := c.wantReels, c.wantRows
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.changing--
		if c.changing == 0 {
			c.wantReels, c.wantRows = c.reelCount, c.rowCount
		}
	}()

	if err := c.pushCounts(reels, rows); err != nil {
		c.logger.Warn("count change failed",
			zap.Int("reels", reels), zap.Int("rows", rows), zap.Error(err))
	}
	if err := c.reload(); err != nil {
		c.logger.Warn("reload after count change failed", zap.Error(err))
	}
}

// pushCounts 把与当前配置不同的计数写入后端（调用方持有 applyMu）
func (c *SpinController) pushCounts(reels, rows int) error {
	current, currentRows := c.Counts()

	ctx, cancel := context.WithTimeout(c.ctx, c.requestTimeout())
	defer cancel()

	if reels != current {
		if err := c.backend.SetReelCount(ctx, reels); err != nil {
			return fmt.Errorf("set reel count: %w", err)
		}
	}
	if rows != currentRows {
		if err := c.backend.SetRowCount(ctx, rows); err != nil {
			return fmt.Errorf("set row count: %w", err)
		}
	}
	return nil
}

// Wait 等待所有后台请求完成
func (c *SpinController) Wait() {
	c.wg.Wait()
}

// Close 取消进行中的请求并等待后台 goroutine 退出
func (c *SpinController) Close() {
	c.cancel()
	c.wg.Wait()
}

// reload 读取后端配置并提交重建指令（调用方持有 applyMu）
func (c *SpinController) reload() error {
	ctx, cancel := context.WithTimeout(c.ctx, c.requestTimeout())
	defer cancel()

	rc, err := c.backend.GetReelConfiguration(ctx)
	if err != nil {
		return fmt.Errorf("get reel configuration: %w", err)
	}
	if err := rc.Validate(); err != nil {
		return fmt.Errorf("backend returned invalid configuration: %w", err)
	}

	c.mu.Lock()
	c.reelCount, c.rowCount = rc.ReelCount, rc.RowCount
	if c.changing == 0 {
		c.wantReels, c.wantRows = rc.ReelCount, rc.RowCount
	}
	c.mu.Unlock()

	c.orchestrator.Queue().Push(Command{Kind: CommandReelSetChanged, Configuration: rc})
	return nil
}
