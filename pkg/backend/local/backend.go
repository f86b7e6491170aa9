// Package local 提供进程内演示出奖服务
//
// 随机选择停轴位置，并用简单的逐行连线规则计算中奖。仅用于演示，
// 不涉及公平性与真实赔付。
package local

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/decker502/slots/pkg/backend"
	"github.com/decker502/slots/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Backend 演示后端，可被多个 goroutine 同时调用
type Backend struct {
	mu sync.Mutex

	cfg    *Config
	rng    RandomSource
	logger *zap.Logger

	reelCount int
	rowCount  int
	tracks    [][]backend.Symbol

	// scripted 下一个要使用的预设结果
	scripted int
}

var _ backend.Backend = (*Backend)(nil)

// New 创建演示后端
//
// 参数:
//   - cfg: 已校验的配置
//   - l: 日志器，可为 nil
func New(cfg *Config, l *zap.Logger) *Backend {
	var rng RandomSource
	if cfg.Seed != 0 {
		rng = NewSeededRNG(cfg.Seed)
	} else {
		rng = DefaultRNG()
	}
	return NewWithRNG(cfg, rng, l)
}

// NewWithRNG 使用指定随机源创建演示后端
func NewWithRNG(cfg *Config, rng RandomSource, l *zap.Logger) *Backend {
	b := &Backend{
		cfg:       cfg,
		rng:       rng,
		logger:    logger.OrNop(l).Named("LocalBackend"),
		reelCount: cfg.ReelCount,
		rowCount:  cfg.RowCount,
	}
	b.regenerate()
	return b
}

// GetReelConfiguration 返回当前配置（深拷贝）
func (b *Backend) GetReelConfiguration(ctx context.Context) (*backend.ReelConfiguration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	tracks := make([][]backend.Symbol, len(b.tracks))
	for i, t := range b.tracks {
		tracks[i] = append([]backend.Symbol(nil), t...)
	}
	return &backend.ReelConfiguration{
		ReelCount:    b.reelCount,
		RowCount:     b.rowCount,
		SymbolTracks: tracks,
	}, nil
}

// RequestSpinOutcome 生成一次出奖结果
func (b *Backend) RequestSpinOutcome(ctx context.Context) (*backend.SpinOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	stops := b.nextStops()
	labels := make([]string, len(stops))
	for i, s := range stops {
		labels[i] = b.tracks[i][s].ID
	}

	grid := VisibleGrid(b.tracks, stops, b.rowCount)
	outcome := &backend.SpinOutcome{
		SpinID:      uuid.NewString(),
		StopSymbols: labels,
		Wins:        Evaluate(b.cfg, grid),
	}

	b.logger.Debug("spin outcome",
		zap.String("spin", outcome.SpinID),
		zap.Strings("stops", labels),
		zap.Int("wins", len(outcome.Wins)),
		zap.Stringer("total", outcome.TotalAmount()))
	return outcome, nil
}

// SetReelCount 修改列数并重新生成符号带
func (b *Backend) SetReelCount(ctx context.Context, n int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n <= 0 {
		return fmt.Errorf("%w: got %d", backend.ErrInvalidReelCount, n)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.reelCount = n
	b.regenerate()
	b.logger.Info("reel count changed", zap.Int("reels", n))
	return nil
}

// SetRowCount 修改行数；行数不能超过符号带长度
func (b *Backend) SetRowCount(ctx context.Context, n int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n <= 0 {
		return fmt.Errorf("%w: got %d", backend.ErrInvalidRowCount, n)
	}
	if n > b.cfg.ReelSize {
		return fmt.Errorf("rows %d, reel size %d: %w", n, b.cfg.ReelSize, backend.ErrTrackTooShort)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.rowCount = n
	b.logger.Info("row count changed", zap.Int("rows", n))
	return nil
}

// nextStops 选出每列的停轴下标（调用方持有 mu）
func (b *Backend) nextStops() []int {
	stops := make([]int, b.reelCount)

	if b.scripted < len(b.cfg.Scripted) {
		script := b.cfg.Scripted[b.scripted]
		b.scripted++
		if len(script.Stops) == b.reelCount {
			ok := true
			for i, label := range script.Stops {
				idx := indexOf(b.tracks[i], label)
				if idx < 0 {
					ok = false
					break
				}
				stops[i] = idx
			}
			if ok {
				return stops
			}
		}
		b.logger.Warn("scripted outcome does not fit reel set, using random stops",
			zap.Int("script", b.scripted-1), zap.Strings("stops", script.Stops))
	}

	for i := range stops {
		stops[i] = b.rng.IntN(len(b.tracks[i]))
	}
	return stops
}

// regenerate 按当前列数生成符号带（调用方持有 mu）
func (b *Backend) regenerate() {
	totalWeight := 0
	for _, f := range b.cfg.Faces {
		totalWeight += f.Weight
	}

	b.tracks = make([][]backend.Symbol, b.reelCount)
	for i := range b.tracks {
		track := make([]backend.Symbol, b.cfg.ReelSize)
		for j := range track {
			track[j] = backend.Symbol{ID: strconv.Itoa(j), Face: b.pickFace(totalWeight)}
		}
		b.tracks[i] = track
	}
}

// pickFace 按权重选择外观
func (b *Backend) pickFace(totalWeight int) int {
	n := b.rng.IntN(totalWeight)
	for i, f := range b.cfg.Faces {
		if n < f.Weight {
			return i
		}
		n -= f.Weight
	}
	return len(b.cfg.Faces) - 1
}

func indexOf(track []backend.Symbol, id string) int {
	for i, s := range track {
		if s.ID == id {
			return i
		}
	}
	return -1
}
