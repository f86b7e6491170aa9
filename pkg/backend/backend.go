// Package backend 定义转轴动画核心与出奖服务之间的数据契约
//
// 核心只依赖本包中的类型与 Backend 接口；具体实现（进程内演示服务、
// HTTP 客户端/服务端）位于子包中。
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// 配置错误（在构建转轴集合之前拒绝）
var (
	ErrInvalidReelCount = errors.New("reel count must be positive")
	ErrInvalidRowCount  = errors.New("row count must be positive")
	ErrTrackTooShort    = errors.New("symbol track shorter than row count")
	ErrEmptySymbolID    = errors.New("symbol id must not be empty")
)

// ErrOutcomeMismatch 出奖结果与当前转轴集合不匹配
var ErrOutcomeMismatch = errors.New("spin outcome does not match reel set")

// Backend 出奖服务契约
//
// 所有方法都可能阻塞（远程实现会发起网络请求），因此绝不能在
// 每帧 Tick 内调用。
type Backend interface {
	GetReelConfiguration(ctx context.Context) (*ReelConfiguration, error)
	RequestSpinOutcome(ctx context.Context) (*SpinOutcome, error)
	SetReelCount(ctx context.Context, n int) error
	SetRowCount(ctx context.Context, n int) error
}

// Symbol 符号带上的一个符号
type Symbol struct {
	// ID 停轴标识（同一符号带内唯一，参考配置为 "0".."R-1"）
	ID string `json:"id" yaml:"id"`
	// Face 符号外观（纹理/字形索引，仅供渲染使用）
	Face int `json:"face" yaml:"face"`
}

// ReelConfiguration 转轴配置
type ReelConfiguration struct {
	ReelCount    int        `json:"reelCount"`
	RowCount     int        `json:"rowCount"`
	SymbolTracks [][]Symbol `json:"symbolTracks"`
}

// Validate 检查配置是否足以构建转轴集合
func (c *ReelConfiguration) Validate() error {
	if c.ReelCount <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidReelCount, c.ReelCount)
	}
	if c.RowCount <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRowCount, c.RowCount)
	}
	if len(c.SymbolTracks) < c.ReelCount {
		return fmt.Errorf("need %d symbol tracks, got %d: %w",
			c.ReelCount, len(c.SymbolTracks), ErrTrackTooShort)
	}
	for i := 0; i < c.ReelCount; i++ {
		track := c.SymbolTracks[i]
		if len(track) < c.RowCount {
			return fmt.Errorf("reel %d has %d symbols, rows %d: %w",
				i, len(track), c.RowCount, ErrTrackTooShort)
		}
		for j, sym := range track {
			if sym.ID == "" {
				return fmt.Errorf("reel %d slot %d: %w", i, j, ErrEmptySymbolID)
			}
		}
	}
	return nil
}

// Position 盘面坐标（列 = 转轴索引，行 = 自顶向下的可见行索引）
type Position struct {
	Reel int `json:"reel"`
	Row  int `json:"row"`
}

// Win 一组中奖符号
type Win struct {
	SymbolID  string          `json:"symbolId"`
	Positions []Position      `json:"positions"`
	Amount    decimal.Decimal `json:"amount"`
}

// SpinOutcome 一次旋转的出奖结果
//
// 整个转轴集合共享同一个实例，直到下一次旋转。
type SpinOutcome struct {
	SpinID      string   `json:"spinId"`
	StopSymbols []string `json:"stopSymbols"`
	Wins        []Win    `json:"wins"`
}

// Validate 检查出奖结果是否适用于 reelCount 列转轴
func (o *SpinOutcome) Validate(reelCount int) error {
	if len(o.StopSymbols) != reelCount {
		return fmt.Errorf("%w: %d stop symbols for %d reels",
			ErrOutcomeMismatch, len(o.StopSymbols), reelCount)
	}
	for _, w := range o.Wins {
		if w.Amount.IsNegative() {
			return fmt.Errorf("%w: negative amount %s for symbol %s",
				ErrOutcomeMismatch, w.Amount, w.SymbolID)
		}
	}
	return nil
}

// TotalAmount 汇总所有中奖金额
func (o *SpinOutcome) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, w := range o.Wins {
		total = total.Add(w.Amount)
	}
	return total
}
