package systems

import (
	"sort"

	"github.com/decker502/slots/pkg/backend"
	"github.com/decker502/slots/pkg/components"
	"github.com/decker502/slots/pkg/ecs"
	"github.com/decker502/slots/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RevealResult 中奖展示结果
type RevealResult struct {
	// Total 总派彩
	Total decimal.Decimal
	// Positions 已高亮的位置（去重，按列、行排序）
	Positions []backend.Position
}

// WinRevealSystem 中奖展示系统
//
// 全部转轴就绪（CanShowWin）后统计派彩并高亮中奖位置，随后在同一帧
// 清除所有 CanShowWin，保证每次旋转只触发一次。
type WinRevealSystem struct {
	logger *zap.Logger
}

// NewWinRevealSystem 创建中奖展示系统
func NewWinRevealSystem(l *zap.Logger) *WinRevealSystem {
	return &WinRevealSystem{logger: logger.OrNop(l).Named("WinRevealSystem")}
}

// Update 检查全部就绪屏障，满足时执行一次中奖汇总
//
// 返回:
//   - RevealResult: 汇总结果
//   - bool: 本帧是否触发
func (s *WinRevealSystem) Update(ctx *SimulationContext) (RevealResult, bool) {
	if !AllReelsReady(ctx) {
		return RevealResult{}, false
	}

	var wins []backend.Win
	if ctx.Outcome != nil {
		wins = ctx.Outcome.Wins
	}
	result := s.Aggregate(ctx, wins)

	for _, id := range ctx.ReelIDs {
		if reel, _, ok := ctx.reelByID(id); ok {
			reel.CanShowWin = false
		}
	}

	s.logger.Info("wins revealed",
		zap.Stringer("total", result.Total),
		zap.Int("positions", len(result.Positions)))
	return result, true
}

// AllReelsReady 所有转轴是否都已就绪；空集合视为未就绪
func AllReelsReady(ctx *SimulationContext) bool {
	if len(ctx.ReelIDs) == 0 {
		return false
	}
	for _, id := range ctx.ReelIDs {
		reel, _, ok := ctx.reelByID(id)
		if !ok || !reel.CanShowWin {
			return false
		}
	}
	return true
}

// Aggregate 高亮中奖位置并累计派彩
//
// 越界位置记录告警后跳过，不影响其余位置。重复高亮是幂等的。
func (s *WinRevealSystem) Aggregate(ctx *SimulationContext, wins []backend.Win) RevealResult {
	total := decimal.Zero
	seen := make(map[backend.Position]struct{})

	for _, win := range wins {
		total = total.Add(win.Amount)

		for _, pos := range win.Positions {
			_, track, ok := ctx.Reel(pos.Reel)
			if !ok || !track.SetHighlighted(pos.Row, true) {
				s.logger.Warn("win position out of range",
					zap.String("symbol", win.SymbolID),
					zap.Int("reel", pos.Reel),
					zap.Int("row", pos.Row))
				continue
			}
			seen[pos] = struct{}{}
		}
	}

	positions := make([]backend.Position, 0, len(seen))
	for pos := range seen {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Reel != positions[j].Reel {
			return positions[i].Reel < positions[j].Reel
		}
		return positions[i].Row < positions[j].Row
	})

	return RevealResult{Total: total, Positions: positions}
}

// ClearHighlights 恢复所有槽位默认外观
func ClearHighlights(ctx *SimulationContext) {
	em := ctx.EntityManager
	for _, id := range ecs.GetEntitiesWith1[*components.SymbolTrackComponent](em) {
		track, _ := ecs.GetComponent[*components.SymbolTrackComponent](em, id)
		track.ClearHighlights()
	}
}
