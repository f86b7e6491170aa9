package local

import (
	"github.com/decker502/slots/pkg/backend"
)

// Grid 停轴后的可见盘面：grid[reel][row] 为外观下标
type Grid [][]int

// VisibleGrid 计算停轴后的可见盘面
//
// 停轴后最前槽位为目标符号，其后各行按符号带的环形顺序排列，
// 与滚动方向无关：row r 对应 track[(stop + r) % len]。
func VisibleGrid(tracks [][]backend.Symbol, stops []int, rows int) Grid {
	grid := make(Grid, len(tracks))
	for reel, track := range tracks {
		grid[reel] = make([]int, rows)
		for row := 0; row < rows; row++ {
			grid[reel][row] = track[(stops[reel]+row)%len(track)].Face
		}
	}
	return grid
}

// Evaluate 逐行从最左列向右统计连续相同外观
//
// 连续列数达到 MinMatch 且配置了赔率时产生一组中奖。
func Evaluate(cfg *Config, grid Grid) []backend.Win {
	if len(grid) == 0 {
		return nil
	}

	var wins []backend.Win
	rows := len(grid[0])
	for row := 0; row < rows; row++ {
		face := grid[0][row]
		count := 1
		for reel := 1; reel < len(grid) && grid[reel][row] == face; reel++ {
			count++
		}
		if count < cfg.MinMatch || face < 0 || face >= len(cfg.Faces) {
			continue
		}

		fc := &cfg.Faces[face]
		pay, ok := fc.payFor(count)
		if !ok {
			continue
		}

		positions := make([]backend.Position, count)
		for reel := 0; reel < count; reel++ {
			positions[reel] = backend.Position{Reel: reel, Row: row}
		}
		wins = append(wins, backend.Win{
			SymbolID:  fc.Name,
			Positions: positions,
			Amount:    cfg.bet.Mul(pay),
		})
	}
	return wins
}
