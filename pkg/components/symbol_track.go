package components

import "github.com/decker502/slots/pkg/backend"

// SymbolSlot 符号带上的一个槽位
type SymbolSlot struct {
	// ID 停轴标识
	ID string
	// Face 符号外观索引（渲染用）
	Face int
	// Position 槽位在转轴内的垂直位置（i * pitch）
	Position float64
	// Highlighted 是否处于中奖高亮状态
	Highlighted bool
}

// SymbolTrackComponent 符号带组件
//
// 固定长度的环形符号序列。下标 0 为最前（最上方可见）槽位。
// 回绕只改变顺序，不改变长度和符号集合。
type SymbolTrackComponent struct {
	Slots []SymbolSlot
}

// NewSymbolTrack 按后端给出的符号序列创建符号带并排列槽位
func NewSymbolTrack(symbols []backend.Symbol, pitch float64) *SymbolTrackComponent {
	t := &SymbolTrackComponent{Slots: make([]SymbolSlot, len(symbols))}
	for i, sym := range symbols {
		t.Slots[i] = SymbolSlot{ID: sym.ID, Face: sym.Face}
	}
	t.Arrange(pitch)
	return t
}

// Len 符号带长度
func (t *SymbolTrackComponent) Len() int {
	return len(t.Slots)
}

// Front 最前槽位
func (t *SymbolTrackComponent) Front() SymbolSlot {
	return t.Slots[0]
}

// WrapDown 向下滚动回绕：最后一个符号移到最前
func (t *SymbolTrackComponent) WrapDown(pitch float64) {
	n := len(t.Slots)
	if n < 2 {
		return
	}
	last := t.Slots[n-1]
	copy(t.Slots[1:], t.Slots[:n-1])
	t.Slots[0] = last
	t.Arrange(pitch)
}

// WrapUp 向上滚动回绕：第一个符号移到最后
func (t *SymbolTrackComponent) WrapUp(pitch float64) {
	n := len(t.Slots)
	if n < 2 {
		return
	}
	first := t.Slots[0]
	copy(t.Slots[:n-1], t.Slots[1:])
	t.Slots[n-1] = first
	t.Arrange(pitch)
}

// Arrange 将所有槽位重新排列到等间距位置
func (t *SymbolTrackComponent) Arrange(pitch float64) {
	for i := range t.Slots {
		t.Slots[i].Position = float64(i) * pitch
	}
}

// IDs 按当前顺序返回所有符号ID
func (t *SymbolTrackComponent) IDs() []string {
	ids := make([]string, len(t.Slots))
	for i, s := range t.Slots {
		ids[i] = s.ID
	}
	return ids
}

// Contains 符号带中是否存在指定ID
func (t *SymbolTrackComponent) Contains(id string) bool {
	for _, s := range t.Slots {
		if s.ID == id {
			return true
		}
	}
	return false
}

// SetHighlighted 设置第 row 个槽位的高亮状态，越界时返回 false
func (t *SymbolTrackComponent) SetHighlighted(row int, highlighted bool) bool {
	if row < 0 || row >= len(t.Slots) {
		return false
	}
	t.Slots[row].Highlighted = highlighted
	return true
}

// ClearHighlights 恢复所有槽位的默认外观
func (t *SymbolTrackComponent) ClearHighlights() {
	for i := range t.Slots {
		t.Slots[i].Highlighted = false
	}
}
