// Package tui 终端版老虎机：tcell 绘制转轴，beep 播放合成音效
package tui

import (
	"fmt"
	"math"

	"github.com/decker502/slots/pkg/config"
	"github.com/decker502/slots/pkg/game"
	"github.com/gdamore/tcell/v2"
)

// Canvas 绘制目标（tcell.Screen 满足此接口）
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// 终端布局
const (
	// reelWidth 每列占用的字符宽度
	reelWidth = 8
	// linesPerSymbol 每个符号间距占用的行数
	linesPerSymbol = 2
	// windowTop 可见窗口第一行
	windowTop = 3
)

var facePalette = []tcell.Color{
	tcell.ColorRed,
	tcell.ColorYellow,
	tcell.ColorOrange,
	tcell.ColorBlue,
	tcell.ColorPurple,
	tcell.ColorGreen,
}

// Renderer 把编排器快照画到终端
type Renderer struct {
	canvas Canvas
	pitch  float64
	home   float64
}

// NewRenderer 创建渲染器
func NewRenderer(c Canvas, cfg *config.ReelConfig) *Renderer {
	return &Renderer{
		canvas: c,
		pitch:  cfg.Track.Pitch,
		home:   cfg.Track.HomeOffset,
	}
}

// Frame 一帧的界面数据
type Frame struct {
	Snapshot game.Snapshot
	Status   string
	SoundOn  bool
}

// Render 绘制一帧（不调用 Show）
func (r *Renderer) Render(f Frame) {
	width, height := r.canvas.Size()
	r.clear(width, height)

	snap := f.Snapshot
	total := "-"
	if snap.Revealed {
		total = snap.Total.StringFixed(2)
	}
	bold := tcell.StyleDefault.Bold(true)
	r.drawText(1, 0, "Total Amount: "+total, bold)

	soundText := "on"
	if !f.SoundOn {
		soundText = "off"
	}
	r.drawText(1, 1, fmt.Sprintf("Reels: %d  Rows: %d  Sound: %s", len(snap.Reels), snap.RowCount, soundText), tcell.StyleDefault)

	left := ReelSetLeft(width, len(snap.Reels))
	bottom := windowTop + snap.RowCount*linesPerSymbol
	r.drawRule(left, windowTop-1, len(snap.Reels)*reelWidth)
	r.drawRule(left, bottom, len(snap.Reels)*reelWidth)

	for _, reel := range snap.Reels {
		r.drawReel(left, bottom, reel)
	}

	help := "[space] spin  [s] stop  [+] add  [-] reduce  [m] sound  [q] quit"
	r.drawText(1, bottom+2, help, tcell.StyleDefault.Dim(true))
	if f.Status != "" {
		r.drawText(1, bottom+3, f.Status, tcell.StyleDefault.Foreground(tcell.ColorRed))
	}
}

func (r *Renderer) drawReel(left, bottom int, reel game.ReelView) {
	if len(reel.Slots) == 0 {
		return
	}
	x := left + reel.Index*reelWidth
	scroll := reel.ScrollOffset - r.home

	for _, slot := range reel.Slots {
		r.drawSlot(x, bottom, slot, SlotLine(slot.Position, scroll, r.pitch))
	}
	// 偏移为正（向下滚动或回弹）时顶部露出末尾槽位
	if scroll > 0 {
		last := reel.Slots[len(reel.Slots)-1]
		r.drawSlot(x, bottom, last, SlotLine(-r.pitch, scroll, r.pitch))
	}
}

func (r *Renderer) drawSlot(x, bottom int, slot game.SlotView, line int) {
	if line < windowTop || line >= bottom {
		return
	}
	style := tcell.StyleDefault.Foreground(faceColor(slot.Face))
	if slot.Highlighted {
		style = style.Reverse(true).Bold(true)
	}
	r.drawText(x+1, line, fmt.Sprintf("[%4s]", slot.ID), style)
}

// SlotLine 槽位所在的终端行
func SlotLine(position, scroll, pitch float64) int {
	return windowTop + int(math.Round((position+scroll)/pitch*linesPerSymbol))
}

// ReelSetLeft 转轴集合水平居中后的起始列
func ReelSetLeft(width, reelCount int) int {
	left := (width - reelCount*reelWidth) / 2
	if left < 0 {
		return 0
	}
	return left
}

func (r *Renderer) clear(width, height int) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r.canvas.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
}

func (r *Renderer) drawRule(x, y, length int) {
	for i := 0; i < length; i++ {
		r.canvas.SetContent(x+i, y, '─', nil, tcell.StyleDefault)
	}
}

func (r *Renderer) drawText(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.canvas.SetContent(x+i, y, ch, nil, style)
	}
}

func faceColor(face int) tcell.Color {
	if face < 0 {
		face = -face
	}
	return facePalette[face%len(facePalette)]
}
