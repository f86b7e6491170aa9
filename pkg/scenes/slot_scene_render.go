package scenes

import (
	"fmt"
	"image/color"

	"github.com/decker502/slots/pkg/config"
	"github.com/decker502/slots/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	maskAlpha float64 = config.MaskAlpha

	backgroundColor = color.RGBA{R: 24, G: 20, B: 37, A: 255}
	maskColor       = color.RGBA{A: uint8(maskAlpha * 255)}
	highlightColor  = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	buttonColor     = color.RGBA{R: 70, G: 80, B: 110, A: 255}
	buttonBorder    = color.RGBA{R: 160, G: 170, B: 200, A: 255}

	// facePalette 按 Symbol.Face 取色
	facePalette = []color.RGBA{
		{R: 200, G: 40, B: 60, A: 255},
		{R: 230, G: 210, B: 60, A: 255},
		{R: 220, G: 150, B: 40, A: 255},
		{R: 60, G: 140, B: 220, A: 255},
		{R: 150, G: 60, B: 200, A: 255},
		{R: 60, G: 180, B: 100, A: 255},
	}
)

// Draw 绘制当前快照
func (s *SlotScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	snap := s.snapshot
	for _, reel := range snap.Reels {
		s.drawReel(screen, &snap, reel)
	}
	s.drawMasks(screen, snap.RowCount)
	s.drawHUD(screen, &snap)
}

func (s *SlotScene) drawReel(screen *ebiten.Image, snap *game.Snapshot, reel game.ReelView) {
	if len(reel.Slots) == 0 {
		return
	}
	scroll := reel.ScrollOffset - s.cfg.Track.HomeOffset
	pitch := s.cfg.Track.Pitch

	for _, slot := range reel.Slots {
		s.drawSlot(screen, snap, reel.Index, slot, slot.Position, scroll)
	}

	// 偏移为正时（向下滚动或回弹）顶部露出的是环形符号带的末尾槽位
	if scroll > 0 {
		last := reel.Slots[len(reel.Slots)-1]
		s.drawSlot(screen, snap, reel.Index, last, -pitch, scroll)
	}
}

func (s *SlotScene) drawSlot(screen *ebiten.Image, snap *game.Snapshot, reelIndex int, slot game.SlotView, position, scroll float64) {
	x, y := SlotOrigin(len(snap.Reels), snap.RowCount, reelIndex, s.cfg.Track.Pitch, position, scroll)
	size := float32(SlotSize())

	vector.DrawFilledRect(screen, float32(x), float32(y), size, size, faceColor(slot.Face), true)
	if slot.Highlighted {
		vector.StrokeRect(screen, float32(x)-2, float32(y)-2, size+4, size+4, 4, highlightColor, true)
	}
	ebitenutil.DebugPrintAt(screen, slot.ID, int(x)+4, int(y)+4)
}

// drawMasks 半透明遮罩覆盖可见窗口以外的区域
func (s *SlotScene) drawMasks(screen *ebiten.Image, rowCount int) {
	top, bottom := config.VisibleWindow(rowCount, s.cfg.Track.Pitch)
	w := float32(config.GameWindowWidth)
	vector.DrawFilledRect(screen, 0, 0, w, float32(top), maskColor, false)
	vector.DrawFilledRect(screen, 0, float32(bottom), w, float32(config.GameWindowHeight-bottom), maskColor, false)
}

func (s *SlotScene) drawHUD(screen *ebiten.Image, snap *game.Snapshot) {
	total := "-"
	if snap.Revealed {
		total = snap.Total.StringFixed(2)
	}
	ebitenutil.DebugPrintAt(screen, "Total Amount: "+total, 20, 20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Reels: %d  Rows: %d", len(snap.Reels), snap.RowCount), 20, 40)

	if s.settings != nil && !s.settings.GetSettings().SoundEnabled {
		ebitenutil.DebugPrintAt(screen, "Sound: off", 20, 60)
	}
	if s.status != "" {
		ebitenutil.DebugPrintAt(screen, s.status, 20, 80)
	}

	for _, b := range s.buttons {
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), buttonColor, true)
		vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), 2, buttonBorder, true)
		// 调试字体每个字符宽 6 像素、高 16 像素
		tx := int(b.X + (b.Width-float64(len(b.Label))*6)/2)
		ty := int(b.Y + (b.Height-16)/2)
		ebitenutil.DebugPrintAt(screen, b.Label, tx, ty)
	}
}

// SlotSize 符号绘制边长
func SlotSize() float64 {
	return config.SymbolSize * config.SymbolScale
}

// SlotOrigin 计算槽位左上角屏幕坐标
//
// 转轴集合水平居中，每列占 ReelGap 宽；槽位在本列内水平居中，
// 在符号间距内垂直居中。position 为槽位在转轴内的位置，scroll 为
// 相对起始位置的滚动偏移。
func SlotOrigin(reelCount, rowCount, reelIndex int, pitch, position, scroll float64) (x, y float64) {
	size := SlotSize()
	originX, _ := config.ReelSetOrigin(reelCount, rowCount, pitch)
	top, _ := config.VisibleWindow(rowCount, pitch)

	x = originX + float64(reelIndex)*config.ReelGap + (config.ReelGap-size)/2
	y = top + position + scroll + (pitch-size)/2
	return x, y
}

func faceColor(face int) color.RGBA {
	if face < 0 {
		face = -face
	}
	return facePalette[face%len(facePalette)]
}
