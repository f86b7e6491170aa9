package config

// 桌面端布局常量
//
// 画面被分为三段：中间为可见窗口，上下为半透明遮罩。
const (
	// GameWindowWidth 游戏逻辑宽度（像素）
	GameWindowWidth = 1024
	// GameWindowHeight 游戏逻辑高度（像素）
	GameWindowHeight = 700

	// ReelGap 相邻转轴的水平间距（像素）
	ReelGap = 100.0
	// SymbolScale 符号缩放比例
	SymbolScale = 0.4
	// SymbolSize 符号绘制边长（缩放前，像素）
	SymbolSize = 160.0

	// MaskAlpha 遮罩透明度
	MaskAlpha = 0.5
)

// VisibleWindow 按行数计算可见窗口的上下边界
//
// 窗口高度为 rowCount*pitch 并在屏幕上垂直居中，窗口以外的部分由遮罩覆盖。
func VisibleWindow(rowCount int, pitch float64) (top, bottom float64) {
	height := float64(rowCount) * pitch
	top = GameWindowHeight/2.0 - height/2.0
	return top, top + height
}

// ReelSetOrigin 计算转轴集合左上角坐标
//
// 转轴集合在屏幕上居中：
//
//	x = centerX - reelCount*ReelGap/2
//	y = centerY - reelSize*pitch/2
func ReelSetOrigin(reelCount, reelSize int, pitch float64) (x, y float64) {
	x = GameWindowWidth/2.0 - float64(reelCount)*ReelGap/2.0
	y = GameWindowHeight/2.0 - float64(reelSize)*pitch/2.0
	return x, y
}
