package scenes

import (
	"github.com/decker502/slots/pkg/config"
	"github.com/decker502/slots/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Button 屏幕按钮
type Button struct {
	Label  string
	Action game.Action
	X, Y   float64
	Width  float64
	Height float64
	// Keys 触发该按钮的快捷键
	Keys []ebiten.Key
}

// 按钮尺寸
const (
	buttonWidth   = 120.0
	buttonHeight  = 40.0
	buttonSpacing = 20.0
	buttonMargin  = 30.0
)

// DefaultButtons 底部居中排列的按钮
func DefaultButtons() []Button {
	defs := []struct {
		label  string
		action game.Action
		keys   []ebiten.Key
	}{
		{"SPIN", game.ActionSpin, []ebiten.Key{ebiten.KeySpace}},
		{"STOP", game.ActionStop, []ebiten.Key{ebiten.KeyS, ebiten.KeyEnter}},
		{"+1 REEL/ROW", game.ActionAddReelAndRow, []ebiten.Key{ebiten.KeyEqual, ebiten.KeyUp}},
		{"-3 REEL -1 ROW", game.ActionReduceReelAndRow, []ebiten.Key{ebiten.KeyMinus, ebiten.KeyDown}},
		{"SOUND", game.ActionToggleSound, []ebiten.Key{ebiten.KeyM}},
	}

	total := float64(len(defs))*buttonWidth + float64(len(defs)-1)*buttonSpacing
	x := (config.GameWindowWidth - total) / 2
	y := config.GameWindowHeight - buttonMargin - buttonHeight

	buttons := make([]Button, 0, len(defs))
	for _, d := range defs {
		buttons = append(buttons, Button{
			Label:  d.label,
			Action: d.action,
			X:      x,
			Y:      y,
			Width:  buttonWidth,
			Height: buttonHeight,
			Keys:   d.keys,
		})
		x += buttonWidth + buttonSpacing
	}
	return buttons
}

// Contains 点是否落在按钮内
func (b Button) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// ButtonAt 返回点击位置对应的操作
func ButtonAt(buttons []Button, x, y float64) game.Action {
	for _, b := range buttons {
		if b.Contains(x, y) {
			return b.Action
		}
	}
	return game.ActionNone
}

// pollActions 读取本帧的快捷键与鼠标点击
func pollActions(buttons []Button) []game.Action {
	var actions []game.Action
	for _, b := range buttons {
		for _, k := range b.Keys {
			if inpututil.IsKeyJustPressed(k) {
				actions = append(actions, b.Action)
				break
			}
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if a := ButtonAt(buttons, float64(mx), float64(my)); a != game.ActionNone {
			actions = append(actions, a)
		}
	}
	return actions
}
