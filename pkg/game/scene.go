package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 场景接口（老虎机主界面、加载画面等）
// 同一时刻只有一个场景的 Update 和 Draw 被调用。
type Scene interface {
	// Update 更新场景逻辑
	// deltaTime 以名义帧为单位（1.0 = 一帧）
	Update(deltaTime float64) error

	// Draw 绘制场景
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：场景在程序退出时保存状态
//
// 实现此接口的场景会在窗口关闭或收到退出信号时被调用 SaveOnExit()。
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}

// Closer 可选接口：场景被替换或程序退出时释放后台资源
type Closer interface {
	Close()
}
