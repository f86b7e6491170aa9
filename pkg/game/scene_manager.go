package game

import (
	"github.com/decker502/slots/pkg/logger"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// SceneManager 场景管理器
// 保证同一时刻只有一个场景处于活动状态。
type SceneManager struct {
	currentScene Scene
	logger       *zap.Logger
}

// NewSceneManager 创建场景管理器；初始没有活动场景，用 SwitchTo 设置
func NewSceneManager(l *zap.Logger) *SceneManager {
	return &SceneManager{
		logger: logger.OrNop(l).Named("SceneManager"),
	}
}

// SwitchTo 切换活动场景
//
// 被替换的场景若实现 Closer，会先被关闭。
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	if c, ok := sm.currentScene.(Closer); ok {
		c.Close()
	}
	sm.currentScene = scene
	sm.logger.Debug("scene switched", zap.String("scene", sceneName(scene)))
}

// GetCurrentScene 返回当前活动场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update 更新当前场景；没有活动场景时什么都不做
func (sm *SceneManager) Update(deltaTime float64) error {
	if sm.currentScene == nil {
		return nil
	}
	return sm.currentScene.Update(deltaTime)
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// Shutdown 程序退出前保存并关闭当前场景
//
// 返回:
//   - bool: 当前场景保存成功或无需保存时为 true
func (sm *SceneManager) Shutdown() bool {
	saved := true
	if s, ok := sm.currentScene.(Saveable); ok {
		saved = s.SaveOnExit()
		if !saved {
			sm.logger.Warn("scene failed to save on exit", zap.String("scene", sceneName(sm.currentScene)))
		}
	}
	if c, ok := sm.currentScene.(Closer); ok {
		c.Close()
	}
	sm.currentScene = nil
	return saved
}

func sceneName(scene Scene) string {
	if n, ok := scene.(interface{ Name() string }); ok {
		return n.Name()
	}
	if scene == nil {
		return "<nil>"
	}
	return "scene"
}
