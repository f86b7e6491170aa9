package scenes

import (
	"errors"

	"github.com/decker502/slots/pkg/config"
	"github.com/decker502/slots/pkg/game"
	"github.com/decker502/slots/pkg/logger"
	"go.uber.org/zap"
)

// statusDuration 状态提示显示时长（秒）
const statusDuration = 2.0

// SlotScene 老虎机主场景
//
// 把键盘/鼠标操作转换为 SpinController 调用，每帧推进编排器，
// 并根据编排器快照绘制转轴、遮罩、按钮和派彩总额。
type SlotScene struct {
	orchestrator *game.SpinOrchestrator
	controller   *game.SpinController
	settings     *game.SettingsManager
	cfg          *config.ReelConfig
	buttons      []Button
	logger       *zap.Logger

	snapshot game.Snapshot

	// status 最近一次操作被拒绝的原因
	status      string
	statusUntil float64
}

// NewSlotScene 创建老虎机场景
//
// 参数:
//   - o: 编排器（场景每帧调用其 Tick）
//   - c: 旋转控制器
//   - sm: 设置管理器，可为 nil
//   - cfg: 转轴配置（绘制时使用符号间距与起始偏移）
//   - l: 日志器，可为 nil
func NewSlotScene(o *game.SpinOrchestrator, c *game.SpinController, sm *game.SettingsManager, cfg *config.ReelConfig, l *zap.Logger) *SlotScene {
	return &SlotScene{
		orchestrator: o,
		controller:   c,
		settings:     sm,
		cfg:          cfg,
		buttons:      DefaultButtons(),
		logger:       logger.OrNop(l).Named("SlotScene"),
		snapshot:     o.Snapshot(),
	}
}

// Name 场景名称
func (s *SlotScene) Name() string {
	return "slot"
}

// Update 处理输入并推进一帧
func (s *SlotScene) Update(deltaTime float64) error {
	for _, action := range pollActions(s.buttons) {
		s.Dispatch(action)
	}
	s.step(deltaTime)
	return nil
}

// step 推进编排器并刷新快照
func (s *SlotScene) step(deltaTime float64) {
	s.orchestrator.Tick(deltaTime)
	s.snapshot = s.orchestrator.Snapshot()
	if s.status != "" && s.snapshot.Now >= s.statusUntil {
		s.status = ""
	}
}

// Dispatch 执行一个界面操作
func (s *SlotScene) Dispatch(action game.Action) {
	s.logger.Debug("action", zap.Stringer("action", action))

	if action == game.ActionToggleSound {
		s.toggleSound()
		return
	}
	if err := s.controller.Perform(action); err != nil {
		s.showStatus(statusText(err))
	}
}

func (s *SlotScene) toggleSound() {
	if s.settings == nil {
		return
	}
	st := s.settings.GetSettings()
	s.settings.SetSoundEnabled(!st.SoundEnabled)
	if err := s.settings.Save(); err != nil {
		s.logger.Warn("failed to save sound setting", zap.Error(err))
	}
}

func (s *SlotScene) showStatus(msg string) {
	s.status = msg
	s.statusUntil = s.snapshot.Now + statusDuration
}

// Status 当前状态提示，没有时为空
func (s *SlotScene) Status() string {
	return s.status
}

// SaveOnExit 退出时保存设置
func (s *SlotScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	if err := s.settings.Save(); err != nil {
		s.logger.Warn("failed to save settings on exit", zap.Error(err))
		return false
	}
	return true
}

// Close 取消进行中的后端请求
func (s *SlotScene) Close() {
	s.controller.Close()
}

// statusText 把操作错误转换为界面提示
func statusText(err error) string {
	switch {
	case errors.Is(err, game.ErrSpinInProgress):
		return "Reels are moving"
	case errors.Is(err, game.ErrReelSetChanging):
		return "Changing reels, try again"
	default:
		return "Not allowed: " + err.Error()
	}
}
