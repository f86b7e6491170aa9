package tui

import (
	"context"
	"errors"
	"time"

	"github.com/decker502/slots/pkg/config"
	"github.com/decker502/slots/pkg/game"
	"github.com/decker502/slots/pkg/logger"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

const (
	// frameInterval 约 60 FPS
	frameInterval = 16 * time.Millisecond
	// maxFrameDelta 单帧最多推进的名义帧数，避免长时间卡顿后转轴跳过停止位置
	maxFrameDelta = 4.0
	// statusDuration 状态提示显示时长（秒）
	statusDuration = 2.0
)

// Screen 运行循环需要的终端能力（tcell.Screen 满足此接口）
type Screen interface {
	Canvas
	Show()
	PollEvent() tcell.Event
}

// Runner 终端版主循环
type Runner struct {
	screen       Screen
	orchestrator *game.SpinOrchestrator
	controller   *game.SpinController
	settings     *game.SettingsManager
	renderer     *Renderer
	nominalFPS   float64
	logger       *zap.Logger

	status      string
	statusUntil float64
}

// NewRunner 创建主循环
//
// 参数:
//   - screen: 已初始化的终端
//   - o: 编排器
//   - c: 旋转控制器
//   - sm: 设置管理器，可为 nil
//   - cfg: 转轴配置
//   - l: 日志器，可为 nil
func NewRunner(screen Screen, o *game.SpinOrchestrator, c *game.SpinController, sm *game.SettingsManager, cfg *config.ReelConfig, l *zap.Logger) *Runner {
	return &Runner{
		screen:       screen,
		orchestrator: o,
		controller:   c,
		settings:     sm,
		renderer:     NewRenderer(screen, cfg),
		nominalFPS:   cfg.NominalFrameRate,
		logger:       logger.OrNop(l).Named("Runner"),
	}
}

// Run 运行主循环，直到 ctx 取消或用户退出
//
// 调用方负责在返回后 Fini 终端。
func (r *Runner) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if key, ok := ev.(*tcell.EventKey); ok {
				if r.HandleKey(key.Key(), key.Rune()) {
					return nil
				}
			}
		case now := <-ticker.C:
			r.Step(FrameDelta(now.Sub(last), r.nominalFPS))
			last = now
			r.Draw()
		}
	}
}

// HandleKey 处理按键，返回 true 表示退出
func (r *Runner) HandleKey(key tcell.Key, ch rune) bool {
	action := ActionForKey(key, ch)
	switch action {
	case game.ActionNone:
		return false
	case game.ActionQuit:
		return true
	case game.ActionToggleSound:
		r.toggleSound()
		return false
	}

	if err := r.controller.Perform(action); err != nil {
		r.logger.Debug("action refused", zap.Stringer("action", action), zap.Error(err))
		r.status = statusText(err)
		r.statusUntil = r.orchestrator.Now() + statusDuration
	}
	return false
}

// Step 推进一帧
func (r *Runner) Step(deltaTime float64) {
	r.orchestrator.Tick(deltaTime)
	if r.status != "" && r.orchestrator.Now() >= r.statusUntil {
		r.status = ""
	}
}

// Draw 绘制当前状态并刷新终端
func (r *Runner) Draw() {
	soundOn := true
	if r.settings != nil {
		soundOn = r.settings.GetSettings().SoundEnabled
	}
	r.renderer.Render(Frame{
		Snapshot: r.orchestrator.Snapshot(),
		Status:   r.status,
		SoundOn:  soundOn,
	})
	r.screen.Show()
}

// Status 当前状态提示
func (r *Runner) Status() string {
	return r.status
}

func (r *Runner) toggleSound() {
	if r.settings == nil {
		return
	}
	r.settings.SetSoundEnabled(!r.settings.GetSettings().SoundEnabled)
	if err := r.settings.Save(); err != nil {
		r.logger.Warn("failed to save sound setting", zap.Error(err))
	}
}

// ActionForKey 按键到界面操作的映射
func ActionForKey(key tcell.Key, ch rune) game.Action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.ActionQuit
	case tcell.KeyEnter:
		return game.ActionStop
	case tcell.KeyUp:
		return game.ActionAddReelAndRow
	case tcell.KeyDown:
		return game.ActionReduceReelAndRow
	case tcell.KeyRune:
		switch ch {
		case ' ':
			return game.ActionSpin
		case 's', 'S':
			return game.ActionStop
		case '+', '=':
			return game.ActionAddReelAndRow
		case '-', '_':
			return game.ActionReduceReelAndRow
		case 'm', 'M':
			return game.ActionToggleSound
		case 'q', 'Q':
			return game.ActionQuit
		}
	}
	return game.ActionNone
}

// FrameDelta 把实际经过的时间换算成名义帧数（上限 maxFrameDelta）
func FrameDelta(elapsed time.Duration, nominalFPS float64) float64 {
	if elapsed <= 0 || nominalFPS <= 0 {
		return 0
	}
	d := elapsed.Seconds() * nominalFPS
	if d > maxFrameDelta {
		return maxFrameDelta
	}
	return d
}

func statusText(err error) string {
	switch {
	case errors.Is(err, game.ErrSpinInProgress):
		return "Reels are moving"
	case errors.Is(err, game.ErrReelSetChanging):
		return "Changing reels, try again"
	}
	return "Not allowed: " + err.Error()
}
