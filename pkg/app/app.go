// Package app 提供桌面端应用的核心包装器
//
// 该包把配置加载、后端选择、设置持久化、音频和场景的组装从 main 包提取出来。
// 调用 NewApp() 之前必须先调用 embedded.Init() 初始化嵌入配置。
package app

import (
	"context"
	"fmt"
	"image/color"

	"github.com/decker502/slots/pkg/backend"
	"github.com/decker502/slots/pkg/backend/httpapi"
	"github.com/decker502/slots/pkg/backend/local"
	"github.com/decker502/slots/pkg/config"
	"github.com/decker502/slots/pkg/embedded"
	"github.com/decker502/slots/pkg/game"
	"github.com/decker502/slots/pkg/logger"
	"github.com/decker502/slots/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
)

// 嵌入的默认配置
const (
	ReelConfigPath    = "data/reels.yaml"
	BackendConfigPath = "data/backend.yaml"
)

// gdata 存储使用的应用名
const storageAppName = "slots"

// audioSampleRate 音频上下文采样率
const audioSampleRate = 48000

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// BackendURL 远程出奖服务地址，为空时使用进程内演示后端
	BackendURL string
	// ReelConfigFile 覆盖嵌入的 data/reels.yaml
	ReelConfigFile string
	// BackendConfigFile 覆盖嵌入的 data/backend.yaml（仅本地后端）
	BackendConfigFile string
}

// App 桌面端应用，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	reelConfig   *config.ReelConfig
	logger       *zap.Logger

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
func NewApp(cfg Config) (*App, error) {
	l := logger.New(cfg.Verbose)

	reelCfg, err := LoadReelConfig(cfg.ReelConfigFile)
	if err != nil {
		return nil, fmt.Errorf("转轴配置加载失败: %w", err)
	}

	b, err := NewBackend(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("后端初始化失败: %w", err)
	}

	settings := game.NewSettingsManager(openStorage(l), l)

	orchestrator := game.NewSpinOrchestrator(reelCfg, l)
	orchestrator.AddListener(game.NewAudioManager(audio.NewContext(audioSampleRate), settings, l))
	orchestrator.AddListener(game.ListenerFuncs{ReelSetRebuilt: settings.OnReelSetRebuilt})

	controller := game.NewSpinController(context.Background(), b, orchestrator, l)
	if err := controller.Load(); err != nil {
		controller.Close()
		return nil, fmt.Errorf("读取转轴配置失败: %w", err)
	}
	if err := controller.RestoreCounts(settings.GetSettings()); err != nil {
		l.Warn("failed to restore saved counts", zap.Error(err))
	}

	sceneManager := game.NewSceneManager(l)
	sceneManager.SwitchTo(scenes.NewSlotScene(orchestrator, controller, settings, reelCfg, l))

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	l.Named("App").Info("app initialized",
		zap.Bool("remote", cfg.BackendURL != ""), zap.Float64("pitch", reelCfg.Track.Pitch))

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		reelConfig:   reelCfg,
		logger:       l.Named("App"),
	}, nil
}

// LoadReelConfig 读取转轴配置；override 为空时使用嵌入的默认配置
func LoadReelConfig(override string) (*config.ReelConfig, error) {
	data, err := embedded.Load(ReelConfigPath, override)
	if err != nil {
		return nil, err
	}
	return config.ParseReelConfig(data)
}

// NewBackend 按启动配置选择出奖服务
//
// 指定 BackendURL 时连接远程服务，否则创建进程内演示后端。
func NewBackend(cfg Config, l *zap.Logger) (backend.Backend, error) {
	if cfg.BackendURL != "" {
		return httpapi.NewHTTPBackend(cfg.BackendURL, nil), nil
	}

	data, err := embedded.Load(BackendConfigPath, cfg.BackendConfigFile)
	if err != nil {
		return nil, err
	}
	bcfg, err := local.ParseConfig(data)
	if err != nil {
		return nil, err
	}
	return local.New(bcfg, l), nil
}

// openStorage 打开 gdata 存储，失败时返回 nil（设置仅保存在内存中）
func openStorage(l *zap.Logger) *gdata.Manager {
	m, err := gdata.Open(gdata.Config{AppName: storageAppName})
	if err != nil {
		l.Warn("gdata unavailable, settings will not persist", zap.Error(err))
		return nil
	}
	return m
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	return a.sceneManager.Update(FrameDelta(a.reelConfig.NominalFrameRate, ebiten.TPS()))
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settings.SetFullscreen(ebiten.IsFullscreen())
	if err := a.settings.Save(); err != nil {
		a.logger.Warn("failed to save fullscreen setting", zap.Error(err))
	}
}

// FrameDelta 把一个 ebiten tick 换算成名义帧数
//
// tps 非正（与帧率同步）时按一帧计。
func FrameDelta(nominalFrameRate float64, tps int) float64 {
	if tps <= 0 || nominalFrameRate <= 0 {
		return 1
	}
	return nominalFrameRate / float64(tps)
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Shutdown 保存设置并停止后台请求，返回是否保存成功
func (a *App) Shutdown() bool {
	ok := a.sceneManager.Shutdown()
	_ = a.logger.Sync()
	return ok
}
