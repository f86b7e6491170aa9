// slots-tui 终端版老虎机
//
// 用法:
//
//	go run ./cmd/slots-tui
//	go run ./cmd/slots-tui -backend http://127.0.0.1:8080 -log /tmp/slots.log
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/decker502/slots/pkg/backend"
	"github.com/decker502/slots/pkg/backend/httpapi"
	"github.com/decker502/slots/pkg/backend/local"
	"github.com/decker502/slots/pkg/config"
	"github.com/decker502/slots/pkg/game"
	"github.com/decker502/slots/pkg/logger"
	"github.com/decker502/slots/pkg/tui"
	"github.com/gdamore/tcell/v2"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
)

func main() {
	backendURL := flag.String("backend", "", "远程出奖服务地址，为空时使用本地演示后端")
	reelConfig := flag.String("config", "", "转轴配置文件（为空时使用默认参数）")
	backendConfig := flag.String("backend-config", "", "本地演示后端配置文件")
	logPath := flag.String("log", "", "日志文件路径（为空时不输出日志）")
	mute := flag.Bool("mute", false, "关闭音效")
	flag.Parse()

	l := zap.NewNop()
	if *logPath != "" {
		fl, err := logger.NewFile(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "日志初始化失败: %v\n", err)
			os.Exit(1)
		}
		l = fl
	}
	defer l.Sync()

	err := run(*backendURL, *reelConfig, *backendConfig, *mute, l)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}
}

func run(backendURL, reelConfigPath, backendConfigPath string, mute bool, l *zap.Logger) error {
	cfg := config.DefaultReelConfig()
	if reelConfigPath != "" {
		loaded, err := config.LoadReelConfig(reelConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	b, err := newBackend(backendURL, backendConfigPath, l)
	if err != nil {
		return err
	}

	var storage *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: "slots"}); err == nil {
		storage = m
	} else {
		l.Warn("gdata unavailable, settings will not persist", zap.Error(err))
	}
	settings := game.NewSettingsManager(storage, l)
	if mute {
		settings.SetSoundEnabled(false)
	}

	sounds := tui.NewSoundManager(settings, l)
	if err := sounds.Initialize(); err != nil {
		l.Warn("audio unavailable", zap.Error(err))
	}
	defer sounds.Cleanup()

	orchestrator := game.NewSpinOrchestrator(cfg, l)
	orchestrator.AddListener(sounds)
	orchestrator.AddListener(game.ListenerFuncs{ReelSetRebuilt: settings.OnReelSetRebuilt})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	controller := game.NewSpinController(ctx, b, orchestrator, l)
	defer controller.Close()
	if err := controller.Load(); err != nil {
		return err
	}
	if err := controller.RestoreCounts(settings.GetSettings()); err != nil {
		l.Warn("failed to restore saved counts", zap.Error(err))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	runErr := tui.NewRunner(screen, orchestrator, controller, settings, cfg, l).Run(ctx)
	if err := settings.Save(); err != nil {
		l.Warn("failed to save settings", zap.Error(err))
	}
	return runErr
}

func newBackend(url, configPath string, l *zap.Logger) (backend.Backend, error) {
	if url != "" {
		return httpapi.NewHTTPBackend(url, nil), nil
	}
	cfg := local.DefaultConfig()
	if configPath != "" {
		loaded, err := local.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	return local.New(cfg, l), nil
}
