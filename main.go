package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/decker502/slots/pkg/app"
	"github.com/decker502/slots/pkg/config"
	"github.com/decker502/slots/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "输出详细日志")
	backendURL := flag.String("backend", "", "远程出奖服务地址（如 http://127.0.0.1:8080），为空时使用本地演示后端")
	reelConfig := flag.String("config", "", "转轴配置文件，覆盖内置的 data/reels.yaml")
	backendConfig := flag.String("backend-config", "", "本地演示后端配置文件，覆盖内置的 data/backend.yaml")
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:           *verbose,
		BackendURL:        *backendURL,
		ReelConfigFile:    *reelConfig,
		BackendConfigFile: *backendConfig,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	// 收到系统退出信号时保存设置
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		gameApp.Shutdown()
		os.Exit(0)
	}()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Slots")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(gameApp)
	gameApp.Shutdown()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", runErr)
		os.Exit(1)
	}
}
