// slots-backend 演示出奖服务
//
// 用法:
//
//	go run ./cmd/slots-backend -addr :8080 -config data/backend.yaml
//
// 桌面端通过 -backend http://127.0.0.1:8080 连接。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/decker502/slots/pkg/backend/httpapi"
	"github.com/decker502/slots/pkg/backend/local"
	"github.com/decker502/slots/pkg/logger"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func main() {
	addr := flag.String("addr", ":8080", "监听地址")
	configPath := flag.String("config", "", "后端配置文件（为空时使用内置演示配置）")
	level := flag.String("log-level", "info", "日志级别: debug, info, warn, error")
	flag.Parse()

	l, err := logger.NewProduction(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "日志初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer l.Sync()

	if err := run(*addr, *configPath, l); err != nil {
		l.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(addr, configPath string, l *zap.Logger) error {
	cfg := local.DefaultConfig()
	if configPath != "" {
		loaded, err := local.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewHTTPHandler(local.New(cfg, l), l),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		l.Info("starting server", zap.String("addr", addr),
			zap.Int("reels", cfg.ReelCount), zap.Int("rows", cfg.RowCount))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	l.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
