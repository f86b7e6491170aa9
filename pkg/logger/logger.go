// Package logger 提供全局日志构造
//
// 默认静默（Nop），仅在 -verbose 时输出开发模式日志，
// 与桌面端"非详细模式丢弃日志"的行为保持一致。
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New 创建日志器
//
// 参数:
//   - verbose: true 时输出带颜色的开发模式日志（Debug 级别），false 时返回 Nop
//
// 返回:
//   - *zap.Logger: 日志器，调用方负责在退出前 Sync
func New(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// NewProduction 创建 JSON 格式的生产日志器（后端服务使用）
func NewProduction(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// OrNop 把 nil 日志器替换为 Nop，便于组件接受可选日志器
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// NewFile 把开发模式日志写入文件（终端版使用，避免日志打乱画面）
func NewFile(path string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
