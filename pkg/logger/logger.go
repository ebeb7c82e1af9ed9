// Package logger 提供基于zap的结构化日志
//
// 设计说明：
// 1. 统一从LogConfig初始化，支持console（开发）和json（生产）两种格式
// 2. 全局Logger通过Init注入，业务代码使用logger.L()获取
// 3. 错误日志只在pkg/response统一出口记录一次，避免逐层重复打印
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global *zap.Logger = zap.NewNop()

// Options 日志初始化参数（由config.LogConfig映射而来）
type Options struct {
	Level        string // debug | info | warn | error
	Format       string // console | json
	Output       string // stdout | stderr | /path/to/file
	EnableCaller bool
}

// Init 初始化全局Logger
func Init(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableCaller = !opts.EnableCaller

	if opts.Format == "console" {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	output := opts.Output
	if output == "" {
		output = "stdout"
	}
	cfg.OutputPaths = []string{output}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	global = l
	return l, nil
}

// L 获取全局Logger（未Init时为Nop，便于单元测试）
func L() *zap.Logger {
	return global
}

// Sync 刷新缓冲日志（进程退出前调用）
func Sync() {
	_ = global.Sync()
}
