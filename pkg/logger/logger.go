// Package logger 基于zerolog的结构化日志
//
// 设计说明：
// 1. 全局单例logger，通过Init由配置初始化
// 2. format=console时输出人类可读格式（开发环境），json时输出结构化日志（生产环境）
// 3. EnableCaller开启后记录调用位置，便于排查问题
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// L 全局logger实例
// 默认输出到stderr，Init之前也可安全使用
var L = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Config 日志配置（由infrastructure/config注入，避免循环依赖）
type Config struct {
	Level        string // debug | info | warn | error
	Format       string // console | json
	Output       string // stdout | stderr | /path/to/file
	EnableCaller bool
}

// Init 根据配置初始化全局logger
func Init(cfg Config) error {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer
	switch cfg.Output {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		out = f
	}

	// 开发环境使用带颜色的控制台格式
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.EnableCaller {
		ctx = ctx.Caller()
	}
	L = ctx.Logger()
	return nil
}

// With 派生带组件标签的logger
// 用法：log := logger.With("component", "order")
func With(key, value string) zerolog.Logger {
	return L.With().Str(key, value).Logger()
}
