package config

import (
	"io"
	"log/slog"
	"os"
)

// InitLogger 初始化全局 slog 日志，输出到 stderr
// verbose 时打开 debug 级别 (各阶段的样本计数)
func InitLogger(verbose bool) *slog.Logger {
	return initLogger(os.Stderr, verbose)
}

func initLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
