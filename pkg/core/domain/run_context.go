package domain

import (
	"context"
	"log/slog"
)

// RunInfo 携带一次分析运行的上下文信息
// 加载器用 Source 在错误信息中标出文件，服务层把整个 RunInfo 作为日志标签
type RunInfo struct {
	Source string // 输入文件路径
	Gas    string // e.g. "argon", "xenon"
	Label  string // 图标题或数据集名称
}

// LogValue 日志中按组输出，空字段省略
func (r RunInfo) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 3)
	if r.Source != "" {
		attrs = append(attrs, slog.String("source", r.Source))
	}
	if r.Gas != "" {
		attrs = append(attrs, slog.String("gas", r.Gas))
	}
	if r.Label != "" {
		attrs = append(attrs, slog.String("label", r.Label))
	}
	return slog.GroupValue(attrs...)
}

type runInfoKey struct{}

// NewContext returns a new Context that carries the RunInfo value.
func NewContext(ctx context.Context, info RunInfo) context.Context {
	return context.WithValue(ctx, runInfoKey{}, info)
}

// FromContext returns the RunInfo value stored in ctx, if any.
func FromContext(ctx context.Context) (RunInfo, bool) {
	info, ok := ctx.Value(runInfoKey{}).(RunInfo)
	return info, ok
}

// SourceFromContext 返回 ctx 中记录的输入文件，没有时返回空串
func SourceFromContext(ctx context.Context) string {
	if info, ok := FromContext(ctx); ok {
		return info.Source
	}
	return ""
}
