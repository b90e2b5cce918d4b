package ports

import (
	"context"
	"io"

	"github.com/renjie/driftkit/pkg/core/domain"
)

// SampleLoader 数据加载接口
// 要么整个文件加载成功，要么返回错误，不存在部分成功
type SampleLoader interface {
	Load(ctx context.Context, r io.Reader) ([]domain.Sample, error)
}

// Figure 已构建好的图，Save 根据扩展名选择输出格式 (png, svg, pdf ...)
type Figure interface {
	Save(path string) error
}
