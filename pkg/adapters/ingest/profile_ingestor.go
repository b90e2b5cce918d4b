package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/renjie/driftkit/pkg/core/domain"
)

// ProfileIngestor 加载 "z Ez" 两列的空白分隔文本
// 以 # 开头的行是注释
type ProfileIngestor struct{}

// NewProfileIngestor 创建剖面加载器
func NewProfileIngestor() *ProfileIngestor {
	return &ProfileIngestor{}
}

// Load 逐行解析，任意一行出错则整体失败
func (p *ProfileIngestor) Load(ctx context.Context, stream io.Reader) (*domain.FieldProfile, error) {
	source := domain.SourceFromContext(ctx)

	profile := &domain.FieldProfile{}
	scan := bufio.NewScanner(stream)
	row := 0
	for scan.Scan() {
		row++
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, &domain.RowError{File: source, Row: row, Column: "Ez", Value: line}
		}
		z, err := parseFloatField(fields, 0, "z", source, row)
		if err != nil {
			return nil, err
		}
		ez, err := parseFloatField(fields, 1, "Ez", source, row)
		if err != nil {
			return nil, err
		}
		profile.Points = append(profile.Points, domain.ProfilePoint{Z: z, Ez: ez})
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if len(profile.Points) == 0 {
		return nil, fmt.Errorf("%s: %w: no profile points", source, domain.ErrEmptyGroup)
	}
	return profile, nil
}

// LoadFile 打开并加载一个剖面文件
func (p *ProfileIngestor) LoadFile(ctx context.Context, path string) (*domain.FieldProfile, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Load(withSource(ctx, path), f)
}
