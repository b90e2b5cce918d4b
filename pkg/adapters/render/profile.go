package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"

	"github.com/renjie/driftkit/pkg/core/domain"
)

// ChartFigure 实现 ports.Figure，基于 go-chart
type ChartFigure struct {
	graph chart.Chart
}

// Save 支持 .png 和 .svg
func (f *ChartFigure) Save(path string) error {
	var provider chart.RendererProvider
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		provider = chart.PNG
	case ".svg":
		provider = chart.SVG
	default:
		return fmt.Errorf("%w: unsupported image format %q", domain.ErrInvalidConfig, filepath.Ext(path))
	}

	return saveAtomic(path, func(tmp string) error {
		out, err := os.Create(tmp)
		if err != nil {
			return err
		}
		if err := f.graph.Render(provider, out); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	})
}

// FieldProfile Ez 随 z 的折线，各漂移区边界用竖线标出
func FieldProfile(profile *domain.FieldProfile, regions []domain.Region, opts Options) (*ChartFigure, error) {
	if profile == nil || len(profile.Points) == 0 {
		return nil, fmt.Errorf("%w: empty field profile", domain.ErrEmptyGroup)
	}

	zs := make([]float64, len(profile.Points))
	ez := make([]float64, len(profile.Points))
	for i, pt := range profile.Points {
		zs[i] = pt.Z
		ez[i] = pt.Ez
	}
	yMin, yMax := floats.Min(ez), floats.Max(ez)

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Ez",
			XValues: zs,
			YValues: ez,
			Style: chart.Style{
				StrokeColor: chart.ColorRed,
				StrokeWidth: 2.0,
				DotColor:    chart.ColorRed,
				DotWidth:    2.0,
			},
		},
	}

	// 区域边界: 每个区域的起点，再加最后一个区域的终点
	for i, r := range regions {
		series = append(series, edgeSeries(r.Name, r.From, yMin, yMax, r.Color))
		if i == len(regions)-1 {
			series = append(series, edgeSeries(r.Name, r.To, yMin, yMax, r.Color))
		}
	}

	w, h := opts.size()
	graph := chart.Chart{
		Title:  opts.Title,
		Width:  int(w.Points()),
		Height: int(h.Points()),
		XAxis: chart.XAxis{
			Name:  orDefault(opts.XLabel, "Z [cm]"),
			Style: chart.Style{FontSize: 10.0},
		},
		YAxis: chart.YAxis{
			Name:  orDefault(opts.YLabel, "Electric Field [V/cm]"),
			Style: chart.Style{FontSize: 10.0},
		},
		Series: series,
	}
	return &ChartFigure{graph: graph}, nil
}

func edgeSeries(name string, x, yMin, yMax float64, hex string) chart.ContinuousSeries {
	c := chart.ColorBlack
	if hex != "" {
		c = drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
	}
	return chart.ContinuousSeries{
		Name:    name,
		XValues: []float64{x, x},
		YValues: []float64{yMin, yMax},
		Style: chart.Style{
			StrokeColor:     c,
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}
}
