package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/renjie/driftkit/pkg/core/domain"
)

// errPoints 同时提供坐标与 y 误差，供 plotter.NewYErrorBars 使用
type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

// SpeedVoltage 每个压强一条 速度-电压 折线，带标准差误差棒，颜色按压强升序映射
func SpeedVoltage(groups *domain.Group[domain.DerivedSample], opts Options) (*PlotFigure, error) {
	if err := groups.Validate(); err != nil {
		return nil, err
	}
	if groups.Len() == 0 {
		return nil, fmt.Errorf("%w: nothing to plot", domain.ErrEmptyGroup)
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = orDefault(opts.XLabel, "Voltage [V]")
	p.Y.Label.Text = orDefault(opts.YLabel, "Drift Speed [cm/s]")
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	keys := groups.SortedKeys()
	colors := newValueColors(keys)

	for _, key := range keys {
		bucket, _ := groups.Get(key)
		pts := make(plotter.XYs, len(bucket))
		errs := make(plotter.YErrors, len(bucket))
		for i, s := range bucket {
			pts[i].X = s.Voltage
			pts[i].Y = s.SpeedCMPerSecond
			errs[i].Low = s.SpreadCMPerSecond
			errs[i].High = s.SpreadCMPerSecond
		}

		c := colors.At(key)
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, fmt.Errorf("pressure %v: %w", key, err)
		}
		line.Color = c
		points.Color = c
		points.Shape = draw.CircleGlyph{}

		bars, err := plotter.NewYErrorBars(errPoints{XYs: pts, YErrors: errs})
		if err != nil {
			return nil, fmt.Errorf("pressure %v: %w", key, err)
		}
		bars.LineStyle.Color = c
		bars.CapWidth = 3 * vg.Millimeter

		p.Add(line, points, bars)
		p.Legend.Add(fmt.Sprintf("%.1f Torr", key), line, points)
	}

	return newPlotFigure(p, opts), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
