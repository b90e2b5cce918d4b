package render

import (
	"fmt"
	"image/color"
	"math"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"golang.org/x/image/colornames"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/renjie/driftkit/pkg/core/domain"
)

// DefaultBins 直方图默认分箱数
const DefaultBins = 100

// DistanceScatter 各电压下 速度-|距离| 散点叠加在一张图上
func DistanceScatter(traces []*domain.DistanceTrace, opts Options) (*PlotFigure, error) {
	if len(traces) == 0 {
		return nil, fmt.Errorf("%w: no traces", domain.ErrEmptyGroup)
	}

	p := plot.New()
	p.Title.Text = orDefault(opts.Title, "Drift Velocity vs Distance Travelled")
	p.X.Label.Text = orDefault(opts.XLabel, "Distance [cm]")
	p.Y.Label.Text = orDefault(opts.YLabel, "Drift Velocity [cm/us]")
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, tr := range traces {
		if len(tr.Points) == 0 {
			return nil, fmt.Errorf("trace HV=%v: %w", tr.Voltage, domain.ErrEmptyGroup)
		}
		pts := make(plotter.XYs, len(tr.Points))
		for j, pt := range tr.Points {
			pts[j].X = math.Abs(pt.Distance)
			pts[j].Y = pt.Velocity
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Radius = vg.Points(2)
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("HV=%g V", tr.Voltage), s)
	}
	return newPlotFigure(p, opts), nil
}

// HistogramSeries 一个总体的速度取值
type HistogramSeries struct {
	Label  string
	Values []float64
}

// populationColors 短程蓝、长程红
var populationColors = []color.Color{colornames.Blue, colornames.Red, colornames.Green, colornames.Purple}

// VelocityHistogram 把若干总体的速度分布叠加画成直方图
// 所有总体共享分箱范围; 空总体不画但也不报错，全部为空时报 ErrEmptyGroup
func VelocityHistogram(series []HistogramSeries, bins int, opts Options) (*PlotFigure, error) {
	if bins <= 0 {
		bins = DefaultBins
	}

	var all []float64
	for _, s := range series {
		all = append(all, s.Values...)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: no velocities to histogram", domain.ErrEmptyGroup)
	}
	lo, hi := histRange(all)

	p := hplot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = orDefault(opts.XLabel, "Drift Velocity [cm/us]")
	p.Y.Label.Text = orDefault(opts.YLabel, "Counts")
	p.Legend.Top = true

	for i, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		h := hbook.NewH1D(bins, lo, hi)
		for _, v := range s.Values {
			h.Fill(v, 1)
		}

		hh := hplot.NewH1D(h)
		c := populationColors[i%len(populationColors)]
		hh.FillColor = withAlpha(c, 153)
		hh.LineStyle.Color = colornames.Black
		p.Add(hh)
		p.Legend.Add(s.Label, hh)
	}
	p.Add(hplot.NewGrid())

	return newPlotFigure(p, opts), nil
}

// histRange 返回覆盖全部取值的左闭右开区间
func histRange(values []float64) (float64, float64) {
	lo, hi := floats.Min(values), floats.Max(values)
	if hi == lo {
		return lo - 0.5, hi + 0.5
	}
	// 最大值落在最后一个箱内而不是溢出
	return lo, hi + (hi-lo)*1e-6
}
