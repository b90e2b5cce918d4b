package render

import (
	"fmt"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/renjie/driftkit/pkg/core/domain"
	"github.com/renjie/driftkit/pkg/core/services"
)

// ReducedAxis 约化场横轴: E/N 或 E/P
type ReducedAxis string

const (
	AxisEOverN ReducedAxis = "en"
	AxisEOverP ReducedAxis = "ep"
)

func (a ReducedAxis) value(s domain.DerivedSample) (float64, error) {
	switch a {
	case AxisEOverN, "":
		return s.ReducedFieldN, nil
	case AxisEOverP:
		return s.ReducedFieldP, nil
	}
	return 0, fmt.Errorf("%w: unknown reduced-field axis %q", domain.ErrInvalidConfig, a)
}

func (a ReducedAxis) label() string {
	if a == AxisEOverP {
		return "E/P [V/(cm Torr)]"
	}
	return "E/N [V cm^2]"
}

// ReducedField 速度-约化场散点，颜色按电场映射
// regimes 不为空时，低场区的点单独用红色方块画出
func ReducedField(derived []domain.DerivedSample, regimes *services.Partition[domain.DerivedSample], axis ReducedAxis, opts Options) (*PlotFigure, error) {
	if len(derived) == 0 {
		return nil, fmt.Errorf("%w: nothing to plot", domain.ErrEmptyGroup)
	}
	if _, err := axis.value(derived[0]); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = orDefault(opts.XLabel, axis.label())
	p.Y.Label.Text = orDefault(opts.YLabel, "Drift Speed [cm/s]")
	p.Add(plotter.NewGrid())

	// 颜色归一化覆盖全部样本的电场范围
	fields := make([]float64, len(derived))
	for i, s := range derived {
		fields[i] = s.Field
	}
	colors := newValueColors(fields)

	nominal, low := derived, []domain.DerivedSample(nil)
	if regimes != nil {
		nominal = regimes.Bucket(domain.RegimeNominal)
		low = regimes.Bucket(domain.RegimeLowField)
	}

	if len(nominal) > 0 {
		scatter, bars, err := reducedSeries(nominal, axis)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			gs := scatter.GlyphStyle
			gs.Color = colors.At(nominal[i].Field)
			return gs
		}
		bars.LineStyle.Color = withAlpha(colornames.Gray, 128)
		p.Add(bars, scatter)
		if regimes != nil {
			p.Legend.Add("High E-field", scatter)
		}
	}

	if len(low) > 0 {
		scatter, bars, err := reducedSeries(low, axis)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Shape = draw.SquareGlyph{}
		scatter.GlyphStyle.Color = colornames.Red
		bars.LineStyle.Color = withAlpha(colornames.Red, 77)
		p.Add(bars, scatter)
		if limit, ok := regimeLimit(regimes); ok {
			p.Legend.Add(fmt.Sprintf("E < %g V/cm", limit), scatter)
		}
	}

	return newPlotFigure(p, opts), nil
}

func reducedSeries(samples []domain.DerivedSample, axis ReducedAxis) (*plotter.Scatter, *plotter.YErrorBars, error) {
	pts := make(plotter.XYs, len(samples))
	errs := make(plotter.YErrors, len(samples))
	for i, s := range samples {
		x, err := axis.value(s)
		if err != nil {
			return nil, nil, err
		}
		pts[i].X = x
		pts[i].Y = s.SpeedCMPerSecond
		errs[i].Low = s.SpreadCMPerSecond
		errs[i].High = s.SpreadCMPerSecond
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, nil, err
	}
	scatter.GlyphStyle.Radius = vg.Points(3)

	bars, err := plotter.NewYErrorBars(errPoints{XYs: pts, YErrors: errs})
	if err != nil {
		return nil, nil, err
	}
	bars.CapWidth = 2 * vg.Millimeter
	return scatter, bars, nil
}

// regimeLimit 从分类结果中取出阈值 (低场桶里任一样本的 Reference)
func regimeLimit(regimes *services.Partition[domain.DerivedSample]) (float64, bool) {
	if regimes == nil {
		return 0, false
	}
	for _, o := range regimes.Outcomes {
		if o.Label == domain.RegimeLowField {
			return o.Reference, true
		}
	}
	return 0, false
}
