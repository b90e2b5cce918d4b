package render

import (
	"image/color"

	"golang.org/x/image/colornames"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// valueColors 把一个连续取值 (压强、电场) 映射到颜色
type valueColors struct {
	cmap     palette.ColorMap
	min, max float64
}

func newValueColors(values []float64) *valueColors {
	vc := &valueColors{}
	if len(values) == 0 {
		return vc
	}
	vc.min, vc.max = floats.Min(values), floats.Max(values)
	if vc.max > vc.min {
		vc.cmap = moreland.SmoothBlueRed()
		vc.cmap.SetMax(vc.max)
		vc.cmap.SetMin(vc.min)
	}
	return vc
}

// At 返回 v 对应的颜色; 取值范围退化为一个点时使用固定颜色
func (vc *valueColors) At(v float64) color.Color {
	if vc.cmap == nil {
		return colornames.Steelblue
	}
	switch {
	case v < vc.min:
		v = vc.min
	case v > vc.max:
		v = vc.max
	}
	c, err := vc.cmap.At(v)
	if err != nil {
		return colornames.Steelblue
	}
	return c
}

// withAlpha 返回带透明度的颜色，用于重叠的直方图
func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}
