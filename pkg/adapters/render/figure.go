// Package render 把分组后的数据集交给绘图库并写出图片
//
// gonum/plot 负责散点、误差棒和折线，go-hep/hplot 负责直方图，
// go-chart 负责电场剖面。所有图都先写入同目录的临时文件再改名，
// 失败的运行不会留下半张图。
package render

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot/vg"
)

// Options 图的标题、轴标签和尺寸
type Options struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
}

func (o Options) size() (vg.Length, vg.Length) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 8 * vg.Inch
	}
	if h <= 0 {
		h = 6 * vg.Inch
	}
	return w, h
}

// saver 由 *plot.Plot 和 *hplot.Plot 实现
type saver interface {
	Save(w, h vg.Length, file string) error
}

// PlotFigure 实现 ports.Figure
type PlotFigure struct {
	plot   saver
	width  vg.Length
	height vg.Length
}

func newPlotFigure(p saver, opts Options) *PlotFigure {
	w, h := opts.size()
	return &PlotFigure{plot: p, width: w, height: h}
}

// Save 按扩展名 (png, svg, pdf, eps, jpg, tif) 写出图片
func (f *PlotFigure) Save(path string) error {
	return saveAtomic(path, func(tmp string) error {
		return f.plot.Save(f.width, f.height, tmp)
	})
}

// saveAtomic 先写同目录临时文件，成功后再改名到 path
func saveAtomic(path string, write func(tmp string) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".driftana-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("create temp image: %w", err)
	}
	name := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}

	if err := write(name); err != nil {
		os.Remove(name)
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
