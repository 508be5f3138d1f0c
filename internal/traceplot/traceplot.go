// Package traceplot renders tremolo gain and output traces as PNG images.
package traceplot

import (
	"fmt"
	"image/color"
	"io"

	"github.com/cboule/tremolo-dsp/dsp/core"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	defaultWidth  = 24 * vg.Centimeter
	defaultHeight = 16 * vg.Centimeter
)

// Trace is the data of one tremolo run.
type Trace struct {
	Title  string
	Gains  []int
	Output []int16
}

// Options control the rendered image.
type Options struct {
	Width  vg.Length
	Height vg.Length
	// MaxPoints limits the plotted samples; 0 plots everything.
	MaxPoints int
}

// WritePNG draws the gain trace above the output signal and writes the
// result to w as PNG.
func WritePNG(w io.Writer, tr Trace, opts Options) error {
	if len(tr.Gains) == 0 {
		return fmt.Errorf("traceplot: empty gain trace")
	}
	if len(tr.Output) != 0 && len(tr.Output) != len(tr.Gains) {
		return fmt.Errorf("traceplot: trace length mismatch: gains=%d output=%d", len(tr.Gains), len(tr.Output))
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	n := len(tr.Gains)
	if opts.MaxPoints > 0 && opts.MaxPoints < n {
		n = opts.MaxPoints
	}

	gainPlot, err := linePlot(tr.Title, "gain", gainXYs(tr.Gains[:n]), color.RGBA{R: 200, A: 255})
	if err != nil {
		return err
	}

	plots := []*plot.Plot{gainPlot}
	if len(tr.Output) != 0 {
		outPlot, err := linePlot("", "output (full scale)", outputXYs(tr.Output[:n]), color.RGBA{B: 200, A: 255})
		if err != nil {
			return err
		}
		plots = append(plots, outPlot)
	}

	c := vgimg.New(width, height)
	dc := draw.New(c)
	tiles := draw.Tiles{Rows: len(plots), Cols: 1, PadY: vg.Millimeter}
	canvases := plot.Align(columnOf(plots), tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[i][0])
	}

	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("traceplot: write png: %w", err)
	}
	return nil
}

func linePlot(title, yLabel string, xys plotter.XYs, col color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "sample"
	p.Y.Label.Text = yLabel

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("traceplot: %s line: %w", yLabel, err)
	}
	line.Color = col
	p.Add(line, plotter.NewGrid())
	return p, nil
}

func columnOf(plots []*plot.Plot) [][]*plot.Plot {
	rows := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		rows[i] = []*plot.Plot{p}
	}
	return rows
}

func gainXYs(gains []int) plotter.XYs {
	xys := make(plotter.XYs, len(gains))
	for i, g := range gains {
		xys[i].X = float64(i + 1)
		xys[i].Y = float64(g)
	}
	return xys
}

func outputXYs(out []int16) plotter.XYs {
	xys := make(plotter.XYs, len(out))
	for i, s := range out {
		xys[i].X = float64(i + 1)
		xys[i].Y = core.Int16ToFloat(s)
	}
	return xys
}
