package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	gridColor   = color.Gray{Y: 0xd9}
	lineColor   = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	edgeColor   = color.Black
	titleSize   = vg.Points(16)
	titlePad    = vg.Points(20)
	axisSize    = vg.Points(12)
	tickSize    = vg.Points(9)
	annotSize   = vg.Points(10)
	pieTextSize = vg.Points(12)
)

// Options control the raster output of the engine.
type Options struct {
	ExportDir            string
	DPI                  int
	WidthInches          float64
	HeightInches         float64
	MaxConcurrentRenders int
}

// DefaultOptions renders 12x8 inch images at 300 DPI.
func DefaultOptions(exportDir string) Options {
	return Options{
		ExportDir:            exportDir,
		DPI:                  300,
		WidthInches:          12,
		HeightInches:         8,
		MaxConcurrentRenders: 4,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions(o.ExportDir)
	if o.DPI <= 0 {
		o.DPI = d.DPI
	}
	if o.WidthInches <= 0 {
		o.WidthInches = d.WidthInches
	}
	if o.HeightInches <= 0 {
		o.HeightInches = d.HeightInches
	}
	if o.MaxConcurrentRenders <= 0 {
		o.MaxConcurrentRenders = d.MaxConcurrentRenders
	}
	return o
}

func (o Options) width() vg.Length  { return vg.Length(o.WidthInches) * vg.Inch }
func (o Options) height() vg.Length { return vg.Length(o.HeightInches) * vg.Inch }

// buildPlot constructs the figure for s. The returned plot is owned by the
// caller and shares nothing with other calls.
func buildPlot(s Series, o Options) (p *plot.Plot, err error) {
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("plot construction panicked: %v", r)
		}
	}()

	p = plot.New()
	p.BackgroundColor = color.White
	switch s := s.(type) {
	case *PieSeries:
		err = drawPie(p, s)
	case *BarSeries:
		err = drawBar(p, s, o)
	case *LineSeries:
		err = drawLine(p, s)
	case *HistogramSeries:
		err = drawHistogram(p, s)
	default:
		err = fmt.Errorf("unsupported series %T", s)
	}
	if err != nil {
		return nil, err
	}

	p.Title.Text = s.ChartTitle()
	p.Title.TextStyle.Font.Size = titleSize
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.Title.Padding = titlePad
	return p, nil
}

func drawPie(p *plot.Plot, s *PieSeries) error {
	pc, err := newPieChart(s, pieTextSize)
	if err != nil {
		return err
	}
	p.HideAxes()
	p.Add(pc)
	return nil
}

func drawBar(p *plot.Plot, s *BarSeries, o Options) error {
	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = gridColor
	grid.Horizontal.Width = vg.Points(0.5)
	p.Add(grid)

	// bars take 80% of each category slot of the data area
	slot := o.width() * 0.85 / vg.Length(len(s.Values))
	bars, err := plotter.NewBarChart(plotter.Values(s.Values), slot*0.8)
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = withAlpha(colorOr(s.Color, DefaultBarColor), 0.8)
	bars.LineStyle.Color = edgeColor
	bars.LineStyle.Width = vg.Points(0.5)
	p.Add(bars)

	maxV := 0.0
	for _, v := range s.Values {
		maxV = math.Max(maxV, v)
	}
	xys := make(plotter.XYs, len(s.Values))
	texts := make([]string, len(s.Values))
	for i, v := range s.Values {
		xys[i] = plotter.XY{X: float64(i), Y: v + maxV*0.01}
		texts[i] = FormatValue(v)
	}
	annotations, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return fmt.Errorf("bar labels: %w", err)
	}
	for i := range annotations.TextStyle {
		annotations.TextStyle[i].XAlign = text.XCenter
		annotations.TextStyle[i].YAlign = text.YBottom
		annotations.TextStyle[i].Font.Size = annotSize
		annotations.TextStyle[i].Font.Weight = xfont.WeightBold
	}
	p.Add(annotations)

	p.NominalX(s.Labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	p.X.Tick.Label.Font.Size = tickSize
	setAxisLabels(p, s.XLabel, s.YLabel, true)
	p.X.Label.Padding = vg.Points(12)

	p.Y.Min = 0
	if top := maxV * 1.08; p.Y.Max < top {
		p.Y.Max = top
	}
	if p.Y.Max <= p.Y.Min {
		p.Y.Max = p.Y.Min + 1
	}
	return nil
}

func drawLine(p *plot.Plot, s *LineSeries) error {
	grid := plotter.NewGrid()
	grid.Horizontal.Color = gridColor
	grid.Vertical.Color = gridColor
	p.Add(grid)

	xys := make(plotter.XYs, len(s.X))
	for i := range s.X {
		xys[i] = plotter.XY{X: s.X[i], Y: s.Y[i]}
	}
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("line chart: %w", err)
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = lineColor
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	points.GlyphStyle.Radius = vg.Points(3)
	points.GlyphStyle.Color = lineColor
	p.Add(line, points)
	setAxisLabels(p, s.XLabel, s.YLabel, false)
	return nil
}

func drawHistogram(p *plot.Plot, s *HistogramSeries) error {
	if s.Bins > MaxHistogramBins {
		return fmt.Errorf("histogram: %d bins exceeds the limit of %d", s.Bins, MaxHistogramBins)
	}
	h, err := plotter.NewHist(plotter.Values(s.Data), s.Bins)
	if err != nil {
		return fmt.Errorf("histogram: %w", err)
	}
	h.FillColor = withAlpha(namedColor(HistogramColor), 0.7)
	h.LineStyle.Color = edgeColor
	h.LineStyle.Width = vg.Points(0.5)
	p.Add(h)
	setAxisLabels(p, s.XLabel, HistogramYLabel, false)
	return nil
}

func setAxisLabels(p *plot.Plot, x, y string, bold bool) {
	p.X.Label.Text = x
	p.Y.Label.Text = y
	if bold {
		p.X.Label.TextStyle.Font.Weight = xfont.WeightBold
		p.Y.Label.TextStyle.Font.Weight = xfont.WeightBold
		p.X.Label.TextStyle.Font.Size = axisSize
		p.Y.Label.TextStyle.Font.Size = axisSize
	}
}

// writePNG draws p on a fresh white raster canvas and encodes it as PNG.
func writePNG(p *plot.Plot, o Options, w io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("drawing panicked: %v", r)
		}
	}()
	c := vgimg.NewWith(
		vgimg.UseWH(o.width(), o.height()),
		vgimg.UseDPI(o.DPI),
		vgimg.UseBackgroundColor(color.White),
	)
	p.Draw(draw.New(c))
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
