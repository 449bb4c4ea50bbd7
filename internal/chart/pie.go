package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// pieStartAngle places the first wedge at twelve o'clock; wedges run
// counter-clockwise from there.
const pieStartAngle = math.Pi / 2

type wedge struct {
	Label     string
	Percent   float64
	Start     float64
	Sweep     float64
	Fill      color.Color
	TextColor color.Color
}

// pieChart is a plot.Plotter drawing labeled, percentage-annotated wedges.
type pieChart struct {
	wedges    []wedge
	labelFont vg.Length
}

func newPieChart(s *PieSeries, fontSize vg.Length) (*pieChart, error) {
	var total float64
	for _, v := range s.Values {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("wedge sizes must be finite and non-negative, got %v", v)
		}
		total += v
	}
	if total == 0 {
		return nil, errors.New("wedge sizes sum to zero")
	}

	fills := wedgeColors(s.Colors, len(s.Values))
	percents := s.Percentages()
	pc := &pieChart{wedges: make([]wedge, len(s.Values)), labelFont: fontSize}
	angle := pieStartAngle
	for i := range s.Values {
		sweep := 2 * math.Pi * s.Values[i] / total
		pc.wedges[i] = wedge{
			Label:     s.Labels[i],
			Percent:   percents[i],
			Start:     angle,
			Sweep:     sweep,
			Fill:      fills[i],
			TextColor: ContrastTextColor(fills[i]),
		}
		angle += sweep
	}
	return pc, nil
}

// DataRange implements plot.DataRanger so the hidden axes span the unit box.
func (pc *pieChart) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -1, 1, -1, 1
}

// Plot implements plot.Plotter.
func (pc *pieChart) Plot(c draw.Canvas, _ *plot.Plot) {
	w := c.Max.X - c.Min.X
	h := c.Max.Y - c.Min.Y
	center := vg.Point{X: c.Min.X + w/2, Y: c.Min.Y + h/2}
	r := vg.Length(math.Min(float64(w), float64(h))) / 2 * 0.8

	for _, wd := range pc.wedges {
		var path vg.Path
		path.Move(center)
		path.Arc(center, r, wd.Start, wd.Sweep)
		path.Close()
		c.SetColor(wd.Fill)
		c.Fill(path)
		c.SetLineWidth(vg.Points(1))
		c.SetColor(color.White)
		c.Stroke(path)
	}

	for _, wd := range pc.wedges {
		mid := wd.Start + wd.Sweep/2
		cos, sin := math.Cos(mid), math.Sin(mid)

		inner := pc.textStyle(wd.TextColor, xfont.WeightBold)
		inner.XAlign, inner.YAlign = text.XCenter, text.YCenter
		c.FillText(inner, vg.Point{X: center.X + r*0.6*vg.Length(cos), Y: center.Y + r*0.6*vg.Length(sin)},
			fmt.Sprintf("%.1f%%", wd.Percent))

		outer := pc.textStyle(color.Black, xfont.WeightNormal)
		outer.XAlign, outer.YAlign = text.XLeft, text.YCenter
		if cos < 0 {
			outer.XAlign = text.XRight
		}
		c.FillText(outer, vg.Point{X: center.X + r*1.1*vg.Length(cos), Y: center.Y + r*1.1*vg.Length(sin)}, wd.Label)
	}
}

func (pc *pieChart) textStyle(col color.Color, weight xfont.Weight) text.Style {
	fnt := plot.DefaultFont
	fnt.Size = pc.labelFont
	fnt.Weight = weight
	return text.Style{
		Color:   col,
		Font:    fnt,
		Handler: plot.DefaultTextHandler,
	}
}
