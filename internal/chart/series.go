package chart

// Series is the normalized, validated form of a Request for one chart kind.
type Series interface {
	Kind() Kind
	// Points is the number of plotted elements (wedges, bars, points, samples).
	Points() int
	ChartTitle() string
}

// Default axis labels. The line pair is the only one supported.
const (
	DefaultBarXLabel       = "Categories"
	DefaultBarYLabel       = "Values"
	DefaultLineXLabel      = "X Axis"
	DefaultLineYLabel      = "Y Axis"
	DefaultHistogramXLabel = "Values"
	HistogramYLabel        = "Frequency"
	DefaultBins            = 10
	DefaultBarColor        = "steelblue"
	HistogramColor         = "skyblue"
)

// MaxHistogramBins bounds the bin slice allocated at render time. Larger
// counts pass validation but fail to render.
const MaxHistogramBins = 10000

type PieSeries struct {
	Labels []string
	Values []float64
	Colors []string
	Title  string
}

func (s *PieSeries) Kind() Kind         { return KindPie }
func (s *PieSeries) Points() int        { return len(s.Values) }
func (s *PieSeries) ChartTitle() string { return s.Title }

// Percentages returns each wedge's share of the total, in percent.
func (s *PieSeries) Percentages() []float64 {
	var total float64
	for _, v := range s.Values {
		total += v
	}
	out := make([]float64, len(s.Values))
	if total == 0 {
		return out
	}
	for i, v := range s.Values {
		out[i] = v / total * 100
	}
	return out
}

type BarSeries struct {
	Labels []string
	Values []float64
	Color  string
	XLabel string
	YLabel string
	Title  string
}

func (s *BarSeries) Kind() Kind         { return KindBar }
func (s *BarSeries) Points() int        { return len(s.Values) }
func (s *BarSeries) ChartTitle() string { return s.Title }

type LineSeries struct {
	X      []float64
	Y      []float64
	XLabel string
	YLabel string
	Title  string
}

func (s *LineSeries) Kind() Kind         { return KindLine }
func (s *LineSeries) Points() int        { return len(s.Y) }
func (s *LineSeries) ChartTitle() string { return s.Title }

type HistogramSeries struct {
	Data   []float64
	Bins   int
	XLabel string
	Title  string
}

func (s *HistogramSeries) Kind() Kind         { return KindHistogram }
func (s *HistogramSeries) Points() int        { return len(s.Data) }
func (s *HistogramSeries) ChartTitle() string { return s.Title }
