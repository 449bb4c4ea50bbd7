package chart

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, js string) Request {
	t.Helper()
	req, err := ParseRequest([]byte(js))
	if err != nil {
		t.Fatalf("ParseRequest(%s): %v", js, err)
	}
	return req
}

func TestPrepareRejects(t *testing.T) {
	cases := []struct {
		name  string
		kind  Kind
		data  string
		want  ErrorKind
		field string
	}{
		{"pie missing labels", KindPie, `{"values":[1,2,3]}`, MissingRequiredField, "labels"},
		{"pie missing values", KindPie, `{"labels":["A"]}`, MissingRequiredField, "values"},
		{"pie labels not a list", KindPie, `{"labels":"A","values":[1]}`, EmptyOrWrongShape, "labels"},
		{"pie empty values", KindPie, `{"labels":["A"],"values":[]}`, EmptyOrWrongShape, "values"},
		{"pie non-numeric value", KindPie, `{"labels":["A","B"],"values":[1,"two"]}`, NonNumericValue, "values"},
		{"pie length mismatch", KindPie, `{"labels":["A","B"],"values":[1]}`, LengthMismatch, "values"},
		{"pie colors not a list", KindPie, `{"labels":["A"],"values":[1],"colors":"red"}`, EmptyOrWrongShape, "colors"},

		{"bar without any field pair", KindBar, `{"title":"t"}`, MissingRequiredField, "data"},
		{"bar x_labels without y_values", KindBar, `{"x_labels":["A"]}`, MissingRequiredField, "data"},
		{"bar labels/values mismatch", KindBar, `{"labels":["A","B"],"values":[1,2,3]}`, LengthMismatch, "values"},
		{"bar y_values non-numeric", KindBar, `{"x_labels":["A"],"y_values":[null]}`, NonNumericValue, "y_values"},
		{"bar empty data", KindBar, `{"data":[]}`, EmptyOrWrongShape, "data"},
		{"bar data not a list", KindBar, `{"data":{"A":1}}`, EmptyOrWrongShape, "data"},
		{"bar mixed shapes", KindBar, `{"data":[1,["A",2]]}`, InconsistentDataShape, "data"},
		{"bar mapping after tuple", KindBar, `{"data":[["A",1],{"name":"B","value":2}]}`, InconsistentDataShape, "data"},
		{"bar tuple of three", KindBar, `{"data":[["A",1,2]]}`, InconsistentDataShape, "data"},
		{"bar mapping key sets differ", KindBar, `{"data":[{"name":"A","value":1},{"label":"B","value":2}]}`, InconsistentDataShape, "data"},
		{"bar mapping with one key", KindBar, `{"data":[{"value":1}]}`, InconsistentDataShape, "data"},
		{"bar tuple non-numeric", KindBar, `{"data":[["A","x"]]}`, NonNumericValue, "data tuple values"},
		{"bar mapping non-numeric", KindBar, `{"data":[{"name":"A","value":"x"}]}`, NonNumericValue, "data mapping values"},
		{"bar bare non-numeric", KindBar, `{"data":[1,"x"]}`, NonNumericValue, "data values"},

		{"line missing y_values", KindLine, `{"x_values":[1]}`, MissingRequiredField, "y_values"},
		{"line non-numeric y", KindLine, `{"x_values":[1,2],"y_values":[1,"x"]}`, NonNumericValue, "y_values"},
		{"line length mismatch", KindLine, `{"x_values":[1,2,3],"y_values":[1,2]}`, LengthMismatch, "y_values"},

		{"histogram missing data", KindHistogram, `{"bins":5}`, MissingRequiredField, "data"},
		{"histogram empty data", KindHistogram, `{"data":[]}`, EmptyOrWrongShape, "data"},
		{"histogram non-numeric", KindHistogram, `{"data":[1,"a"]}`, NonNumericValue, "data"},
		{"histogram zero bins", KindHistogram, `{"data":[1,1,2,2,2,3],"bins":0}`, InvalidBinCount, "bins"},
		{"histogram negative bins", KindHistogram, `{"data":[1],"bins":-2}`, InvalidBinCount, "bins"},
		{"histogram fractional bins", KindHistogram, `{"data":[1],"bins":2.5}`, InvalidBinCount, "bins"},
		{"histogram string bins", KindHistogram, `{"data":[1],"bins":"5"}`, InvalidBinCount, "bins"},
		{"histogram bool bins", KindHistogram, `{"data":[1],"bins":true}`, InvalidBinCount, "bins"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Prepare(mustParse(t, tc.data), tc.kind)
			if err == nil {
				t.Fatalf("expected %s error, got series %+v", tc.want, s)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if verr.Kind != tc.want {
				t.Fatalf("kind = %s, want %s (%v)", verr.Kind, tc.want, err)
			}
			if verr.Field != tc.field {
				t.Fatalf("field = %q, want %q (%v)", verr.Field, tc.field, err)
			}
			if !errors.Is(err, tc.want.sentinel()) {
				t.Fatalf("errors.Is(err, sentinel of %s) = false", tc.want)
			}
		})
	}
}

func TestPrepareInvalidKind(t *testing.T) {
	for _, k := range []Kind{0, Kind(5), Kind(-1)} {
		_, err := Prepare(Request{"labels": []any{"A"}, "values": []any{1}}, k)
		if KindOf(err) != InvalidKind {
			t.Fatalf("Prepare(kind %d) error kind = %q, want %q", k, KindOf(err), InvalidKind)
		}
	}
}

func TestPrepareNilRequest(t *testing.T) {
	_, err := Prepare(nil, KindPie)
	if KindOf(err) != EmptyOrWrongShape {
		t.Fatalf("error kind = %q, want %q", KindOf(err), EmptyOrWrongShape)
	}
}

func TestPrepareReportsFirstViolation(t *testing.T) {
	cases := []struct {
		name  string
		kind  Kind
		data  string
		want  ErrorKind
		field string
	}{
		// x_values is checked for emptiness before y_values is checked for numbers
		{"line empty x before non-numeric y", KindLine, `{"x_values":[],"y_values":["a"]}`, EmptyOrWrongShape, "x_values"},
		// non-numeric wins over the length mismatch
		{"line non-numeric before mismatch", KindLine, `{"x_values":[1,2,3],"y_values":[1,"x"]}`, NonNumericValue, "y_values"},
		{"pie labels missing before values empty", KindPie, `{"values":[]}`, MissingRequiredField, "labels"},
		{"bar x_labels pair preferred over data", KindBar, `{"x_labels":["A"],"y_values":[],"data":[1]}`, EmptyOrWrongShape, "y_values"},
		{"histogram data checked before bins", KindHistogram, `{"data":["a"],"bins":0}`, NonNumericValue, "data"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Prepare(mustParse(t, tc.data), tc.kind)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Kind != tc.want || verr.Field != tc.field {
				t.Fatalf("got %s on %q, want %s on %q", verr.Kind, verr.Field, tc.want, tc.field)
			}
		})
	}
}

func TestPrepareScenarios(t *testing.T) {
	t.Run("pie from labels and values", func(t *testing.T) {
		s, err := Prepare(mustParse(t, `{"labels":["A","B"],"values":[10,20]}`), KindPie)
		if err != nil {
			t.Fatalf("Prepare: %v", err)
		}
		pie := s.(*PieSeries)
		if !stringsEqual(pie.Labels, []string{"A", "B"}) || !floatsEqual(pie.Values, []float64{10, 20}) {
			t.Fatalf("unexpected series %+v", pie)
		}
		if pie.Colors != nil {
			t.Fatalf("colors = %v, want none", pie.Colors)
		}
		if pie.Title != "Pie Chart" {
			t.Fatalf("title = %q", pie.Title)
		}
	})

	t.Run("pie without labels", func(t *testing.T) {
		_, err := Prepare(mustParse(t, `{"values":[1,2,3]}`), KindPie)
		if KindOf(err) != MissingRequiredField || !strings.Contains(err.Error(), "labels") {
			t.Fatalf("got %v", err)
		}
	})

	t.Run("bar from x_labels and y_values", func(t *testing.T) {
		s, err := Prepare(mustParse(t, `{"x_labels":["Q1","Q2"],"y_values":[5,10]}`), KindBar)
		if err != nil {
			t.Fatalf("Prepare: %v", err)
		}
		bar := s.(*BarSeries)
		if !stringsEqual(bar.Labels, []string{"Q1", "Q2"}) || !floatsEqual(bar.Values, []float64{5, 10}) {
			t.Fatalf("unexpected series %+v", bar)
		}
		if got := FormatValue(bar.Values[1]); got != "10" {
			t.Fatalf("second bar annotation = %q, want 10", got)
		}
		if bar.XLabel != DefaultBarXLabel || bar.YLabel != DefaultBarYLabel || bar.Color != DefaultBarColor {
			t.Fatalf("unexpected defaults %+v", bar)
		}
	})

	t.Run("bar from mappings", func(t *testing.T) {
		s, err := Prepare(mustParse(t, `{"data":[{"name":"A","value":1},{"name":"B","value":2}]}`), KindBar)
		if err != nil {
			t.Fatalf("Prepare: %v", err)
		}
		bar := s.(*BarSeries)
		if !stringsEqual(bar.Labels, []string{"A", "B"}) || !floatsEqual(bar.Values, []float64{1, 2}) {
			t.Fatalf("unexpected series %+v", bar)
		}
	})

	t.Run("bar from bare values", func(t *testing.T) {
		s, err := Prepare(mustParse(t, `{"data":[1,2,3]}`), KindBar)
		if err != nil {
			t.Fatalf("Prepare: %v", err)
		}
		bar := s.(*BarSeries)
		if !stringsEqual(bar.Labels, []string{"Item 1", "Item 2", "Item 3"}) {
			t.Fatalf("labels = %v", bar.Labels)
		}
	})

	t.Run("line with non-numeric y", func(t *testing.T) {
		_, err := Prepare(mustParse(t, `{"x_values":[1,2],"y_values":[1,"x"]}`), KindLine)
		if !errors.Is(err, ErrNonNumericValue) {
			t.Fatalf("got %v", err)
		}
	})

	t.Run("histogram with zero bins", func(t *testing.T) {
		_, err := Prepare(mustParse(t, `{"data":[1,1,2,2,2,3],"bins":0}`), KindHistogram)
		if !errors.Is(err, ErrInvalidBinCount) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestBarShapeIndependence(t *testing.T) {
	inputs := map[string]string{
		"x_labels":      `{"x_labels":["North","South","East"],"y_values":[12,7.5,"3"]}`,
		"labels/values": `{"labels":["North","South","East"],"values":[12,7.5,"3"]}`,
		"tuples":        `{"data":[["North",12],["South",7.5],["East","3"]]}`,
		"mappings":      `{"data":[{"region":"North","sales":12},{"region":"South","sales":7.5},{"region":"East","sales":"3"}]}`,
	}
	wantLabels := []string{"North", "South", "East"}
	wantValues := []float64{12, 7.5, 3}

	for name, js := range inputs {
		t.Run(name, func(t *testing.T) {
			s, err := Prepare(mustParse(t, js), KindBar)
			if err != nil {
				t.Fatalf("Prepare: %v", err)
			}
			bar := s.(*BarSeries)
			if !stringsEqual(bar.Labels, wantLabels) {
				t.Fatalf("labels = %v, want %v", bar.Labels, wantLabels)
			}
			if !floatsEqual(bar.Values, wantValues) {
				t.Fatalf("values = %v, want %v", bar.Values, wantValues)
			}
			if bar.Points() != len(wantLabels) {
				t.Fatalf("points = %d", bar.Points())
			}
		})
	}
}

func TestBarMappingKeyOrder(t *testing.T) {
	// the first key names the label, whatever it is called
	req := Request{"data": []any{
		NewMapping("value", 1, "name", "A"),
		NewMapping("value", 2, "name", "B"),
	}}
	s, err := Prepare(req, KindBar)
	if err == nil {
		t.Fatalf("expected non-numeric error for label column in value position, got %+v", s)
	}
	if KindOf(err) != NonNumericValue {
		t.Fatalf("kind = %s", KindOf(err))
	}

	req = Request{"data": []any{
		NewMapping("count", 4, "total", 9),
		NewMapping("total", 10, "count", 5),
	}}
	s, err = Prepare(req, KindBar)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	bar := s.(*BarSeries)
	if !stringsEqual(bar.Labels, []string{"4", "5"}) || !floatsEqual(bar.Values, []float64{9, 10}) {
		t.Fatalf("unexpected series %+v", bar)
	}
}

func TestBarNativeGoValues(t *testing.T) {
	req := Request{
		"data":    []Tuple{{"A", 1}, {"B", 2.5}},
		"color":   "#ff0000",
		"x_label": "Region",
		"title":   "Sales",
	}
	s, err := Prepare(req, KindBar)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	bar := s.(*BarSeries)
	if !stringsEqual(bar.Labels, []string{"A", "B"}) || !floatsEqual(bar.Values, []float64{1, 2.5}) {
		t.Fatalf("unexpected series %+v", bar)
	}
	if bar.Color != "#ff0000" || bar.XLabel != "Region" || bar.YLabel != DefaultBarYLabel || bar.Title != "Sales" {
		t.Fatalf("unexpected options %+v", bar)
	}
}

func TestPrepareLineAndHistogramDefaults(t *testing.T) {
	s, err := Prepare(mustParse(t, `{"x_values":[1,2,3],"y_values":["1.5",2,3]}`), KindLine)
	if err != nil {
		t.Fatalf("Prepare line: %v", err)
	}
	line := s.(*LineSeries)
	if line.XLabel != "X Axis" || line.YLabel != "Y Axis" || line.Title != "Line Chart" {
		t.Fatalf("unexpected line defaults %+v", line)
	}
	if !floatsEqual(line.Y, []float64{1.5, 2, 3}) {
		t.Fatalf("y = %v", line.Y)
	}

	s, err = Prepare(mustParse(t, `{"data":[1,1,2,2,2,3]}`), KindHistogram)
	if err != nil {
		t.Fatalf("Prepare histogram: %v", err)
	}
	hist := s.(*HistogramSeries)
	if hist.Bins != DefaultBins || hist.XLabel != DefaultHistogramXLabel || hist.Title != "Histogram Chart" {
		t.Fatalf("unexpected histogram defaults %+v", hist)
	}

	s, err = Prepare(mustParse(t, `{"data":[1,2],"bins":3}`), KindHistogram)
	if err != nil {
		t.Fatalf("Prepare histogram: %v", err)
	}
	if got := s.(*HistogramSeries).Bins; got != 3 {
		t.Fatalf("bins = %d, want 3", got)
	}
}

func TestPrepareCoercionFallback(t *testing.T) {
	// "1.2.3" passes validation but cannot be parsed, so every value becomes 1
	s, err := Prepare(mustParse(t, `{"labels":["A","B","C"],"values":[5,"1.2.3",9]}`), KindPie)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if got := s.(*PieSeries).Values; !floatsEqual(got, []float64{1, 1, 1}) {
		t.Fatalf("values = %v, want all ones", got)
	}
}

func TestPieCounts(t *testing.T) {
	inputs := []string{
		`{"labels":["A"],"values":[1]}`,
		`{"labels":["A","B","C"],"values":[1,2,3]}`,
		`{"labels":[1,2,3,4,5],"values":[0.1,0.2,0.3,0.15,0.25]}`,
	}
	for _, js := range inputs {
		s, err := Prepare(mustParse(t, js), KindPie)
		if err != nil {
			t.Fatalf("Prepare(%s): %v", js, err)
		}
		pie := s.(*PieSeries)
		if len(pie.Labels) != len(pie.Values) || pie.Points() != len(pie.Values) {
			t.Fatalf("labels %d, values %d, points %d", len(pie.Labels), len(pie.Values), pie.Points())
		}
	}
}

func TestFloatLabelsKeepDecimalPoint(t *testing.T) {
	s, err := Prepare(mustParse(t, `{"data":[[1.0,5],[2.5,6],[3,7]]}`), KindBar)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	want := []string{"1.0", "2.5", "3"}
	if got := s.(*BarSeries).Labels; !stringsEqual(got, want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	for _, tag := range []string{"", "scatter", "Pie", " bar"} {
		_, err := ParseKind(tag)
		if KindOf(err) != InvalidKind {
			t.Fatalf("ParseKind(%q) error kind = %q", tag, KindOf(err))
		}
		if !strings.Contains(err.Error(), "pie, bar, line, histogram") {
			t.Fatalf("message %q does not list the allowed kinds", err.Error())
		}
	}
}
