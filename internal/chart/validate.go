package chart

import (
	"fmt"
	"reflect"
)

// Prepare validates req against the schema of kind and normalizes it into a
// Series. The first violation found is returned as a *ValidationError.
func Prepare(req Request, kind Kind) (Series, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, invalid(EmptyOrWrongShape, "chart_data", "chart_data must be a mapping")
	}
	switch kind {
	case KindPie:
		return preparePie(req)
	case KindBar:
		return prepareBar(req)
	case KindLine:
		return prepareLine(req)
	case KindHistogram:
		return prepareHistogram(req)
	}
	panic(fmt.Sprintf("chart: unhandled kind %d", kind))
}

func preparePie(req Request) (*PieSeries, error) {
	labels, values, err := pairedFields(req, "Pie chart", "labels", "values")
	if err != nil {
		return nil, err
	}
	s := &PieSeries{
		Labels: labelTexts(labels),
		Values: CoerceValues(values),
		Title:  titleOf(req, KindPie),
	}
	if raw, ok := req["colors"]; ok && raw != nil {
		colors, ok := asSequence(raw)
		if !ok {
			return nil, invalid(EmptyOrWrongShape, "colors", "colors must be a list")
		}
		s.Colors = labelTexts(colors)
	}
	return s, nil
}

func prepareBar(req Request) (*BarSeries, error) {
	_, hasX := req["x_labels"]
	_, hasY := req["y_values"]
	_, hasLabels := req["labels"]
	_, hasValues := req["values"]
	_, hasData := req["data"]

	var (
		labels []string
		values []any
	)
	switch {
	case hasX && hasY:
		l, v, err := pairedFields(req, "Bar chart", "x_labels", "y_values")
		if err != nil {
			return nil, err
		}
		labels, values = labelTexts(l), v
	case hasLabels && hasValues:
		l, v, err := pairedFields(req, "Bar chart", "labels", "values")
		if err != nil {
			return nil, err
		}
		labels, values = labelTexts(l), v
	case hasData:
		l, v, err := barData(req["data"])
		if err != nil {
			return nil, err
		}
		labels, values = l, v
	default:
		return nil, invalid(MissingRequiredField, "data",
			"Bar chart requires one of: ('x_labels' and 'y_values'), ('labels' and 'values'), or 'data' field")
	}

	return &BarSeries{
		Labels: labels,
		Values: CoerceValues(values),
		Color:  stringField(req, "color", DefaultBarColor),
		XLabel: stringField(req, "x_label", DefaultBarXLabel),
		YLabel: stringField(req, "y_label", DefaultBarYLabel),
		Title:  titleOf(req, KindBar),
	}, nil
}

type dataShape int

const (
	shapeScalar dataShape = iota
	shapeTuple
	shapeMapping
)

func shapeOf(v any) dataShape {
	if _, ok := asMapping(v); ok {
		return shapeMapping
	}
	if _, ok := asSequence(v); ok {
		return shapeTuple
	}
	return shapeScalar
}

// barData reduces the three accepted "data" element shapes to labels and raw
// values. The first element decides the shape; every other element must match.
func barData(raw any) ([]string, []any, error) {
	data, err := nonEmptySequence(raw, "data")
	if err != nil {
		return nil, nil, err
	}
	shape := shapeOf(data[0])
	for i, item := range data {
		if shapeOf(item) != shape {
			return nil, nil, invalid(InconsistentDataShape, "data",
				"data elements must all have the same shape (element %d differs)", i)
		}
	}

	labels := make([]string, len(data))
	values := make([]any, len(data))
	switch shape {
	case shapeTuple:
		for i, item := range data {
			pair, _ := asSequence(item)
			if len(pair) != 2 {
				return nil, nil, invalid(InconsistentDataShape, "data",
					"data tuples must have exactly 2 elements each (element %d has %d)", i, len(pair))
			}
			labels[i], values[i] = labelText(pair[0]), pair[1]
		}
		if err := numericSequence(values, "data tuple values"); err != nil {
			return nil, nil, err
		}
	case shapeMapping:
		first, _ := asMapping(data[0])
		for i, item := range data {
			m, _ := asMapping(item)
			if m.Len() < 2 {
				return nil, nil, invalid(InconsistentDataShape, "data",
					"data mappings must have at least 2 keys each (element %d has %d)", i, m.Len())
			}
			if !sameKeySet(first, m) {
				return nil, nil, invalid(InconsistentDataShape, "data",
					"all data mappings must have the same keys (element %d differs)", i)
			}
		}
		keys := first.Keys()
		for i, item := range data {
			m, _ := asMapping(item)
			l, _ := m.Get(keys[0])
			v, _ := m.Get(keys[1])
			labels[i], values[i] = labelText(l), v
		}
		if err := numericSequence(values, "data mapping values"); err != nil {
			return nil, nil, err
		}
	case shapeScalar:
		if err := numericSequence(data, "data values"); err != nil {
			return nil, nil, err
		}
		for i, item := range data {
			labels[i], values[i] = fmt.Sprintf("Item %d", i+1), item
		}
	}
	return labels, values, nil
}

func prepareLine(req Request) (*LineSeries, error) {
	if err := requireFields(req, "Line chart", "x_values", "y_values"); err != nil {
		return nil, err
	}
	x, err := nonEmptySequence(req["x_values"], "x_values")
	if err != nil {
		return nil, err
	}
	y, err := nonEmptySequence(req["y_values"], "y_values")
	if err != nil {
		return nil, err
	}
	if err := numericSequence(x, "x_values"); err != nil {
		return nil, err
	}
	if err := numericSequence(y, "y_values"); err != nil {
		return nil, err
	}
	if len(x) != len(y) {
		return nil, invalid(LengthMismatch, "y_values",
			"x_values and y_values must have the same length (%d != %d)", len(x), len(y))
	}
	return &LineSeries{
		X:      CoerceValues(x),
		Y:      CoerceValues(y),
		XLabel: stringField(req, "x_label", DefaultLineXLabel),
		YLabel: stringField(req, "y_label", DefaultLineYLabel),
		Title:  titleOf(req, KindLine),
	}, nil
}

func prepareHistogram(req Request) (*HistogramSeries, error) {
	if err := requireFields(req, "Histogram", "data"); err != nil {
		return nil, err
	}
	data, err := nonEmptySequence(req["data"], "data")
	if err != nil {
		return nil, err
	}
	if err := numericSequence(data, "data"); err != nil {
		return nil, err
	}
	bins := DefaultBins
	if raw, ok := req["bins"]; ok {
		n, ok := integer(raw)
		if !ok || n <= 0 {
			return nil, invalid(InvalidBinCount, "bins", "bins must be a positive integer, got %v", raw)
		}
		bins = n
	}
	return &HistogramSeries{
		Data:   CoerceValues(data),
		Bins:   bins,
		XLabel: stringField(req, "x_label", DefaultHistogramXLabel),
		Title:  titleOf(req, KindHistogram),
	}, nil
}

// ---- field helpers ----

func requireFields(req Request, what string, fields ...string) error {
	for _, f := range fields {
		if _, ok := req[f]; !ok {
			return invalid(MissingRequiredField, f, "%s requires '%s' field", what, f)
		}
	}
	return nil
}

// pairedFields validates a (labels, numeric values) pair of sequences.
func pairedFields(req Request, what, labelField, valueField string) ([]any, []any, error) {
	if err := requireFields(req, what, labelField, valueField); err != nil {
		return nil, nil, err
	}
	labels, err := nonEmptySequence(req[labelField], labelField)
	if err != nil {
		return nil, nil, err
	}
	values, err := nonEmptySequence(req[valueField], valueField)
	if err != nil {
		return nil, nil, err
	}
	if err := numericSequence(values, valueField); err != nil {
		return nil, nil, err
	}
	if len(labels) != len(values) {
		return nil, nil, invalid(LengthMismatch, valueField,
			"%s and %s must have the same length (%d != %d)", labelField, valueField, len(labels), len(values))
	}
	return labels, values, nil
}

func nonEmptySequence(v any, field string) ([]any, error) {
	seq, ok := asSequence(v)
	if !ok || len(seq) == 0 {
		return nil, invalid(EmptyOrWrongShape, field, "%s must be a non-empty list", field)
	}
	return seq, nil
}

func numericSequence(vs []any, field string) error {
	for i, v := range vs {
		if !IsNumeric(v) {
			return invalid(NonNumericValue, field,
				"%s must contain only numeric values (element %d is %v)", field, i, v)
		}
	}
	return nil
}

// asSequence accepts []any, Tuple and any other slice or array type.
// Strings and byte slices are not sequences.
func asSequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case nil, string, []byte:
		return nil, false
	case []any:
		return s, true
	case Tuple:
		return []any(s), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func integer(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint:
		return int(n), true
	case uint64:
		return int(n), true
	}
	return 0, false
}

func stringField(req Request, key, def string) string {
	v, ok := req[key]
	if !ok || v == nil {
		return def
	}
	return labelText(v)
}

func titleOf(req Request, kind Kind) string {
	return stringField(req, "title", kind.DefaultTitle())
}
