package chart

import "strings"

// Kind is one of the four supported chart kinds.
type Kind int

const (
	KindPie Kind = iota + 1
	KindBar
	KindLine
	KindHistogram
)

// Kinds lists every supported kind in tag order.
var Kinds = []Kind{KindPie, KindBar, KindLine, KindHistogram}

// String returns the tag used on the wire ("pie", "bar", ...).
func (k Kind) String() string {
	switch k {
	case KindPie:
		return "pie"
	case KindBar:
		return "bar"
	case KindLine:
		return "line"
	case KindHistogram:
		return "histogram"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindPie, KindBar, KindLine, KindHistogram:
		return true
	}
	return false
}

// DefaultTitle is used when a request carries no title, e.g. "Histogram Chart".
func (k Kind) DefaultTitle() string {
	s := k.String()
	return strings.ToUpper(s[:1]) + s[1:] + " Chart"
}

func allowedKinds() string {
	tags := make([]string, 0, len(Kinds))
	for _, k := range Kinds {
		tags = append(tags, k.String())
	}
	return strings.Join(tags, ", ")
}

// ParseKind maps a chart-kind tag onto a Kind. Tags are matched exactly.
func ParseKind(tag string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == tag {
			return k, nil
		}
	}
	return 0, invalid(InvalidKind, "chart_type",
		"invalid chart_type %q, must be one of: %s", tag, allowedKinds())
}

func checkKind(k Kind) error {
	if k.Valid() {
		return nil
	}
	return invalid(InvalidKind, "chart_type",
		"invalid chart_type %d, must be one of: %s", int(k), allowedKinds())
}
