// Package chart turns an exam's fabricated dataset into something that can
// be drawn: a Chart.js configuration for the browser and block characters
// for the terminal.
package chart

// Kind selects how the data is drawn.
type Kind string

const (
	KindBar  Kind = "bar"
	KindLine Kind = "line"
)

// ParseKind returns KindLine for "line" and KindBar for anything else,
// including unknown values.
func ParseKind(s string) Kind {
	if s == string(KindLine) {
		return KindLine
	}
	return KindBar
}

// Point is one category and its value.
type Point struct {
	Label string
	Value float64
}

// Chart is the view model shared by all renderers.
type Chart struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string
	Points []Point
}

// Empty reports whether there is nothing to draw. Empty charts are
// suppressed by every renderer.
func (c Chart) Empty() bool {
	return len(c.Points) == 0
}

// Caption is the heading shown above the chart.
func (c Chart) Caption() string {
	return "Figure 1: " + c.Title
}

// Labels returns the category labels in order.
func (c Chart) Labels() []string {
	out := make([]string, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Label
	}
	return out
}

// Values returns the values in order.
func (c Chart) Values() []float64 {
	out := make([]float64, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Value
	}
	return out
}

// Range returns the smallest and largest value. Both are zero for an
// empty chart.
func (c Chart) Range() (lo, hi float64) {
	for i, p := range c.Points {
		if i == 0 || p.Value < lo {
			lo = p.Value
		}
		if i == 0 || p.Value > hi {
			hi = p.Value
		}
	}
	return lo, hi
}
