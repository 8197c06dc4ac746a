package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// RenderText draws the chart with block characters in at most width
// columns: horizontal bars for bar charts, a sparkline for line charts.
// Empty charts render as "".
func RenderText(c Chart, width int) string {
	if c.Empty() {
		return ""
	}
	if width < 20 {
		width = 20
	}
	if c.Kind == KindLine {
		return renderLine(c, width)
	}
	return renderBars(c, width)
}

func renderBars(c Chart, width int) string {
	labelW := 0
	valueW := 0
	for _, p := range c.Points {
		labelW = max(labelW, utf8.RuneCountInString(p.Label))
		valueW = max(valueW, len(FormatValue(p.Value)))
	}
	labelW = min(labelW, width/3)
	barW := max(width-labelW-valueW-4, 1)

	_, hi := c.Range()
	var b strings.Builder
	fmt.Fprintf(&b, "%s → %s\n", c.XLabel, c.YLabel)
	for _, p := range c.Points {
		n := 0
		if hi > 0 && p.Value > 0 {
			n = clamp(math.Round(p.Value/hi*float64(barW)), 0, barW)
		}
		fmt.Fprintf(&b, "%s │%s %s\n",
			padRight(truncate(p.Label, labelW), labelW),
			strings.Repeat("█", n),
			FormatValue(p.Value))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderLine(c Chart, width int) string {
	lo, hi := c.Range()
	spark := make([]rune, 0, len(c.Points))
	for _, p := range c.Points {
		idx := len(sparkLevels) - 1
		if hi > lo {
			idx = clamp(math.Round((p.Value-lo)/(hi-lo)*float64(len(sparkLevels)-1)), 0, len(sparkLevels)-1)
		}
		spark = append(spark, sparkLevels[idx])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s → %s\n", c.XLabel, c.YLabel)
	b.WriteString(string(spark))
	fmt.Fprintf(&b, "  (%s – %s)\n", FormatValue(lo), FormatValue(hi))

	entries := make([]string, len(c.Points))
	for i, p := range c.Points {
		entries[i] = p.Label + ": " + FormatValue(p.Value)
	}
	b.WriteString(wrapJoin(entries, "  ", width))
	return b.String()
}

// FormatValue prints integral values without a fractional part.
func FormatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// clamp converts v to an int within [lo, hi]. NaN maps to lo.
func clamp(v float64, lo, hi int) int {
	switch {
	case math.IsNaN(v) || v < float64(lo):
		return lo
	case v > float64(hi):
		return hi
	}
	return int(v)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func padRight(s string, n int) string {
	if pad := n - utf8.RuneCountInString(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func wrapJoin(items []string, sep string, width int) string {
	var b strings.Builder
	lineLen := 0
	for i, it := range items {
		w := utf8.RuneCountInString(it)
		if i > 0 {
			if lineLen+len(sep)+w > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(sep)
				lineLen += len(sep)
			}
		}
		b.WriteString(it)
		lineLen += w
	}
	return b.String()
}
