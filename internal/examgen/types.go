package examgen

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/abhisek/examgen/internal/chart"
)

// Exam is one generated reading-comprehension exam.
type Exam struct {
	Title     string     `json:"title"`
	Passage   string     `json:"passage"`
	Chart     ChartSpec  `json:"chart_config"`
	Questions []Question `json:"questions"`
}

// ChartSpec is the fabricated dataset accompanying the passage.
type ChartSpec struct {
	// Type is "bar" or "line" as returned by the service. Renderers treat
	// every value other than "line" as a bar chart.
	Type   string
	Title  string
	XLabel string
	YLabel string

	// Data keeps the key order of the JSON object.
	Data []DataPoint
}

// DataPoint is one entry of the chart data mapping.
type DataPoint struct {
	Label string
	Value float64
}

// Question is a multiple-choice question about the passage and chart.
// Options and Answer are kept exactly as returned.
type Question struct {
	ID          int      `json:"id"`
	Text        string   `json:"text"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// View converts the decoded chart config into the chart view model.
func (c ChartSpec) View() chart.Chart {
	points := make([]chart.Point, len(c.Data))
	for i, d := range c.Data {
		points[i] = chart.Point{Label: d.Label, Value: d.Value}
	}
	return chart.Chart{
		Kind:   chart.ParseKind(c.Type),
		Title:  c.Title,
		XLabel: c.XLabel,
		YLabel: c.YLabel,
		Points: points,
	}
}

// MarshalJSON writes the wire shape, with data as an object in the
// original key order.
func (c ChartSpec) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	if err := writeJSONString(&buf, c.Type); err != nil {
		return nil, err
	}
	for _, f := range []struct{ key, val string }{
		{"title", c.Title},
		{"x_label", c.XLabel},
		{"y_label", c.YLabel},
	} {
		buf.WriteString(`,"` + f.key + `":`)
		if err := writeJSONString(&buf, f.val); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`,"data":{`)
	for i, d := range c.Data {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, d.Label); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(d.Value, 'g', -1, 64))
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts the wire shape with the same defaults as Decode.
func (c *ChartSpec) UnmarshalJSON(data []byte) error {
	spec, err := decodeChart(data)
	if err != nil {
		return err
	}
	*c = spec
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
