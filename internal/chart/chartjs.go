package chart

import "encoding/json"

// ChartJSConfig is the configuration object passed to `new Chart(ctx, cfg)`.
type ChartJSConfig struct {
	Type    string         `json:"type"`
	Data    chartJSData    `json:"data"`
	Options chartJSOptions `json:"options"`
}

type chartJSData struct {
	Labels   []string         `json:"labels"`
	Datasets []chartJSDataset `json:"datasets"`
}

type chartJSDataset struct {
	Label       string    `json:"label"`
	Data        []float64 `json:"data"`
	BorderWidth int       `json:"borderWidth"`
	Tension     float64   `json:"tension,omitempty"`
	Fill        bool      `json:"fill"`
}

type chartJSOptions struct {
	Responsive bool                    `json:"responsive"`
	Plugins    chartJSPlugins          `json:"plugins"`
	Scales     map[string]chartJSScale `json:"scales"`
}

type chartJSPlugins struct {
	Legend chartJSToggle `json:"legend"`
}

type chartJSToggle struct {
	Display bool `json:"display"`
}

type chartJSScale struct {
	BeginAtZero bool         `json:"beginAtZero,omitempty"`
	Title       chartJSTitle `json:"title"`
}

type chartJSTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

// ChartJS builds the Chart.js configuration: one dataset named after the
// y axis, one point per category, both axes titled.
func (c Chart) ChartJS() ChartJSConfig {
	ds := chartJSDataset{
		Label:       c.YLabel,
		Data:        c.Values(),
		BorderWidth: 1,
	}
	if c.Kind == KindLine {
		ds.Tension = 0.2
	}

	return ChartJSConfig{
		Type: string(c.Kind),
		Data: chartJSData{
			Labels:   c.Labels(),
			Datasets: []chartJSDataset{ds},
		},
		Options: chartJSOptions{
			Responsive: true,
			Plugins:    chartJSPlugins{Legend: chartJSToggle{Display: false}},
			Scales: map[string]chartJSScale{
				"x": {Title: chartJSTitle{Display: true, Text: c.XLabel}},
				"y": {BeginAtZero: c.Kind == KindBar, Title: chartJSTitle{Display: true, Text: c.YLabel}},
			},
		},
	}
}

// ChartJSON returns the Chart.js configuration as JSON.
func (c Chart) ChartJSON() ([]byte, error) {
	return json.Marshal(c.ChartJS())
}
