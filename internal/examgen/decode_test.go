package examgen

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

const scenarioJSON = `{"title":"T","passage":"...","chart_config":{"type":"bar","title":"G","x_label":"Year","y_label":"GW","data":{"2019":10,"2020":25}},"questions":[{"id":1,"text":"Q1?","options":["A","B","C","D"],"answer":"B","explanation":"..."}]}`

func mustDecode(t *testing.T, raw string) *Exam {
	t.Helper()
	exam, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("Decode(%s): %v", raw, err)
	}
	return exam
}

func TestDecode_Scenario(t *testing.T) {
	exam := mustDecode(t, scenarioJSON)

	if exam.Title != "T" || exam.Passage != "..." {
		t.Errorf("title/passage = %q/%q", exam.Title, exam.Passage)
	}
	wantChart := ChartSpec{
		Type:   "bar",
		Title:  "G",
		XLabel: "Year",
		YLabel: "GW",
		Data:   []DataPoint{{"2019", 10}, {"2020", 25}},
	}
	if !reflect.DeepEqual(exam.Chart, wantChart) {
		t.Errorf("chart = %+v, want %+v", exam.Chart, wantChart)
	}
	wantQ := []Question{{
		ID:          1,
		Text:        "Q1?",
		Options:     []string{"A", "B", "C", "D"},
		Answer:      "B",
		Explanation: "...",
	}}
	if !reflect.DeepEqual(exam.Questions, wantQ) {
		t.Errorf("questions = %+v, want %+v", exam.Questions, wantQ)
	}
}

func TestDecode_Defaults(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty object", `{}`},
		{"nulls", `{"title":null,"chart_config":{"title":null,"data":null},"questions":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exam := mustDecode(t, tt.input)
			if exam.Title != DefaultTitle {
				t.Errorf("Title = %q, want %q", exam.Title, DefaultTitle)
			}
			if exam.Passage != "" {
				t.Errorf("Passage = %q, want empty", exam.Passage)
			}
			if exam.Chart.Title != DefaultChartTitle || exam.Chart.XLabel != DefaultXLabel || exam.Chart.YLabel != DefaultYLabel {
				t.Errorf("chart labels = %q/%q/%q", exam.Chart.Title, exam.Chart.XLabel, exam.Chart.YLabel)
			}
			if len(exam.Chart.Data) != 0 || len(exam.Questions) != 0 {
				t.Errorf("data = %v, questions = %v, want none", exam.Chart.Data, exam.Questions)
			}
		})
	}
}

func TestDecode_ChartData(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []DataPoint
	}{
		{
			name:  "keeps response order",
			input: `{"chart_config":{"data":{"Zeta":1,"Alpha":2,"Mid":3.5}}}`,
			want:  []DataPoint{{"Zeta", 1}, {"Alpha", 2}, {"Mid", 3.5}},
		},
		{
			name:  "duplicate key keeps first position and last value",
			input: `{"chart_config":{"data":{"a":1,"b":2,"a":3}}}`,
			want:  []DataPoint{{"a", 3}, {"b", 2}},
		},
		{
			name:  "large finite values",
			input: `{"chart_config":{"data":{"a":1e300,"b":-1e300}}}`,
			want:  []DataPoint{{"a", 1e300}, {"b", -1e300}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustDecode(t, tt.input).Chart.Data; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("data = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecode_QuestionOrderAndIDs(t *testing.T) {
	exam := mustDecode(t, `{"questions":[
		{"id":7,"text":"seven","options":["x"]},
		{"text":"no id"},
		{"id":3,"text":"three","options":[1,2,"three",4],"answer":2}
	]}`)
	if len(exam.Questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(exam.Questions))
	}

	for i, want := range []int{7, 2, 3} {
		if got := exam.Questions[i].ID; got != want {
			t.Errorf("question %d id = %d, want %d", i, got, want)
		}
	}
	if got := exam.Questions[2].Options; !reflect.DeepEqual(got, []string{"1", "2", "three", "4"}) {
		t.Errorf("numeric options = %v", got)
	}
	if got := exam.Questions[2].Answer; got != "2" {
		t.Errorf("numeric answer = %q", got)
	}
	if len(exam.Questions[1].Options) != 0 {
		t.Errorf("missing options = %v", exam.Questions[1].Options)
	}
}

func TestDecode_AnswerNotInOptionsIsTrusted(t *testing.T) {
	q := mustDecode(t, `{"questions":[{"id":1,"options":["A","B"],"answer":"Z"}]}`).Questions[0]
	if q.Answer != "Z" || len(q.Options) != 2 {
		t.Errorf("question = %+v", q)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{"not json", `not json at all`, ""},
		{"truncated", `{"title":"T"`, ""},
		{"array root", `[1,2]`, ""},
		{"string root", `"exam"`, ""},
		{"title object", `{"title":{"a":1}}`, "title"},
		{"chart not object", `{"chart_config":"bar"}`, "chart_config"},
		{"chart title array", `{"chart_config":{"title":[1]}}`, "chart_config.title"},
		{"data not object", `{"chart_config":{"data":[1,2]}}`, "chart_config.data"},
		{"non numeric value", `{"chart_config":{"data":{"2019":"ten"}}}`, "chart_config.data.2019"},
		{"overflowing value", `{"chart_config":{"data":{"2019":1e400}}}`, "chart_config.data.2019"},
		{"overflowing negative value", `{"chart_config":{"data":{"a":1,"b":-1e400}}}`, "chart_config.data.b"},
		{"questions not array", `{"questions":{}}`, "questions"},
		{"question not object", `{"questions":["Q1?"]}`, "questions[0]"},
		{"fractional id", `{"questions":[{"id":1.5}]}`, "questions[0].id"},
		{"overflowing id", `{"questions":[{"id":1e400}]}`, "questions[0].id"},
		{"id beyond int range", `{"questions":[{"id":1e30}]}`, "questions[0].id"},
		{"options not array", `{"questions":[{"options":"A"}]}`, "questions[0].options"},
		{"option object", `{"questions":[{"options":[{}]}]}`, "questions[0].options[0]"},
		{"text bool", `{"questions":[{"text":true}]}`, "questions[0].text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Decode error = %v (%T), want *ParseError", err, err)
			}
			if pe.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", pe.Path, tt.wantPath)
			}
		})
	}
}

func TestChartSpecJSONRoundTrip(t *testing.T) {
	exam := mustDecode(t, scenarioJSON)

	raw, err := json.Marshal(exam)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got, want any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if err := json.Unmarshal([]byte(scenarioJSON), &want); err != nil {
		t.Fatalf("unmarshal scenario: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("marshalled exam = %s\nwant %s", raw, scenarioJSON)
	}

	var back Exam
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal exam: %v", err)
	}
	if !reflect.DeepEqual(*exam, back) {
		t.Errorf("round trip = %+v, want %+v", back, *exam)
	}
}

func TestChartSpecView(t *testing.T) {
	spec := ChartSpec{Type: "line", Title: "G", XLabel: "Year", YLabel: "GW", Data: []DataPoint{{"2019", 10}}}
	view := spec.View()
	if view.Kind != "line" {
		t.Errorf("Kind = %q, want line", view.Kind)
	}
	if got := view.Caption(); got != "Figure 1: G" {
		t.Errorf("Caption = %q", got)
	}
	if got := view.Labels(); !reflect.DeepEqual(got, []string{"2019"}) {
		t.Errorf("Labels = %v", got)
	}

	spec.Type = "scatter"
	if got := spec.View().Kind; got != "bar" {
		t.Errorf("unknown type maps to %q, want bar", got)
	}
}
