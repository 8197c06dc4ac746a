package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/abhisek/examgen/internal/examgen"
)

func sampleExam() *examgen.Exam {
	return &examgen.Exam{
		Title:   "Greenfield Solar",
		Passage: "Greenfield installed panels.\n\nOutput rose every year.",
		Chart: examgen.ChartSpec{
			Type:   "bar",
			Title:  "Annual Output",
			XLabel: "year",
			YLabel: "megawatt hours",
			Data: []examgen.DataPoint{
				{Label: "2019", Value: 10},
				{Label: "2020", Value: 25.5},
			},
		},
		Questions: []examgen.Question{
			{ID: 1, Text: "When did output peak?", Options: []string{"2019", "2020"}, Answer: "2020", Explanation: "Highest bar"},
		},
	}
}

func render(t *testing.T, exam *examgen.Exam, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	if err := WritePDF(&buf, exam, opts); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	return buf.String()
}

func uncompressed() Options {
	opts := DefaultOptions()
	opts.Compress = false
	return opts
}

func TestWritePDF(t *testing.T) {
	out := render(t, sampleExam(), uncompressed())
	if !strings.HasPrefix(out, "%PDF-") {
		t.Fatalf("output is not a PDF: %.20q", out)
	}
	for _, want := range []string{
		"Greenfield Solar",
		"Figure 1: Annual Output",
		"Megawatt Hours", // table headers are title-cased
		"25.5",
		"Answer Key",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("PDF missing %q", want)
		}
	}
}

func TestWritePDFWithoutAnswerKey(t *testing.T) {
	opts := uncompressed()
	opts.AnswerKey = false

	if out := render(t, sampleExam(), opts); strings.Contains(out, "Answer Key") {
		t.Error("answer key rendered when disabled")
	}
}

func TestWritePDFChartVariants(t *testing.T) {
	line := sampleExam()
	line.Chart.Type = "line"
	empty := sampleExam()
	empty.Chart.Data = nil
	empty.Questions = nil

	tests := []struct {
		name string
		exam *examgen.Exam
	}{
		{"line chart", line},
		{"no chart or questions", empty},
	}
	for _, tt := range tests {
		if out := render(t, tt.exam, DefaultOptions()); !strings.HasPrefix(out, "%PDF-") {
			t.Errorf("%s: output is not a PDF", tt.name)
		}
	}
}

func TestWritePDFNilExam(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, nil, DefaultOptions()); err == nil {
		t.Error("WritePDF(nil) succeeded")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Greenfield Solar", "greenfield-solar.pdf"},
		{"  The 2023 Report!  ", "the-2023-report.pdf"},
		{"再生可能エネルギー", "exam.pdf"},
	}
	for _, tt := range tests {
		if got := Filename(&examgen.Exam{Title: tt.title}); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
