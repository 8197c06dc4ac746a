package web

import (
	"html/template"
	"strings"

	"github.com/abhisek/examgen/internal/examgen"
	"github.com/abhisek/examgen/internal/llm"
	"github.com/abhisek/examgen/internal/session"
)

type pageData struct {
	// ShowAPIKey shows the key field; there is no server-held key.
	ShowAPIKey bool

	// Locked disables generation until a key is entered.
	Locked bool

	APIKeySet    bool
	Models       []string
	Model        string
	ModelError   string
	Mode         string
	Text         string
	DocumentName string
	Generating   bool
	Error        string
	Exam         *examView
}

type examView struct {
	Title      string
	Paragraphs []string
	Caption    string
	ChartJSON  template.JS
	HasChart   bool
	Questions  []questionView
}

type questionView struct {
	Heading     string
	Toggle      string
	Options     []string
	Answer      string
	Explanation string
}

func newPageData(snap session.Snapshot, showKey, locked bool, cat llm.ModelCatalog) pageData {
	d := pageData{
		ShowAPIKey:   showKey,
		Locked:       locked,
		APIKeySet:    snap.APIKey != "",
		Mode:         string(snap.Mode),
		Text:         snap.Text,
		DocumentName: snap.DocumentName,
		Generating:   snap.Generating(),
		Error:        snap.Err,
		Models:       cat.Models,
		Model:        cat.Default,
	}
	if snap.Model != "" && cat.Contains(snap.Model) {
		d.Model = snap.Model
	}
	if cat.Err != nil {
		d.ModelError = cat.Err.Error()
	}
	if snap.Exam != nil {
		d.Exam = newExamView(snap.Exam)
	}
	return d
}

func newExamView(exam *examgen.Exam) *examView {
	v := &examView{Title: exam.Title}

	for _, p := range strings.Split(exam.Passage, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			v.Paragraphs = append(v.Paragraphs, p)
		}
	}

	c := exam.Chart.View()
	v.Caption = c.Caption()
	if !c.Empty() {
		// encoding/json escapes <, > and & so the config is safe inside <script>.
		if b, err := c.ChartJSON(); err == nil {
			v.ChartJSON = template.JS(b)
			v.HasChart = true
		}
	}

	for _, q := range exam.Questions {
		v.Questions = append(v.Questions, questionView{
			Heading:     examgen.QuestionHeading(q),
			Toggle:      examgen.AnswerToggleLabel(q),
			Options:     q.Options,
			Answer:      examgen.LabelAnswer + ": " + q.Answer,
			Explanation: examgen.LabelExplanation + ": " + q.Explanation,
		})
	}
	return v
}
