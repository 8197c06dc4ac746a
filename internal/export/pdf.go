// Package export renders exams as printable PDF handouts.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/examgen/internal/chart"
	"github.com/abhisek/examgen/internal/examgen"
)

// Options controls page layout.
type Options struct {
	PageSize  string
	MarginsMM float64

	// FontPath is a TrueType font with the glyphs the exam needs. Without
	// it the core Helvetica font is used and text outside Latin-1 is lost,
	// which affects the Japanese answer labels.
	FontPath string

	// AnswerKey appends a page with answers and explanations.
	AnswerKey bool

	// Compress deflates page streams. Tests turn it off to inspect text.
	Compress bool
}

// DefaultOptions returns A4 with 15mm margins and an answer key.
func DefaultOptions() Options {
	return Options{PageSize: "A4", MarginsMM: 15, AnswerKey: true, Compress: true}
}

const fontFamily = "exam"

var barColor = [3]int{54, 162, 235}

type writer struct {
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
	title  cases.Caser
}

// WritePDF renders exam to w: title, passage, figure, questions and,
// when requested, an answer key page.
func WritePDF(w io.Writer, exam *examgen.Exam, opts Options) error {
	if exam == nil {
		return errors.New("no exam to export")
	}
	if opts.PageSize == "" {
		opts.PageSize = "A4"
	}

	pdf := fpdf.New("P", "mm", opts.PageSize, "")
	pdf.SetMargins(opts.MarginsMM, opts.MarginsMM, opts.MarginsMM)
	pdf.SetAutoPageBreak(true, opts.MarginsMM)
	pdf.SetCompression(opts.Compress)

	pw := &writer{pdf: pdf, title: cases.Title(language.English)}
	if opts.FontPath != "" {
		pdf.AddUTF8Font(fontFamily, "", opts.FontPath)
		pdf.AddUTF8Font(fontFamily, "B", opts.FontPath)
		pw.family = fontFamily
		pw.tr = func(s string) string { return s }
	} else {
		pw.family = "Helvetica"
		pw.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	pdf.SetTitle(exam.Title, true)
	pdf.SetCreator("examgen", false)

	pdf.AddPage()
	pw.heading(exam.Title, 20)
	pw.body(exam.Passage)
	pw.figure(exam.Chart.View())
	pw.questions(exam.Questions)

	if opts.AnswerKey && len(exam.Questions) > 0 {
		pdf.AddPage()
		pw.heading(exam.Title+" - Answer Key", 16)
		pw.answers(exam.Questions)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (p *writer) heading(text string, size float64) {
	p.pdf.SetFont(p.family, "B", size)
	p.pdf.MultiCell(0, size*0.5, p.tr(text), "", "C", false)
	p.pdf.Ln(6)
}

func (p *writer) body(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	p.pdf.SetFont(p.family, "", 11)
	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		p.pdf.MultiCell(0, 5.5, p.tr(para), "", "J", false)
		p.pdf.Ln(2)
	}
	p.pdf.Ln(4)
}

// figure draws the caption, a bar or line plot and the data table.
func (p *writer) figure(c chart.Chart) {
	p.pdf.SetFont(p.family, "B", 12)
	p.pdf.CellFormat(0, 7, p.tr(c.Caption()), "", 1, "C", false, 0, "")
	if c.Empty() {
		p.pdf.Ln(4)
		return
	}

	p.plot(c)
	p.table(c)
	p.pdf.Ln(6)
}

func (p *writer) plot(c chart.Chart) {
	const height = 50.0

	left, _, right, _ := p.pdf.GetMargins()
	pageW, _ := p.pdf.GetPageSize()
	width := pageW - left - right
	x0 := left
	y0 := p.pdf.GetY() + 2

	_, hi := c.Range()
	if hi <= 0 {
		hi = 1
	}

	p.pdf.SetDrawColor(120, 120, 120)
	p.pdf.Line(x0, y0+height, x0+width, y0+height)

	slot := width / float64(len(c.Points))
	scale := func(v float64) float64 { return max(v, 0) / hi * height }

	p.pdf.SetFillColor(barColor[0], barColor[1], barColor[2])
	p.pdf.SetDrawColor(barColor[0], barColor[1], barColor[2])
	for i, pt := range c.Points {
		cx := x0 + slot*float64(i) + slot/2
		h := scale(pt.Value)
		if c.Kind == chart.KindLine {
			p.pdf.Circle(cx, y0+height-h, 0.8, "F")
			if i > 0 {
				prev := c.Points[i-1]
				p.pdf.Line(cx-slot, y0+height-scale(prev.Value), cx, y0+height-h)
			}
		} else {
			p.pdf.Rect(cx-slot*0.3, y0+height-h, slot*0.6, h, "F")
		}
	}

	p.pdf.SetFont(p.family, "", 8)
	p.pdf.SetY(y0 + height + 1)
	for i, pt := range c.Points {
		p.pdf.SetX(x0 + slot*float64(i))
		p.pdf.CellFormat(slot, 4, p.tr(pt.Label), "", 0, "C", false, 0, "")
	}
	p.pdf.Ln(8)
}

func (p *writer) table(c chart.Chart) {
	left, _, right, _ := p.pdf.GetMargins()
	pageW, _ := p.pdf.GetPageSize()
	col := (pageW - left - right) / 2

	p.pdf.SetFont(p.family, "B", 10)
	p.pdf.SetFillColor(235, 235, 235)
	p.pdf.CellFormat(col, 6, p.tr(p.title.String(c.XLabel)), "1", 0, "C", true, 0, "")
	p.pdf.CellFormat(col, 6, p.tr(p.title.String(c.YLabel)), "1", 1, "C", true, 0, "")

	p.pdf.SetFont(p.family, "", 10)
	for _, pt := range c.Points {
		p.pdf.CellFormat(col, 6, p.tr(pt.Label), "1", 0, "L", false, 0, "")
		p.pdf.CellFormat(col, 6, chart.FormatValue(pt.Value), "1", 1, "R", false, 0, "")
	}
}

func (p *writer) questions(qs []examgen.Question) {
	if len(qs) == 0 {
		return
	}
	p.pdf.SetFont(p.family, "B", 14)
	p.pdf.CellFormat(0, 8, "Questions", "", 1, "L", false, 0, "")
	p.pdf.Ln(2)

	for _, q := range qs {
		p.pdf.SetFont(p.family, "B", 11)
		p.pdf.MultiCell(0, 6, p.tr(examgen.QuestionHeading(q)), "", "L", false)
		p.pdf.SetFont(p.family, "", 11)
		for _, opt := range q.Options {
			p.pdf.SetX(p.pdf.GetX() + 6)
			p.pdf.MultiCell(0, 6, p.tr(opt), "", "L", false)
		}
		p.pdf.Ln(3)
	}
}

func (p *writer) answers(qs []examgen.Question) {
	for _, q := range qs {
		p.pdf.SetFont(p.family, "B", 11)
		p.pdf.MultiCell(0, 6, p.tr(fmt.Sprintf("Q%d. %s: %s", q.ID, examgen.LabelAnswer, q.Answer)), "", "L", false)
		p.pdf.SetFont(p.family, "", 10)
		if q.Explanation != "" {
			p.pdf.MultiCell(0, 5, p.tr(examgen.LabelExplanation+": "+q.Explanation), "", "L", false)
		}
		p.pdf.Ln(3)
	}
}

// Filename derives a download name from the exam title.
func Filename(exam *examgen.Exam) string {
	var b strings.Builder
	for _, r := range strings.ToLower(exam.Title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
				b.WriteByte('-')
			}
		}
	}
	name := strings.Trim(b.String(), "-")
	if name == "" {
		name = "exam"
	}
	return name + ".pdf"
}
