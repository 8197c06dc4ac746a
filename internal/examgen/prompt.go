package examgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/examgen/internal/llm"
)

const instructionTemplate = `You are an expert English Exam Creator for the Japanese Common Test (Kyotsu Test).
Create a "Long Reading Comprehension with Chart Interpretation" problem.

Your Task:
1. Analyze the input topic.
2. Create a FICTIONAL dataset related to the topic (for a graph).
3. **Write a substantial English reading passage (approx. %s words)**.
   - The level should be %s.
   - The passage MUST discuss the data shown in the chart.
4. Create **%s questions** that require reading BOTH the text and the graph.

[Output Format (JSON)]
You must output a single JSON object with this exact structure:
{
    "title": "Title of the passage",
    "passage": "Full English text content (make it long)...",
    "chart_config": {
        "type": "bar",
        "title": "Graph Title",
        "x_label": "Category Name",
        "y_label": "Value Name",
        "data": {"Label A": 10, "Label B": 25, "Label C": 15}
    },
    "questions": [
        {
            "id": 1,
            "text": "Question text...",
            "options": ["Option 1", "Option 2", "Option 3", "Option 4"],
            "answer": "Option 2",
            "explanation": "Explanation in %s..."
        },
        {
            "id": 2,
            ...
        }
    ]
}`

// textPayloadHeader precedes pasted input in the prompt.
const textPayloadHeader = "\n[Input Topic/Text]\n"

// Instructions renders the fixed instruction block for cfg.
func Instructions(cfg Config) string {
	return fmt.Sprintf(instructionTemplate,
		rangeLabel(cfg.MinWords, cfg.MaxWords),
		cfg.Level,
		rangeLabel(cfg.MinQuestions, cfg.MaxQuestions),
		cfg.ExplanationLanguage,
	)
}

// BuildRequest assembles the JSON-mode request for src. Text is inlined
// verbatim after the instructions; a document travels as a PDF attachment
// and is never inlined here.
func BuildRequest(src Source, cfg Config, model string) llm.Request {
	msg := llm.Message{Role: llm.RoleUser}

	var b strings.Builder
	b.WriteString(Instructions(cfg))
	if src.Mode == ModePDF {
		msg.Attachments = []llm.Attachment{{
			Name:     src.Name,
			MIMEType: llm.MIMETypePDF,
			Data:     src.Data,
		}}
	} else {
		b.WriteString(textPayloadHeader)
		b.WriteString(src.Text)
	}
	msg.Content = b.String()

	return llm.Request{
		Messages:    []llm.Message{msg},
		Model:       model,
		JSON:        true,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
}

func rangeLabel(lo, hi int) string {
	if lo == hi {
		return fmt.Sprint(lo)
	}
	sep := "-"
	if hi-lo == 1 {
		sep = " to "
	}
	return fmt.Sprintf("%d%s%d", lo, sep, hi)
}
