package examgen

import (
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

// Defaults applied to keys missing from the response.
const (
	DefaultTitle      = "No Title"
	DefaultChartTitle = "Chart"
	DefaultXLabel     = "Category"
	DefaultYLabel     = "Value"
)

// Decode turns the service's JSON text into an Exam. Missing keys get
// defaults; a payload that is not a JSON object, or a field of the wrong
// type, yields a *ParseError. Options and answers are not checked against
// each other.
func Decode(raw []byte) (*Exam, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &ParseError{Reason: "response is not valid JSON"}
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, &ParseError{Reason: fmt.Sprintf("expected a JSON object, got %s", kindOf(root))}
	}

	var (
		exam Exam
		err  error
	)
	if exam.Title, err = stringField(root, "title", DefaultTitle); err != nil {
		return nil, err
	}
	if exam.Passage, err = stringField(root, "passage", ""); err != nil {
		return nil, err
	}

	cc := root.Get("chart_config")
	if present(cc) {
		if !cc.IsObject() {
			return nil, typeError("chart_config", "an object", cc)
		}
		exam.Chart, err = decodeChartResult(cc)
	} else {
		exam.Chart, err = decodeChartResult(gjson.Parse("{}"))
	}
	if err != nil {
		return nil, err
	}

	qs := root.Get("questions")
	if present(qs) {
		if !qs.IsArray() {
			return nil, typeError("questions", "an array", qs)
		}
		for i, q := range qs.Array() {
			question, err := decodeQuestion(q, i)
			if err != nil {
				return nil, err
			}
			exam.Questions = append(exam.Questions, question)
		}
	}

	return &exam, nil
}

func decodeChart(raw []byte) (ChartSpec, error) {
	if !gjson.ValidBytes(raw) {
		return ChartSpec{}, &ParseError{Path: "chart_config", Reason: "not valid JSON"}
	}
	r := gjson.ParseBytes(raw)
	if r.Type == gjson.Null {
		return decodeChartResult(gjson.Parse("{}"))
	}
	if !r.IsObject() {
		return ChartSpec{}, typeError("chart_config", "an object", r)
	}
	return decodeChartResult(r)
}

func decodeChartResult(cc gjson.Result) (ChartSpec, error) {
	var (
		spec ChartSpec
		err  error
	)
	if spec.Type, err = stringField(cc, "type", "bar"); err != nil {
		return spec, prefixed("chart_config", err)
	}
	if spec.Title, err = stringField(cc, "title", DefaultChartTitle); err != nil {
		return spec, prefixed("chart_config", err)
	}
	if spec.XLabel, err = stringField(cc, "x_label", DefaultXLabel); err != nil {
		return spec, prefixed("chart_config", err)
	}
	if spec.YLabel, err = stringField(cc, "y_label", DefaultYLabel); err != nil {
		return spec, prefixed("chart_config", err)
	}

	data := cc.Get("data")
	if !present(data) {
		return spec, nil
	}
	if !data.IsObject() {
		return spec, typeError("chart_config.data", "an object", data)
	}

	// A repeated key keeps its first position and its last value.
	index := make(map[string]int)
	data.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			err = typeError("chart_config.data."+key.String(), "a number", value)
			return false
		}
		if math.IsInf(value.Num, 0) || math.IsNaN(value.Num) {
			err = typeError("chart_config.data."+key.String(), "a finite number", value)
			return false
		}
		if i, ok := index[key.String()]; ok {
			spec.Data[i].Value = value.Num
			return true
		}
		index[key.String()] = len(spec.Data)
		spec.Data = append(spec.Data, DataPoint{Label: key.String(), Value: value.Num})
		return true
	})
	return spec, err
}

func decodeQuestion(q gjson.Result, i int) (Question, error) {
	path := fmt.Sprintf("questions[%d]", i)
	if !q.IsObject() {
		return Question{}, typeError(path, "an object", q)
	}

	question := Question{ID: i + 1}
	if id := q.Get("id"); present(id) {
		if id.Type != gjson.Number || id.Num != math.Trunc(id.Num) ||
			id.Num < math.MinInt32 || id.Num > math.MaxInt32 {
			return Question{}, typeError(path+".id", "an integer", id)
		}
		question.ID = int(id.Num)
	}

	var err error
	if question.Text, err = stringField(q, "text", ""); err != nil {
		return Question{}, prefixed(path, err)
	}
	if question.Answer, err = stringField(q, "answer", ""); err != nil {
		return Question{}, prefixed(path, err)
	}
	if question.Explanation, err = stringField(q, "explanation", ""); err != nil {
		return Question{}, prefixed(path, err)
	}

	opts := q.Get("options")
	if present(opts) {
		if !opts.IsArray() {
			return Question{}, typeError(path+".options", "an array", opts)
		}
		for j, o := range opts.Array() {
			s, ok := scalarString(o)
			if !ok {
				return Question{}, typeError(fmt.Sprintf("%s.options[%d]", path, j), "a string", o)
			}
			question.Options = append(question.Options, s)
		}
	}
	return question, nil
}

// stringField reads key from obj. Missing and null keys yield def. Numbers
// are accepted in their JSON spelling because models sometimes emit
// numeric options and answers unquoted.
func stringField(obj gjson.Result, key, def string) (string, error) {
	v := obj.Get(key)
	if !present(v) {
		return def, nil
	}
	s, ok := scalarString(v)
	if !ok {
		return "", typeError(key, "a string", v)
	}
	return s, nil
}

func scalarString(v gjson.Result) (string, bool) {
	switch v.Type {
	case gjson.String:
		return v.Str, true
	case gjson.Number:
		return v.Raw, true
	}
	return "", false
}

func present(v gjson.Result) bool {
	return v.Exists() && v.Type != gjson.Null
}

func typeError(path, want string, got gjson.Result) *ParseError {
	return &ParseError{Path: path, Reason: fmt.Sprintf("expected %s, got %s", want, kindOf(got))}
}

func prefixed(prefix string, err error) error {
	if pe, ok := err.(*ParseError); ok {
		cp := *pe
		cp.Path = prefix + "." + pe.Path
		return &cp
	}
	return err
}

func kindOf(v gjson.Result) string {
	switch {
	case v.IsObject():
		return "object"
	case v.IsArray():
		return "array"
	case v.Type == gjson.String:
		return "string"
	case v.Type == gjson.Number:
		return "number"
	case v.Type == gjson.True, v.Type == gjson.False:
		return "boolean"
	default:
		return "null"
	}
}
