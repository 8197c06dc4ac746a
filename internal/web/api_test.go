package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examgen/internal/llm"
)

func (h *harness) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return h.do(req)
}

func TestDecodeExamRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"text":"solar power","model":"gemini-1.5-pro"}`, false},
		{"text only", `{"text":"solar power"}`, false},
		{"missing text", `{"model":"gemini-1.5-pro"}`, true},
		{"empty text", `{"text":""}`, true},
		{"wrong type", `{"text":42}`, true},
		{"unknown field", `{"text":"a","temperature":1}`, true},
		{"not json", `text=a`, true},
		{"array", `["a"]`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeExamRequest([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAPIExams(t *testing.T) {
	h := newHarness(t, true, llm.MockResponse{Content: json.RawMessage(examJSON)})

	rec := h.postJSON("/api/exams", `{"text":"renewable energy adoption trends","model":"gemini-1.5-pro"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "T", got["title"])
	cc := got["chart_config"].(map[string]any)
	assert.Equal(t, map[string]any{"2019": 10.0, "2020": 25.0}, cc["data"])
	assert.Contains(t, rec.Body.String(), `"data":{"2019":10,"2020":25}`)

	call, _ := h.mock.LastCall()
	assert.Equal(t, "gemini-1.5-pro", call.Model)
}

func TestAPIExamsErrors(t *testing.T) {
	t.Run("schema violation", func(t *testing.T) {
		h := newHarness(t, true)
		rec := h.postJSON("/api/exams", `{"model":"x"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error"`)
		assert.Equal(t, 0, h.mock.CallCount())
	})

	t.Run("whitespace text", func(t *testing.T) {
		h := newHarness(t, true)
		rec := h.postJSON("/api/exams", `{"text":"  \n "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 0, h.mock.CallCount())
	})

	t.Run("missing key", func(t *testing.T) {
		h := newHarness(t, false)
		rec := h.postJSON("/api/exams", `{"text":"topic"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), llm.ErrMissingAPIKey.Error())
	})

	t.Run("key in header", func(t *testing.T) {
		h := newHarness(t, false, llm.MockResponse{Content: json.RawMessage(examJSON)})
		req := httptest.NewRequest(http.MethodPost, "/api/exams", strings.NewReader(`{"text":"topic"}`))
		req.Header.Set(APIKeyHeader, "header-key")
		rec := h.do(req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, h.fake.keys, "header-key")
	})

	t.Run("upstream failure", func(t *testing.T) {
		h := newHarness(t, true, llm.MockResponse{Err: errors.New("quota exceeded")})
		rec := h.postJSON("/api/exams", `{"text":"topic"}`)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "generating exam: quota exceeded")
	})

	t.Run("malformed reply", func(t *testing.T) {
		h := newHarness(t, true, llm.MockResponse{Content: json.RawMessage(`[1,2]`)})
		rec := h.postJSON("/api/exams", `{"text":"topic"}`)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "reading generated exam")
	})
}

func TestAPIModels(t *testing.T) {
	h := newHarness(t, true)

	rec := h.get("/api/models")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"models": ["gemini-1.0-pro", "gemini-1.5-flash-latest", "gemini-1.5-pro"],
		"default": "gemini-1.5-flash-latest"
	}`, rec.Body.String())

	h.mock.Models = []string{"changed"}
	rec = h.get("/api/models")
	assert.Contains(t, rec.Body.String(), "gemini-1.5-pro", "catalog is cached per provider")
}

func TestAPIModelsFallback(t *testing.T) {
	h := newHarness(t, true)
	h.mock.ListErr = errors.New("network down")

	rec := h.get("/api/models")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"models": ["gemini-1.5-flash"],
		"default": "gemini-1.5-flash",
		"error": "fetching models: network down"
	}`, rec.Body.String())
}

func TestAPIModelsWithoutKey(t *testing.T) {
	h := newHarness(t, false)
	rec := h.get("/api/models")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
