package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/examgen/internal/examgen"
)

// APIKeyHeader carries a caller's key on API requests.
const APIKeyHeader = "X-API-Key"

const examRequestSchema = `{
	"type": "object",
	"properties": {
		"text": {"type": "string", "minLength": 1},
		"model": {"type": "string"},
		"api_key": {"type": "string"}
	},
	"required": ["text"],
	"additionalProperties": false
}`

type examRequest struct {
	Text   string `json:"text"`
	Model  string `json:"model"`
	APIKey string `json:"api_key"`
}

type modelsResponse struct {
	Models  []string `json:"models"`
	Default string   `json:"default"`
	Error   string   `json:"error,omitempty"`
}

var compileExamSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(examRequestSchema)))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	const url = "schema://exam-request.json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(url)
})

// decodeExamRequest validates body against the request schema before
// decoding it.
func decodeExamRequest(body []byte) (examRequest, error) {
	var req examRequest

	schema, err := compileExamSchema()
	if err != nil {
		return req, err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return req, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return req, fmt.Errorf("invalid request: %w", err)
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, fmt.Errorf("invalid request: %w", err)
	}
	return req, nil
}

// GET /api/models
func (s *Server) apiModels(c *gin.Context) {
	key := c.GetHeader(APIKeyHeader)
	if key == "" {
		key = s.session(c).Snapshot().APIKey
	}

	p, err := s.providers.For(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	cat := s.catalog(c.Request.Context(), p)
	resp := modelsResponse{Models: cat.Models, Default: cat.Default}
	if cat.Err != nil {
		resp.Error = cat.Err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/exams
func (s *Server) apiExams(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, s.cfg.MaxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req, err := decodeExamRequest(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	src := examgen.NewTextSource(req.Text)
	if err := src.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := req.APIKey
	if key == "" {
		key = c.GetHeader(APIKeyHeader)
	}
	p, err := s.providers.For(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := s.withTimeout(c.Request.Context())
	defer cancel()

	exam, err := examgen.New(p, s.exam).Generate(ctx, src, req.Model)
	if err != nil {
		s.logger.Warn("api exam generation failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, exam)
}
