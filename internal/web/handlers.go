package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/examgen/internal/examgen"
	"github.com/abhisek/examgen/internal/export"
	"github.com/abhisek/examgen/internal/llm"
	"github.com/abhisek/examgen/internal/session"
)

// session returns the caller's session, issuing a cookie for new ones.
func (s *Server) session(c *gin.Context) *session.Session {
	id, _ := c.Cookie(session.CookieName)
	sess, created := s.sessions.GetOrCreate(id)
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(session.CookieName, sess.ID, int(s.cfg.SessionIdle.Seconds()), "/", "", s.cfg.SecureCookie, true)
	}
	return sess
}

// GET /
func (s *Server) indexPage(c *gin.Context) {
	snap := s.session(c).Snapshot()

	showKey := !s.providers.HasServerKey()
	locked := showKey && snap.APIKey == ""

	cat := llm.ModelCatalog{Models: []string{s.cfg.FallbackModel}, Default: s.cfg.FallbackModel}
	if !locked {
		if p, err := s.providers.For(c.Request.Context(), snap.APIKey); err == nil {
			cat = s.catalog(c.Request.Context(), p)
		}
	}

	c.HTML(http.StatusOK, "index.tmpl", newPageData(snap, showKey, locked, cat))
}

// POST /settings
func (s *Server) saveSettings(c *gin.Context) {
	sess := s.session(c)
	if key, ok := c.GetPostForm("api_key"); ok {
		sess.SetAPIKey(key)
	}
	if model := c.PostForm("model"); model != "" {
		sess.SetModel(model)
	}
	sess.ClearError()
	c.Redirect(http.StatusSeeOther, "/")
}

// POST /generate
func (s *Server) generate(c *gin.Context) {
	sess := s.session(c)
	defer c.Redirect(http.StatusSeeOther, "/")

	if key := c.PostForm("api_key"); key != "" {
		sess.SetAPIKey(key)
	}
	model := c.PostForm("model")
	if model != "" {
		sess.SetModel(model)
	} else {
		model = sess.Snapshot().Model
	}

	mode, err := examgen.ParseMode(c.PostForm("mode"))
	if err != nil {
		sess.Reject(err)
		return
	}
	text := c.PostForm("source_text")

	var (
		name string
		data []byte
	)
	if mode == examgen.ModePDF {
		name, data, err = s.readUpload(c)
		if err != nil {
			sess.SetInput(mode, text, "")
			sess.Reject(err)
			return
		}
	}
	sess.SetInput(mode, text, name)

	src := examgen.SourceFromMode(mode, text, name, data)
	if err := src.Validate(); err != nil {
		sess.Reject(err)
		return
	}

	provider, err := s.providers.For(c.Request.Context(), sess.Snapshot().APIKey)
	if err != nil {
		sess.Reject(err)
		return
	}

	ctx, cancel := s.withTimeout(c.Request.Context())
	defer cancel()

	gen := examgen.New(provider, s.exam)
	if _, err := session.Run(ctx, sess, gen, src, model); err != nil {
		if errors.Is(err, session.ErrBusy) {
			sess.Reject(err)
		}
		s.logger.Warn("exam generation failed", "session", sess.ID, "source", src.Describe(), "error", err)
		return
	}
	s.logger.Info("exam generated", "session", sess.ID, "source", src.Describe(), "model", model)
}

// readUpload returns the uploaded document, or empty values when no file
// was chosen so that validation reports empty input.
func (s *Server) readUpload(c *gin.Context) (string, []byte, error) {
	fh, err := c.FormFile("document")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("reading upload: %w", err)
	}
	if fh.Size > s.cfg.MaxUploadBytes {
		return "", nil, fmt.Errorf("document is larger than %d MB", s.cfg.MaxUploadBytes>>20)
	}

	f, err := fh.Open()
	if err != nil {
		return "", nil, fmt.Errorf("reading upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes))
	if err != nil {
		return "", nil, fmt.Errorf("reading upload: %w", err)
	}
	return fh.Filename, data, nil
}

// GET /exam.pdf
func (s *Server) examPDF(c *gin.Context) {
	snap := s.session(c).Snapshot()
	if snap.Exam == nil {
		c.String(http.StatusNotFound, "no exam has been generated yet")
		return
	}

	var buf bytes.Buffer
	if err := export.WritePDF(&buf, snap.Exam, s.pdf); err != nil {
		s.logger.Error("pdf export failed", "session", snap.ID, "error", err)
		c.String(http.StatusInternalServerError, "pdf export failed: %v", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(snap.Exam)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// GET /healthz
func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
