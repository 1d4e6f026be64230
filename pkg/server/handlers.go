package server

import (
	"encoding/json"
	stderrors "errors"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/isotower/pkg/buildinfo"
	"github.com/matzehuels/isotower/pkg/cache"
	"github.com/matzehuels/isotower/pkg/errors"
	isoio "github.com/matzehuels/isotower/pkg/io"
	"github.com/matzehuels/isotower/pkg/pipeline"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Uptime  string `json:"uptime"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	bi := buildinfo.Get()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: bi.Version,
		Commit:  bi.ShortCommit(),
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"formats": pipeline.AllFormats})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := renderOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	f, err := bodyFormat(r.Header.Get("Content-Type"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	cfg, err := isoio.Read(http.MaxBytesReader(w, r.Body, s.maxBody), f)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.runner.Render(r.Context(), cfg, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("ETag", etag(res.Keys[format]))
	if res.CacheInfo.AllHit() {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// renderOptions maps query parameters to pipeline options. Exactly one
// format is rendered per request.
func renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts := pipeline.Options{
		Formats: []string{format},
		Theme:   q.Get("theme"),
	}

	var err error
	if opts.NoGrid, err = negated(q.Get("grid")); err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "grid")
	}
	if opts.NoLabels, err = negated(q.Get("labels")); err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "labels")
	}
	if opts.Detailed, err = flag(q.Get("detailed")); err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "detailed")
	}
	if opts.Ops, err = flag(q.Get("ops")); err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "ops")
	}
	if opts.Refresh, err = flag(q.Get("refresh")); err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "refresh")
	}
	if v := q.Get("scale"); v != "" {
		if opts.Scale, err = strconv.ParseFloat(v, 64); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "scale")
		}
	}
	return opts, opts.ValidateAndSetDefaults()
}

func flag(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

// negated parses an on-by-default toggle and reports whether it is off.
func negated(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	on, err := strconv.ParseBool(v)
	return !on, err
}

// bodyFormat maps a Content-Type to a config format.
func bodyFormat(contentType string) (isoio.Format, error) {
	if contentType == "" {
		return isoio.FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "content type")
	}
	switch {
	case mt == "application/json" || strings.HasSuffix(mt, "+json"):
		return isoio.FormatJSON, nil
	case mt == "application/toml" || mt == "text/toml":
		return isoio.FormatTOML, nil
	case mt == "application/yaml" || mt == "application/x-yaml" || mt == "text/yaml":
		return isoio.FormatYAML, nil
	case mt == "text/plain":
		return isoio.FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported content type %q", mt)
}

// fail writes err as an error response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", "id", w.Header().Get(RequestIDHeader), "error", err)
	} else {
		s.logger.Debug("rejected request", "id", w.Header().Get(RequestIDHeader), "code", code, "error", err)
	}
	writeError(w, status, code, msg)
}

func classify(err error) (status int, code, msg string) {
	var tooBig *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge, string(errors.ErrCodeInvalidInput), "request body exceeds " + strconv.FormatInt(tooBig.Limit, 10) + " bytes"
	case errors.IsInvalid(err):
		code := string(errors.GetCode(err))
		return http.StatusBadRequest, code, strings.TrimPrefix(err.Error(), code+": ")
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented, string(errors.ErrCodeUnsupported), errors.UserMessage(err)
	default:
		return http.StatusInternalServerError, string(errors.ErrCodeInternal), "internal error"
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// etag derives a strong validator from an artifact's cache key.
func etag(key string) string {
	return strconv.Quote(cache.Hash([]byte(key))[:16])
}
