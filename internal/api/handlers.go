package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/stylebox/pkg/align"
	"github.com/matzehuels/stylebox/pkg/buildinfo"
	"github.com/matzehuels/stylebox/pkg/errors"
	"github.com/matzehuels/stylebox/pkg/layout"
	"github.com/matzehuels/stylebox/pkg/sprite"
)

// Output formats beyond the document formats.
const (
	formatCSS    = "css"
	formatReport = "report"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// batchResponse is the body of align and distribute.
type batchResponse struct {
	Moved    int             `json:"moved"`
	Document json.RawMessage `json:"document,omitempty"`
	Text     string          `json:"text,omitempty"`
}

// sheetResponse is the body of a whole-sheet sprite scan.
type sheetResponse struct {
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Hash    string          `json:"hash"`
	Sprites []sprite.Bounds `json:"sprites"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Resolved()})
}

// handleConvert re-encodes a layout document, or exports it as CSS or as a
// JSON report.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	l, err := s.decodeLayout(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	to := r.URL.Query().Get("to")
	if to == "" {
		to = formatCSS
	}

	var buf bytes.Buffer
	contentType, err := encode(&buf, l, to)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleAlign(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	edge, ok := align.ParseEdge(q.Get("edge"))
	if !ok {
		s.fail(w, errors.New(errors.ErrCodeInvalidEdge, "unknown edge %q", q.Get("edge")))
		return
	}
	l, err := s.decodeLayout(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	n, err := l.Align(r.Context(), splitIDs(q.Get("ids")), edge)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondBatch(w, r, l, n)
}

func (s *Server) handleDistribute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	axis, ok := align.ParseAxis(q.Get("axis"))
	if !ok {
		s.fail(w, errors.New(errors.ErrCodeInvalidInput, "unknown axis %q", q.Get("axis")))
		return
	}
	l, err := s.decodeLayout(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	n, err := l.Distribute(r.Context(), splitIDs(q.Get("ids")), axis)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respondBatch(w, r, l, n)
}

// respondBatch answers a batch edit with the edited layout in the format
// named by ?to=, which defaults to the input format.
func (s *Server) respondBatch(w http.ResponseWriter, r *http.Request, l *layout.Layout, n int) {
	to := r.URL.Query().Get("to")
	if to == "" {
		to = r.URL.Query().Get("from")
	}
	if to == "" {
		to = string(layout.JSON)
	}

	var buf bytes.Buffer
	if _, err := encode(&buf, l, to); err != nil {
		s.fail(w, err)
		return
	}
	resp := batchResponse{Moved: n}
	if to == string(layout.JSON) || to == formatReport {
		resp.Document = json.RawMessage(buf.Bytes())
	} else {
		resp.Text = buf.String()
	}
	s.respond(w, http.StatusOK, resp)
}

// handleSprite answers the sprite under ?x=&y= of the posted image, or
// every sprite when no coordinate is given.
func (s *Server) handleSprite(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sheet, err := sprite.Decode(r.Body, "request")
	if err != nil {
		s.fail(w, err)
		return
	}

	if q.Get("x") == "" && q.Get("y") == "" {
		found, err := s.scanner.Scan(r.Context(), sheet)
		if err != nil {
			s.fail(w, errors.Wrap(errors.ErrCodeInternal, err, "scan sheet"))
			return
		}
		if found == nil {
			found = []sprite.Bounds{}
		}
		width, height := sheet.Size()
		s.respond(w, http.StatusOK, sheetResponse{Width: width, Height: height, Hash: sheet.Hash, Sprites: found})
		return
	}

	x, errX := strconv.Atoi(q.Get("x"))
	y, errY := strconv.Atoi(q.Get("y"))
	if errX != nil || errY != nil {
		s.fail(w, errors.New(errors.ErrCodeInvalidInput, "x and y must be integers"))
		return
	}
	b, ok := sheet.BoundsAt(x, y)
	if !ok {
		s.fail(w, errors.New(errors.ErrCodeNoSprite, "no sprite at %d,%d", x, y))
		return
	}
	s.respond(w, http.StatusOK, b)
}

// =============================================================================
// Helpers
// =============================================================================

// decodeLayout reads the request body as a layout document in the format
// named by ?from=, or by the Content-Type, or TOML.
func (s *Server) decodeLayout(r *http.Request) (*layout.Layout, error) {
	f := layout.TOML
	if from := r.URL.Query().Get("from"); from != "" {
		var ok bool
		if f, ok = layout.ParseFormat(from); !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown format %q", from)
		}
	} else {
		ct := r.Header.Get("Content-Type")
		switch {
		case strings.Contains(ct, "json"):
			f = layout.JSON
		case strings.Contains(ct, "yaml"):
			f = layout.YAML
		}
	}

	doc, err := layout.DecodeDocument(r.Body, f)
	if err != nil {
		return nil, err
	}
	return layout.New(doc, s.layoutOpts...)
}

// encode writes l in the named format and returns its content type.
func encode(buf *bytes.Buffer, l *layout.Layout, format string) (string, error) {
	switch format {
	case formatCSS:
		return "text/css; charset=utf-8", l.WriteCSS(buf)
	case formatReport:
		return "application/json", l.WriteJSON(buf)
	}
	f, ok := layout.ParseFormat(format)
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown format %q", format)
	}
	contentType := map[layout.Format]string{
		layout.TOML: "application/toml",
		layout.YAML: "application/yaml",
		layout.JSON: "application/json",
	}[f]
	return contentType, l.Document().Encode(buf, f)
}

func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// fail renders err as an error response. Errors without a code are
// internal and their text is not exposed.
func (s *Server) fail(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		s.respond(w, http.StatusRequestEntityTooLarge, errorResponse{
			Code:    errors.ErrCodeInvalidInput,
			Message: "request body too large",
		})
		return
	}

	code := errors.GetCode(err)
	if code == "" {
		s.logger.Error("request failed", "error", err)
		s.respond(w, http.StatusInternalServerError, errorResponse{
			Code:    errors.ErrCodeInternal,
			Message: "internal error",
		})
		return
	}
	s.respond(w, statusFor(code), errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeElementNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeNoSprite:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	case errors.ErrCodeInternal:
		return http.StatusInternalServerError
	case errors.ErrCodeUnavailable:
		return http.StatusBadGateway
	}
	return http.StatusBadRequest
}
