// Package httpapi exposes the layout engine over HTTP.
//
// Routes:
//
//	GET  /healthz                                  liveness probe
//	GET  /v1/config                                current configuration (JSON)
//	POST /v1/commands  {"command": "outer-gap 5"}  apply a user command
//	GET  /v1/layout?windows=3&width=1920&height=1080[&x=0&y=0]
//	GET  /v1/tree?windows=3&width=1920&height=1080[&detailed=true]  (DOT)
//
// Errors are returned as {"code": "...", "error": "..."} with a status
// derived from the error code. Every response carries an X-Request-ID
// header, taken from the request when the client sent one.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/bsptile/pkg/bsp"
	"github.com/matzehuels/bsptile/pkg/config"
	bsperrors "github.com/matzehuels/bsptile/pkg/errors"
	"github.com/matzehuels/bsptile/pkg/render/dot"
)

// HeaderRequestID carries the request correlation ID.
const HeaderRequestID = "X-Request-ID"

// Handler is the subset of the engine the API needs.
type Handler interface {
	Layout(ctx context.Context, n int, output bsp.Rect) ([]bsp.Rect, error)
	Tree(ctx context.Context, n int, output bsp.Rect) (*bsp.Node, error)
	Command(ctx context.Context, line string) error
	Snapshot(ctx context.Context) (config.Config, error)
}

// Server is an http.Handler serving the control API.
type Server struct {
	handler Handler
	logger  *log.Logger
	router  chi.Router
}

// New returns a Server backed by h. A nil logger uses log.Default().
func New(h Handler, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{handler: h, logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/config", s.getConfig)
		r.Post("/commands", s.postCommand)
		r.Get("/layout", s.getLayout)
		r.Get("/tree", s.getTree)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{
			Code:  string(bsperrors.ErrCodeInvalidRequest),
			Error: "no route for " + r.Method + " " + r.URL.Path,
		})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{
			Code:  string(bsperrors.ErrCodeInvalidRequest),
			Error: "method " + r.Method + " not allowed",
		})
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves the API on addr until ctx is done, then shuts the
// listener down gracefully.
func ListenAndServe(ctx context.Context, addr string, s *Server) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("http control listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) getConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.handler.Snapshot(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newConfigView(cfg))
}

type commandRequest struct {
	Command string `json:"command"`
}

func (s *Server) postCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, bsperrors.Wrap(bsperrors.ErrCodeInvalidRequest, err, "decode request body"))
		return
	}
	if err := s.handler.Command(r.Context(), req.Command); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type layoutResponse struct {
	Output  bsp.Rect   `json:"output"`
	Windows []bsp.Rect `json:"windows"`
}

func (s *Server) getLayout(w http.ResponseWriter, r *http.Request) {
	n, output, err := parseLayoutQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rects, err := s.handler.Layout(r.Context(), n, output)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{Output: output, Windows: rects})
}

func (s *Server) getTree(w http.ResponseWriter, r *http.Request) {
	n, output, err := parseLayoutQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	root, err := s.handler.Tree(r.Context(), n, output)
	if err != nil {
		writeError(w, err)
		return
	}
	detailed, _ := strconv.ParseBool(r.URL.Query().Get("detailed"))
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(dot.ToDOT(root, dot.Options{Detailed: detailed})))
}

// =============================================================================
// Request Parsing
// =============================================================================

func parseLayoutQuery(r *http.Request) (int, bsp.Rect, error) {
	q := r.URL.Query()
	var out bsp.Rect

	n, err := strconv.Atoi(q.Get("windows"))
	if err != nil {
		return 0, out, bsperrors.New(bsperrors.ErrCodeInvalidRequest, "windows must be an integer, got %q", q.Get("windows"))
	}
	for _, dim := range []struct {
		name string
		dst  *uint32
	}{{"width", &out.Width}, {"height", &out.Height}} {
		v, err := strconv.ParseUint(q.Get(dim.name), 10, 32)
		if err != nil {
			return 0, out, bsperrors.New(bsperrors.ErrCodeInvalidRequest, "%s must be a non-negative integer, got %q", dim.name, q.Get(dim.name))
		}
		*dim.dst = uint32(v)
	}
	for _, pos := range []struct {
		name string
		dst  *int32
	}{{"x", &out.X}, {"y", &out.Y}} {
		raw := q.Get(pos.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return 0, out, bsperrors.New(bsperrors.ErrCodeInvalidRequest, "%s must be an integer, got %q", pos.name, raw)
		}
		*pos.dst = int32(v)
	}
	return n, out, nil
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := bsperrors.CodeOr(err, bsperrors.ErrCodeInternal)
	writeJSON(w, statusFor(err, code), errorBody{Code: string(code), Error: bsperrors.UserMessage(err)})
}

func statusFor(err error, code bsperrors.Code) int {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded),
		bsperrors.Is(err, bsperrors.ErrCodeUnavailable):
		return http.StatusServiceUnavailable
	}
	switch code {
	case bsperrors.ErrCodeInvalidCommand, bsperrors.ErrCodeInvalidValue,
		bsperrors.ErrCodeInvalidRequest, bsperrors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// =============================================================================
// Middleware
// =============================================================================

type ctxKey struct{}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"request_id", RequestID(r.Context()))
	})
}
