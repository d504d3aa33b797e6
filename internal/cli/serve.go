package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/plinth/pkg/errors"
	pio "github.com/matzehuels/plinth/pkg/io"
	"github.com/matzehuels/plinth/pkg/observability"
	"github.com/matzehuels/plinth/pkg/pipeline"
	"github.com/matzehuels/plinth/pkg/render"
)

const (
	// maxBodyBytes bounds request documents.
	maxBodyBytes = 4 << 20

	shutdownTimeout = 5 * time.Second
	requestIDHeader = "X-Request-ID"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout pipeline over HTTP",
		Long: `Serve the layout pipeline over HTTP.

Endpoints:
  POST /v1/layout                 document in, layout JSON out
  POST /v1/render?format=svg      document in, artifact out
  GET  /healthz                   liveness

The request body is a document; its format comes from the Content-Type
(application/json, application/toml, application/yaml) or the ?input= query
parameter. Query parameters width, height, font_size, line_height, scale and
outlines override the document and the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.Config.Serve.Addr != "" {
				addr = c.Config.Serve.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	s := &server{runner: runner, logger: c.Logger, defaults: c.defaultOptions()}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	c.Logger.Info("serving", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// defaultOptions are the config-file options every request starts from.
func (c *CLI) defaultOptions() pipeline.Options {
	cfg := c.Config
	return pipeline.Options{
		Width:      cfg.Viewport.Width,
		Height:     cfg.Viewport.Height,
		Font:       cfg.Text.Font,
		FontSize:   cfg.Text.Size,
		LineHeight: cfg.Text.LineHeight,
		Logger:     c.Logger,
	}
}

// =============================================================================
// server
// =============================================================================

type server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
}

type ctxRequestID struct{}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})
	return r
}

// requestID tags each request with a UUID, reusing the caller's if given.
func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), ctxRequestID{}, id)
		ctx = withLogger(ctx, s.logger.With("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// logRequests reports every request to the HTTP hooks.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	doc, hash, opts, err := s.decode(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data, _, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), doc, hash, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.Header().Set("Content-Type", render.FormatJSON.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	doc, hash, opts, err := s.decode(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = string(render.FormatSVG)
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}
	opts.Formats = []string{format}

	artifacts, _, hit, err := s.runner.RenderWithCacheInfo(r.Context(), doc, hash, nil, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.Header().Set("Content-Type", render.Format(format).ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(artifacts[format])
}

// decode reads the request document and the option overrides.
func (s *server) decode(r *http.Request) (*pio.Document, string, pipeline.Options, error) {
	opts := s.defaults
	opts.Logger = loggerFromContext(r.Context())
	if err := queryOptions(r, &opts); err != nil {
		return nil, "", opts, err
	}

	format, err := requestFormat(r)
	if err != nil {
		return nil, "", opts, err
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, "", opts, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read body")
	}
	if len(data) > maxBodyBytes {
		return nil, "", opts, perrors.New(perrors.ErrCodeInvalidInput, "document exceeds %d bytes", maxBodyBytes)
	}

	doc, hash, err := pipeline.Load(r.Context(), pipeline.Source{Data: data, Format: format})
	return doc, hash, opts, err
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := perrors.HTTPStatus(err)
	if errors.Is(err, context.Canceled) {
		// client went away
		status = 499
	}
	logger := loggerFromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "err", err)
	} else {
		logger.Debug("request rejected", "err", err)
	}

	body := map[string]string{"error": perrors.UserMessage(err)}
	if code := perrors.GetCode(err); code != "" {
		body["code"] = string(code)
	}
	if id, ok := r.Context().Value(ctxRequestID{}).(string); ok {
		body["request_id"] = id
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
