package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultUpstream is the public OMDb endpoint
const DefaultUpstream = "https://www.omdbapi.com/"

// forwardedParams are the query parameters passed upstream; everything else,
// including any client apikey, is dropped
var forwardedParams = []string{"s", "i", "t", "type", "y", "plot", "page", "r"}

// Config holds what the proxy needs to reach the movie API
type Config struct {
	Upstream  string
	APIKey    string
	Timeout   time.Duration     // per upstream request
	Transport http.RoundTripper // nil selects http.DefaultTransport
}

// Server forwards OMDb queries, attaching the API key server-side
type Server struct {
	upstream *url.URL
	apiKey   string
	timeout  time.Duration
	client   *http.Client
	tracer   trace.Tracer
	logger   *slog.Logger
	router   *mux.Router
}

// New creates a proxy server
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("proxy requires an API key")
	}
	if cfg.Upstream == "" {
		cfg.Upstream = DefaultUpstream
	}
	upstream, err := url.Parse(cfg.Upstream)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream URL: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	s := &Server{
		upstream: upstream,
		apiKey:   cfg.APIKey,
		timeout:  cfg.Timeout,
		client:   &http.Client{Transport: otelhttp.NewTransport(base)},
		tracer:   otel.Tracer("github.com/mmcdole/popcorn/internal/proxy"),
		logger:   logger,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, s.loggingMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/omdb").Subrouter()
	api.HandleFunc("/", s.forward).Methods(http.MethodGet).Queries("s", "{s:.+}")
	api.HandleFunc("/", s.forward).Methods(http.MethodGet).Queries("i", "{i:.+}")
	api.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusBadRequest, "expected s or i query parameter")
	})

	return r
}

// Handler returns the instrumented HTTP handler
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, "popcorn-proxy")
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.timeout + 5*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("proxy listening", "addr", addr, "upstream", s.upstream.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("proxy shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// forward relays one query to the upstream API
func (s *Server) forward(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "omdb.forward")
	defer span.End()

	in := r.URL.Query()
	out := url.Values{}
	for _, key := range forwardedParams {
		if v := in.Get(key); v != "" {
			out.Set(key, v)
		}
	}
	out.Set("apikey", s.apiKey)
	span.SetAttributes(
		attribute.String("omdb.search", out.Get("s")),
		attribute.String("omdb.id", out.Get("i")),
	)

	target := *s.upstream
	target.RawQuery = out.Encode()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		span.RecordError(err)
		writeError(w, http.StatusInternalServerError, "failed to build upstream request")
		return
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream request failed")
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			s.logger.Warn("upstream timed out", "request_id", RequestID(r.Context()), "timeout", s.timeout)
			writeError(w, http.StatusGatewayTimeout, "upstream timed out")
			return
		}
		if r.Context().Err() != nil {
			// Client went away
			return
		}
		s.logger.Error("upstream request failed", "request_id", RequestID(r.Context()), "error", err)
		writeError(w, http.StatusBadGateway, "upstream unavailable")
		return
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("omdb.status", resp.StatusCode))
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		s.logger.Debug("failed to relay upstream body", "request_id", RequestID(r.Context()), "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"Response":"False","Error":%q}`, message)
}
