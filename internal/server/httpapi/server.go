// Package httpapi exposes the dispatcher over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/paintmap/internal/common"
	"github.com/dmitrijs2005/paintmap/internal/logging"
	"github.com/dmitrijs2005/paintmap/internal/server/dispatch"
)

// Dispatcher runs one request described by its flat arguments.
type Dispatcher interface {
	Dispatch(ctx context.Context, args dispatch.Args) *dispatch.Response
}

type Settings struct {
	Address         string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
	// Metrics is served on /metrics when non-nil.
	Metrics prometheus.Gatherer
}

type Server struct {
	settings   Settings
	dispatcher Dispatcher
	logger     logging.Logger
	handler    http.Handler
}

func NewServer(s Settings, d Dispatcher, l logging.Logger) *Server {
	if l == nil {
		l = logging.NopLogger{}
	}
	srv := &Server{
		settings:   s,
		dispatcher: d,
		logger:     l.With("module", "http_server"),
	}
	srv.handler = srv.routes()
	return srv
}

// Handler returns the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.settings.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	for _, path := range []string{"/", "/api"} {
		r.Get(path, s.handleDispatch)
		r.Post(path, s.handleDispatch)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	if s.settings.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.settings.Metrics, promhttp.HandlerOpts{}))
	}

	return r
}

// handleDispatch always answers 200; failures travel in the envelope.
func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var resp *dispatch.Response
	if err := r.ParseForm(); err != nil {
		s.logger.Info(ctx, "bad request form", "error", err, "request_id", chimiddleware.GetReqID(ctx))
		resp = &dispatch.Response{Error: common.ErrorParse.Error()}
	} else {
		resp = s.dispatcher.Dispatch(ctx, dispatch.ArgsFromValues(r.Form))
	}

	b, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error(ctx, "encode response", "error", err)
		b = []byte(`{"succeed":false,"error":"internal error"}`)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.settings.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		timeout := s.settings.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-done
}
