// Package server wires the paintmap components together and runs the HTTP
// endpoint until the process is signalled.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrijs2005/paintmap/internal/logging"
	"github.com/dmitrijs2005/paintmap/internal/server/config"
	"github.com/dmitrijs2005/paintmap/internal/server/dispatch"
	"github.com/dmitrijs2005/paintmap/internal/server/httpapi"
	"github.com/dmitrijs2005/paintmap/internal/server/idgen"
	"github.com/dmitrijs2005/paintmap/internal/server/images"
	"github.com/dmitrijs2005/paintmap/internal/server/metrics"
	"github.com/dmitrijs2005/paintmap/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/paintmap/internal/server/services"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	services   *services.Services
	dispatcher *dispatch.Dispatcher
	http       *httpapi.Server
}

// NewApp builds the application from c, logging to stdout.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	logger := logging.NewJSONLogger(logOut, c.LogLevel)

	store, err := newImageStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("image store init error: %w", err)
	}

	clock := idgen.NewMicroClock()
	rm := repomanager.NewInMemoryRepositoryManager()
	svc := services.New(rm, idgen.New(c.IDGenerator, clock), clock, store)

	var opts []dispatch.Option
	var gatherer prometheus.Gatherer
	if c.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		dm, err := metrics.NewDispatchMetrics(reg)
		if err != nil {
			return nil, fmt.Errorf("metrics init error: %w", err)
		}
		if err := metrics.RegisterAccountGauge(reg, svc.Accounts); err != nil {
			return nil, fmt.Errorf("metrics init error: %w", err)
		}
		opts = append(opts, dispatch.WithObserver(dm))
		gatherer = reg
	}

	d := dispatch.New(svc.Accounts, svc.Maps, logger, opts...)

	h := httpapi.NewServer(httpapi.Settings{
		Address:         c.EndpointAddrHTTP,
		AllowedOrigins:  c.CORSAllowedOrigins,
		ShutdownTimeout: c.ShutdownTimeout,
		Metrics:         gatherer,
	}, d, logger)

	return &App{config: c, logger: logger, services: svc, dispatcher: d, http: h}, nil
}

func newImageStore(ctx context.Context, c *config.Config) (images.Store, error) {
	switch c.ImageStore {
	case "s3":
		return images.NewS3Store(ctx, images.S3Settings{
			User:         c.S3RootUser,
			Password:     c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	case "", "none":
		return images.NopStore{}, nil
	default:
		return nil, fmt.Errorf("unknown image store %q", c.ImageStore)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "id_generator", app.config.IDGenerator, "image_store", app.config.ImageStore)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
