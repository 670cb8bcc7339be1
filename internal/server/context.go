package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gcalmcp/internal/calendar"
	"gcalmcp/internal/config"
	"gcalmcp/internal/google"
	"gcalmcp/internal/instrumentation"
)

// Toolkit bundles the calendar components the tool handlers operate on.
type Toolkit struct {
	API        calendar.API
	Resolver   *calendar.Resolver
	Aggregator *calendar.Aggregator
	Series     *calendar.SeriesManager
}

// NewToolkit builds the calendar components on top of an API implementation.
func NewToolkit(api calendar.API, logger *slog.Logger) *Toolkit {
	resolver := calendar.NewResolver(api)
	return &Toolkit{
		API:        api,
		Resolver:   resolver,
		Aggregator: calendar.NewAggregator(api, resolver, logger),
		Series:     calendar.NewSeriesManager(api, resolver, logger),
	}
}

// ServerContext holds the context for the MCP server.
type ServerContext struct {
	ctx     context.Context
	cancel  context.CancelFunc
	config  *config.Config
	logger  *slog.Logger
	metrics *instrumentation.Metrics

	mu       sync.RWMutex
	toolkit  *Toolkit
	shutdown bool
}

// NewServerContext creates a new server context. The calendar toolkit is
// built lazily on first use so the process can start (and report health)
// before the first token refresh.
func NewServerContext(ctx context.Context, cfg *config.Config, logger *slog.Logger) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)
	if logger == nil {
		logger = slog.Default()
	}

	return &ServerContext{
		ctx:    shutdownCtx,
		cancel: cancel,
		config: cfg,
		logger: logger,
	}
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the server configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.config
}

// Logger returns the server logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// SetMetrics installs the metrics recorder used to instrument provider
// calls. Must be called before the toolkit is first built.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// Metrics returns the installed metrics recorder, which may be nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// Toolkit returns the calendar toolkit, building it on first use.
func (sc *ServerContext) Toolkit() (*Toolkit, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.toolkit != nil {
		return sc.toolkit, nil
	}
	if sc.shutdown {
		return nil, fmt.Errorf("server is shutting down")
	}

	httpClient := google.NewHTTPClient(sc.ctx, sc.config.Credentials())
	client, err := calendar.NewClient(sc.ctx, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}

	sc.toolkit = NewToolkit(calendar.NewInstrumentedAPI(client, sc.metrics), sc.logger)
	return sc.toolkit, nil
}

// SetToolkit injects a toolkit, replacing the lazily-built one. Used by
// tests and by callers that construct the client up front.
func (sc *ServerContext) SetToolkit(tk *Toolkit) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.toolkit = tk
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
