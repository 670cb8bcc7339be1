package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"gcalmcp/internal/config"
	"gcalmcp/internal/google"
	"gcalmcp/internal/instrumentation"
	"gcalmcp/internal/logging"
	"gcalmcp/internal/server"
	"gcalmcp/internal/tools/calendar_tools"
)

func newServeCmd() *cobra.Command {
	var (
		debugMode   bool
		transport   string
		httpAddr    string
		metricsAddr string
		skipVerify  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing the Google
Calendar tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Credentials:
  The server authenticates with a pre-provisioned refresh token. Set
  GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, and GOOGLE_REFRESH_TOKEN in the
  environment or in a .env file. Run 'gcalmcp auth' once to obtain the
  refresh token.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(transport, httpAddr, metricsAddr, debugMode, skipVerify)
		},
	}

	cmd.Flags().StringVarP(&transport, "transport", "t", "stdio",
		"Transport type (stdio or streamable-http)")
	cmd.Flags().StringVar(&httpAddr, "http-addr", "",
		"Address for the streamable HTTP transport (default from HTTP_ADDR, \":3000\")")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "",
		"Address for the Prometheus metrics server (default from METRICS_ADDR, \":9090\")")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false,
		"Skip the startup token refresh check")

	return cmd
}

func runServe(transport, httpAddr, metricsAddr string, debugMode, skipVerify bool) error {
	if transport != "stdio" && transport != "streamable-http" {
		return fmt.Errorf("invalid transport type: %s (must be stdio or streamable-http)", transport)
	}

	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if httpAddr == "" {
		httpAddr = cfg.HTTPAddr
	}
	if metricsAddr == "" {
		metricsAddr = cfg.MetricsAddr
	}

	// Logs go to stderr; on stdio transport, stdout belongs to the protocol.
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	logger = logger.With(slog.String(logging.KeyTransport, transport))

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Error("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	var metricsServer *server.MetricsServer
	if transport != "stdio" && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsAddr,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", logging.Err(err))
			}
		}()
		logger.Info("metrics server listening", slog.String("addr", metricsServer.Addr()))
	}

	if !skipVerify {
		ts := google.NewTokenSource(shutdownCtx, cfg.Credentials())
		if err := google.Verify(ts); err != nil {
			provider.Metrics().RecordTokenRefresh(shutdownCtx, instrumentation.RefreshResultFailure)
			return fmt.Errorf("token refresh check failed: %w", err)
		}
		provider.Metrics().RecordTokenRefresh(shutdownCtx, instrumentation.RefreshResultSuccess)
		logger.Info("token refresh check passed")
	}

	serverContext := server.NewServerContext(shutdownCtx, cfg, logger)
	serverContext.SetMetrics(provider.Metrics())
	defer func() {
		if metricsServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				logger.Error("metrics server shutdown failed", logging.Err(err))
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			logger.Error("server context shutdown failed", logging.Err(err))
		}
	}()

	mcpSrv := mcpserver.NewMCPServer("gcalmcp", version,
		mcpserver.WithToolCapabilities(true),
	)

	if err := calendar_tools.RegisterCalendarTools(mcpSrv, serverContext, provider.Metrics()); err != nil {
		return fmt.Errorf("failed to register calendar tools: %w", err)
	}

	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	default:
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, serverContext, httpAddr, logger)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, addr string, logger *slog.Logger) error {
	health := server.NewHealthChecker(sc)
	httpServer := server.NewHTTPServer(mcpSrv, health, sc.Metrics(), logger)

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.Start(addr); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	// The readiness probe flips once the listener is up.
	go func() {
		time.Sleep(100 * time.Millisecond)
		health.SetReady(true)
	}()

	logger.Info("http server listening", slog.String("addr", addr))

	select {
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping http server")
		health.SetReady(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		return nil
	}
}
