// Package instrumentation provides OpenTelemetry metrics and tracing
// for the gcalmcp MCP server.
//
// # Metrics
//
// The package records HTTP request, Calendar API, token refresh, and MCP tool
// metrics. Metrics are exported through one of three exporters:
//
//   - prometheus: pull-based /metrics endpoint (default)
//   - otlp: push to an OTLP collector
//   - stdout: development/debugging only
//
// # Tracing
//
// Tracing is disabled by default and can be enabled with an OTLP or stdout
// exporter. Tool invocations become server spans and Calendar API calls
// become client spans underneath them.
//
// # Configuration
//
// Configuration comes from environment variables:
//
//   - OTEL_SERVICE_NAME: Service name (default: gcalmcp)
//   - INSTRUMENTATION_ENABLED: Master switch (default: true)
//   - METRICS_EXPORTER: prometheus, otlp, or stdout
//   - TRACING_EXPORTER: otlp, stdout, or none
//   - OTEL_EXPORTER_OTLP_ENDPOINT: Collector endpoint for otlp exporters
//   - OTEL_TRACES_SAMPLER_ARG: Trace sampling rate (default: 0.1)
//
// Usage:
//
//	config := instrumentation.DefaultConfig()
//	provider, err := instrumentation.NewProvider(ctx, config)
//	if err != nil {
//	    return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordToolInvocation(ctx, "list_events", "success", elapsed)
package instrumentation
