// Package server provides the runtime context and HTTP transports for the
// gcalmcp MCP server.
//
// ServerContext carries the configuration and the lazily-built calendar
// toolkit shared by all tool handlers. HTTPServer serves the MCP protocol
// over streamable HTTP next to health endpoints, and MetricsServer exposes
// Prometheus metrics on a dedicated port.
package server
