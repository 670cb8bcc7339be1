// Package common provides shared utilities for MCP tool implementations.
// It contains the structured result and failure payload helpers, request
// argument accessors, and the instrumentation wrapper used by all tool
// packages to ensure consistent behavior.
package common
