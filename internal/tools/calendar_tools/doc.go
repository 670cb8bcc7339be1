// Package calendar_tools provides MCP (Model Context Protocol) tools for
// Google Calendar operations.
//
// This package exposes calendar listing, fuzzy calendar resolution, event
// CRUD, and recurring-series management through a standardized MCP
// interface. Every tool reports domain failures as a structured in-band
// payload rather than a protocol error, so callers always receive a
// classified error kind.
package calendar_tools
