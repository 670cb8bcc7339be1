// Package cmd implements the command-line interface for gcalmcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server on stdio or streamable HTTP
//   - auth: Run the one-time OAuth flow to obtain a refresh token
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
