package calendar_tools

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"gcalmcp/internal/instrumentation"
	"gcalmcp/internal/server"
)

// RegisterCalendarTools registers all Calendar-related tools with the MCP
// server. The registry is static: every tool is registered at startup and
// none are added or removed at runtime.
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext, metrics *instrumentation.Metrics) error {
	if err := RegisterCalendarListTools(s, sc, metrics); err != nil {
		return fmt.Errorf("failed to register calendar list tools: %w", err)
	}

	if err := RegisterEventTools(s, sc, metrics); err != nil {
		return fmt.Errorf("failed to register event tools: %w", err)
	}

	if err := RegisterRecurrenceTools(s, sc, metrics); err != nil {
		return fmt.Errorf("failed to register recurrence tools: %w", err)
	}

	return nil
}
