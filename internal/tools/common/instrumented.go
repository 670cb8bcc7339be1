package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel/attribute"

	"gcalmcp/internal/instrumentation"
)

// InstrumentedToolHandler wraps a tool handler with invocation metrics and
// a server span. A nil metrics value degrades to tracing only; the handler
// itself is never skipped.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", metrics, handler))
func InstrumentedToolHandler(
	toolName string,
	metrics *instrumentation.Metrics,
	handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error),
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, span := instrumentation.StartToolSpan(ctx, toolName)
		defer span.End()

		start := time.Now()
		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
		}

		span.SetAttributes(attribute.String(instrumentation.SpanAttrStatus, status))
		if status == instrumentation.StatusError {
			instrumentation.SetSpanError(span, err)
		} else {
			instrumentation.SetSpanSuccess(span)
		}

		metrics.RecordToolInvocation(ctx, toolName, status, duration)
		if status == instrumentation.StatusError {
			kind := FailureKind(result)
			if kind == "" {
				kind = "internal"
			}
			metrics.RecordToolError(ctx, toolName, kind)
		}

		return result, err
	}
}
