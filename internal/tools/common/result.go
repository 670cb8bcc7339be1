package common

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"gcalmcp/internal/calendar"
)

// ErrorPayload is the structured failure body every tool returns in-band.
// Domain failures never surface as protocol-level errors.
type ErrorPayload struct {
	OK    bool        `json:"ok"`
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the classified kind and a human-readable message.
type ErrorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// JSONResult marshals v into an indented JSON text result.
func JSONResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// FailureResult translates err into the structured failure payload, using
// the calendar error taxonomy for the kind.
func FailureResult(err error) (*mcp.CallToolResult, error) {
	payload := ErrorPayload{
		Error: ErrorDetail{
			Kind:    string(calendar.KindOf(err)),
			Message: err.Error(),
		},
	}
	data, merr := json.MarshalIndent(payload, "", "  ")
	if merr != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultError(string(data)), nil
}

// FailureKind extracts the error kind from a failure result produced by
// FailureResult. Returns "" when the result is not such a failure.
func FailureKind(result *mcp.CallToolResult) string {
	if result == nil || !result.IsError || len(result.Content) == 0 {
		return ""
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		return ""
	}
	var payload ErrorPayload
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		return ""
	}
	return payload.Error.Kind
}
