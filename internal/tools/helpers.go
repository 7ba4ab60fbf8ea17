// Package tools provides the MCP tool handlers for the chart engine.
//
// Each tool follows the same pattern:
// - A struct holding the application handler it delegates to
// - Definition() returns the mcp.Tool schema
// - Handle() binds the arguments, calls the handler and renders the result
//
// Failures never surface as Go errors: they become isError results carrying
// the domain message unchanged.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	derrors "github.com/ersonp/tension-core/internal/domain/errors"
)

// Tool is implemented by every tool in this package.
type Tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// bindArgs decodes the request arguments into dst through their JSON form,
// so a value of the wrong type fails as a validation error.
func bindArgs(req mcp.CallToolRequest, dst any) error {
	raw, err := json.Marshal(req.GetArguments())
	if err != nil {
		return derrors.NewValidation("arguments", err.Error())
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return derrors.NewValidation(typeErr.Field, fmt.Sprintf("must be of type %s", typeErr.Type))
		}
		return derrors.NewValidation("arguments", err.Error())
	}
	return nil
}

// jsonResult renders v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// messageResult renders a confirmation as {"message": ...}.
func messageResult(format string, args ...any) (*mcp.CallToolResult, error) {
	return jsonResult(struct {
		Message string `json:"message"`
	}{Message: fmt.Sprintf(format, args...)})
}

// errorResult turns err into an isError result with the caller-facing message.
func errorResult(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(derrors.Message(err)), nil
}

// stringItems is the schema of an array of strings.
func stringItems() mcp.PropertyOption {
	return mcp.Items(map[string]any{"type": "string"})
}
