package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mergington/activities/internal/domain/activity"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// APIError represents an MCP tool error payload.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. It returns nil for
// errors that are not part of the registry contract.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, activity.ErrActivityNotFound):
		return &APIError{Code: "ACTIVITY_NOT_FOUND", Message: "activity not found", RecoveryHint: "Call list_activities and use the exact name"}
	case errors.Is(err, activity.ErrAlreadyRegistered):
		return &APIError{Code: "ALREADY_SIGNED_UP", Message: "student is already signed up for this activity"}
	case errors.Is(err, activity.ErrNotRegistered):
		return &APIError{Code: "NOT_REGISTERED", Message: "student is not registered for this activity"}
	default:
		return nil
	}
}

// errorResult renders err as an isError tool result. Unmapped errors are
// returned as-is for the SDK to report.
func errorResult(err error) (*sdkmcp.CallToolResult, any, error) {
	apiErr := MapError(err)
	if apiErr == nil {
		return nil, nil, err
	}
	data, mErr := json.Marshal(apiErr)
	if mErr != nil {
		return nil, nil, err
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}
