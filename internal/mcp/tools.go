package mcp

import (
	"context"
	"encoding/json"

	"github.com/mergington/activities/internal/domain/activity"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type listActivitiesInput struct{}

type getActivityInput struct {
	Activity string `json:"activity" jsonschema:"exact activity name, case-sensitive, spaces included"`
}

type activityOutput struct {
	Name string `json:"name"`
	*activity.Activity
}

type registrationInput struct {
	Activity string `json:"activity" jsonschema:"exact activity name, case-sensitive, spaces included"`
	Email    string `json:"email" jsonschema:"student email address"`
}

type messageOutput struct {
	Message string `json:"message"`
}

func registerTools(server *sdkmcp.Server, svc ActivityService) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_activities",
		Description: "List every activity with description, schedule, max_participants and participants",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ listActivitiesInput) (*sdkmcp.CallToolResult, any, error) {
		catalog, err := svc.List(ctx)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(catalog)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_activity",
		Description: "Get one activity by exact name",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in getActivityInput) (*sdkmcp.CallToolResult, any, error) {
		act, err := svc.Get(ctx, in.Activity)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(activityOutput{Name: act.Name, Activity: act})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "signup",
		Description: "Sign a student up for an activity",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in registrationInput) (*sdkmcp.CallToolResult, any, error) {
		msg, err := svc.SignUp(ctx, in.Activity, in.Email)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(messageOutput{Message: msg})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "unregister",
		Description: "Remove a student from an activity",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in registrationInput) (*sdkmcp.CallToolResult, any, error) {
		msg, err := svc.Unregister(ctx, in.Activity, in.Email)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(messageOutput{Message: msg})
	})
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}
