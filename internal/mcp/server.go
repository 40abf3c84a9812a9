package mcp

import (
	"context"
	"log/slog"

	"github.com/mergington/activities/internal/domain/activity"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerName and ServerVersion identify the implementation to MCP clients.
const (
	ServerName    = "mergington-activities"
	ServerVersion = "0.1.0"
)

const serverInstructions = `Mergington High School extracurricular activities.
Use list_activities to see every activity with its schedule, capacity and participants, or get_activity for one.
Use signup and unregister with the exact activity name (case-sensitive, spaces included) and the student's email.
Capacity (max_participants) is informational and not enforced.`

// ActivityService defines registry operations needed by MCP.
type ActivityService interface {
	List(ctx context.Context) (activity.Catalog, error)
	Get(ctx context.Context, name string) (*activity.Activity, error)
	SignUp(ctx context.Context, name, email string) (string, error)
	Unregister(ctx context.Context, name, email string) (string, error)
}

// Config contains server configuration.
type Config struct {
	Activities ActivityService
	Logger     *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerCatalogResource(server, cfg.Activities)
	registerTools(server, cfg.Activities)

	return server
}
