package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mergington/activities/internal/domain/activity"
	"github.com/mergington/activities/internal/mcp"
	"github.com/mergington/activities/internal/memory"
	"github.com/mergington/activities/internal/sqlite"
	"github.com/mergington/activities/internal/transport"
	"github.com/mergington/activities/web"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// Backend selects the registry implementation behind the test server.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendSQLite Backend = "sqlite"
)

// Backends lists every registry implementation.
var Backends = []Backend{BackendMemory, BackendSQLite}

type TestServer struct {
	Server  *httptest.Server
	Service *activity.Service
	Metrics *transport.Metrics
}

// New starts a fully wired server over a freshly seeded registry.
func New(t *testing.T, backend Backend) *TestServer {
	t.Helper()

	var repo activity.Repository
	switch backend {
	case BackendSQLite:
		db, err := sqlite.New(":memory:")
		require.NoError(t, err)
		require.NoError(t, db.RunMigrations())
		t.Cleanup(func() { _ = db.Close() })
		repo = sqlite.NewActivityRepository(db)
	default:
		repo = memory.NewRegistry()
	}

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.Seed(context.Background(), activity.DefaultCatalog()))

	mcpServer := mcp.NewServer(mcp.Config{Activities: svc})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		nil,
	)

	metrics := transport.NewMetrics()
	server := httptest.NewServer(transport.NewServer(svc, transport.Options{
		Metrics: metrics,
		Static:  web.Static(),
		MCP:     mcpHandler,
	}))
	t.Cleanup(server.Close)

	return &TestServer{
		Server:  server,
		Service: svc,
		Metrics: metrics,
	}
}

// URL joins path onto the server base URL.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}
