package mcpserver

import (
	"context"
	"io"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"testctl/internal/orchestrator"
	"testctl/pkg/logging"
)

// Tool names exposed by the server.
const (
	ToolListChecks = "testctl_list_checks"
	ToolRunChecks  = "testctl_run_checks"
	ToolClearCache = "testctl_clear_cache"
)

// Server exposes the orchestrator as MCP tools.
type Server struct {
	orchestrator *orchestrator.Orchestrator
	mcpServer    *server.MCPServer

	// runMu serializes runs so each cache key is written once per run
	runMu sync.Mutex
}

// NewServer creates an MCP server backed by o.
func NewServer(o *orchestrator.Orchestrator, version string) *Server {
	s := &Server{
		orchestrator: o,
		mcpServer: server.NewMCPServer(
			"testctl",
			version,
			server.WithToolCapabilities(true),
		),
	}
	s.registerTools()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Serve speaks MCP over the given streams until ctx is done or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	logging.Info("MCPServer", "Serving %d checks over stdio", s.orchestrator.Registry().Len())
	return server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
}

func (s *Server) registerTools() {
	categories := "Comma-separated categories to select; empty selects all. Known: " +
		joinCategories(s.orchestrator.Registry().Categories())

	s.mcpServer.AddTool(
		mcp.NewTool(ToolListChecks,
			mcp.WithDescription("List registered checks"),
			mcp.WithString("categories", mcp.Description(categories)),
		),
		s.handleListChecks,
	)
	s.mcpServer.AddTool(
		mcp.NewTool(ToolRunChecks,
			mcp.WithDescription("Run checks, reusing fresh passing results from the cache, and return the summary"),
			mcp.WithString("categories", mcp.Description(categories)),
			mcp.WithBoolean("force", mcp.Description("Ignore and clear the cache, running every selected check")),
			mcp.WithBoolean("sequential", mcp.Description("Run checks one at a time in registry order")),
		),
		s.handleRunChecks,
	)
	s.mcpServer.AddTool(
		mcp.NewTool(ToolClearCache,
			mcp.WithDescription("Drop every cached check result"),
		),
		s.handleClearCache,
	)
}
