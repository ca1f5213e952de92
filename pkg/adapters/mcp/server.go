package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/navfocus"
	"github.com/aretw0/navfocus/pkg/scenario"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Workspace is what the MCP server needs from navfocus.Workspace.
type Workspace interface {
	List(ctx context.Context) ([]scenario.Metadata, error)
	Replay(ctx context.Context, ref string) (*scenario.Result, error)
	Run(ctx context.Context, sc *scenario.Scenario) (*scenario.Result, error)
}

var _ Workspace = (*navfocus.Workspace)(nil)

// Server exposes scenario replay as MCP tools.
type Server struct {
	workspace Workspace
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(ws Workspace, logger *slog.Logger) *Server {
	s := &Server{
		workspace: ws,
		mcpServer: server.NewMCPServer("navfocus-mcp", strings.TrimSpace(navfocus.Version)),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: replay_scenario
	replayTool := mcp.NewTool("replay_scenario",
		mcp.WithDescription("Replay a navigation scenario and return the lifecycle events it emits. "+
			"Pass either the ID of a scenario from list_scenarios or an inline YAML document."),
		mcp.WithString("id", mcp.Description("ID of a scenario in the workspace")),
		mcp.WithString("yaml", mcp.Description("Inline scenario document (initial state, steps, optional expectations)")),
	)
	s.mcpServer.AddTool(replayTool, s.handleReplay)

	// TOOL: list_scenarios
	s.mcpServer.AddTool(mcp.NewTool("list_scenarios",
		mcp.WithDescription("List the scenarios available in the workspace."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list, err := s.workspace.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(list)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleReplay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	id, _ := args["id"].(string)
	doc, _ := args["yaml"].(string)

	var (
		res *scenario.Result
		err error
	)
	switch {
	case doc != "":
		var sc *scenario.Scenario
		sc, err = scenario.Parse([]byte(doc))
		if err == nil {
			res, err = s.workspace.Run(ctx, sc)
		}
	case id != "":
		res, err = s.workspace.Replay(ctx, id)
	default:
		return mcp.NewToolResultError("one of 'id' or 'yaml' is required"), nil
	}
	if err != nil {
		s.logger.Warn("MCP replay failed", "id", id, "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("replay failed: %v", err)), nil
	}

	jsonBytes, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: navfocus://scenarios
	s.mcpServer.AddResource(mcp.NewResource("navfocus://scenarios", "Workspace scenarios",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		list, err := s.workspace.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list scenarios: %w", err)
		}
		jsonBytes, _ := json.Marshal(list)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "navfocus://scenarios",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
