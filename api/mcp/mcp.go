// Package mcp provides an MCP (Model Context Protocol) server exposing chain
// of victories lookups as tools.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papercomputeco/beatpath/pkg/graph"
	"github.com/papercomputeco/beatpath/pkg/utils"
)

// Finder answers path lookups.
type Finder interface {
	FindPath(ctx context.Context, from, to string) graph.Result
	TeamNames() []string
}

type Config struct {
	// Finder resolves chains between teams
	Finder Finder

	// Noop for empty MCP server
	Noop bool

	// Logger is the configured slog logger
	Logger *slog.Logger
}

type Server struct {
	config    Config
	mcpServer *mcp.Server
	handler   *mcp.StreamableHTTPHandler
}

// NewServer creates a new MCP server with the find_path and list_teams tools.
func NewServer(c Config) (*Server, error) {
	s := &Server{
		config: c,
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "beatpath",
			Version: utils.Version,
		},
		&mcp.ServerOptions{},
	)

	if !c.Noop {
		if c.Finder == nil {
			return nil, errors.New("finder is required")
		}
		if c.Logger == nil {
			return nil, errors.New("logger is required")
		}

		mcp.AddTool(mcpServer, &mcp.Tool{
			Name:        findPathToolName,
			Description: findPathDescription,
		}, s.handleFindPath)

		mcp.AddTool(mcpServer, &mcp.Tool{
			Name:        listTeamsToolName,
			Description: listTeamsDescription,
		}, s.handleListTeams)
	}

	s.mcpServer = mcpServer

	// Create a streamable HTTP net/http handler for stateless operations
	s.handler = mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server {
			return mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: true,
		},
	)

	return s, nil
}

// Handler returns the HTTP handler for the MCP server.
func (s *Server) Handler() http.Handler {
	return s.handler
}
