package api

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/beatpath/pkg/chain"
	"github.com/papercomputeco/beatpath/pkg/graph"
)

// Finder answers path lookups against the loaded victory graph.
type Finder interface {
	FindPath(ctx context.Context, from, to string) graph.Result
	TeamNames() []string
}

// Server is the API server for chain of victories lookups
type Server struct {
	config Config
	finder Finder
	logger *slog.Logger
	page   *page
	app    *fiber.App
}

// NewServer creates a new API server.
func NewServer(config Config, finder Finder, logger *slog.Logger) (*Server, error) {
	if finder == nil {
		return nil, errors.New("finder is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	pg, err := newPage()
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config: config,
		finder: finder,
		logger: logger,
		page:   pg,
		app:    app,
	}

	app.Use(s.requestID)
	if config.Metrics != nil {
		app.Use(s.instrument)
		app.Get("/metrics", adaptor.HTTPHandler(config.Metrics.Handler()))
	}

	app.Get("/ping", s.handlePing)
	app.Get("/", s.handleIndex)
	app.Post("/", s.handleIndexSubmit)
	app.Post(chain.PathEndpoint, s.handlePath)
	app.Get(chain.TeamsEndpoint, s.handleTeams)

	if config.MCPHandler != nil {
		app.All("/mcp", adaptor.HTTPHandler(config.MCPHandler))
	}

	return s, nil
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		"listen", s.config.ListenAddr,
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
