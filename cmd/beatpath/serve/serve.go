// Package servecmder provides the serve command: the path API, the web page,
// and the MCP and metrics endpoints, all backed by one victory graph.
package servecmder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/papercomputeco/beatpath/api"
	apimcp "github.com/papercomputeco/beatpath/api/mcp"
	"github.com/papercomputeco/beatpath/pkg/config"
	"github.com/papercomputeco/beatpath/pkg/graph"
	"github.com/papercomputeco/beatpath/pkg/logger"
	"github.com/papercomputeco/beatpath/pkg/metrics"
	"github.com/papercomputeco/beatpath/pkg/watch"
	"github.com/papercomputeco/beatpath/pkg/worker"
)

type ServeCommander struct {
	listen         string
	graphSource    string
	graphPath      string
	watch          bool
	teamsSource    string
	teamsPath      string
	teamsDSN       string
	neo4jURI       string
	llmProvider    string
	llmModel       string
	cacheProvider  string
	redisAddr      string
	eventsProvider string
	eventsBrokers  string
	eventsTopic    string
	eventsWorkers  uint

	debug   bool
	json    bool
	logFile string

	v      *viper.Viper
	logger *slog.Logger
}

const serveLongDesc string = `Run the beatpath server.

Loads the victory graph and team directory, then serves:
  GET  /            Web page with a no-JS search form
  POST /api/path    Shortest chain of victories between two teams
  GET  /api/teams   Known team names
  GET  /ping        Health check
  GET  /metrics     Prometheus metrics (metrics.enabled)
  /mcp              MCP find_path and list_teams tools (mcp.enabled)

When no chain exists, a generated explanation is returned instead unless
llm.provider is "none". Every lookup is published as a search event.

Settings come from flags, BEATPATH_* environment variables, config.toml
and defaults, in that order.`

const serveShortDesc string = "Run the beatpath server"

// serveFlags are the registry flags serve binds to viper.
var serveFlags = []string{
	config.FlagListen,
	config.FlagGraphSource,
	config.FlagGraphPath,
	config.FlagWatch,
	config.FlagTeamsSource,
	config.FlagTeamsPath,
	config.FlagTeamsDSN,
	config.FlagNeo4jURI,
	config.FlagLLMProvider,
	config.FlagLLMModel,
	config.FlagCacheProvider,
	config.FlagRedisAddr,
	config.FlagEventsProv,
	config.FlagEventsBrokers,
	config.FlagEventsTopic,
	config.FlagEventsWorkers,
}

func NewServeCmd() *cobra.Command {
	return (&ServeCommander{}).command()
}

func (c *ServeCommander) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			config.BindRegisteredFlags(v, cmd, config.Registry, serveFlags)
			c.v = v
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			c.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}
			return c.run(cmd.Context())
		},
	}

	config.AddStringFlag(cmd, config.Registry, config.FlagListen, &c.listen)
	config.AddStringFlag(cmd, config.Registry, config.FlagGraphSource, &c.graphSource)
	config.AddStringFlag(cmd, config.Registry, config.FlagGraphPath, &c.graphPath)
	config.AddBoolFlag(cmd, config.Registry, config.FlagWatch, &c.watch)
	config.AddStringFlag(cmd, config.Registry, config.FlagTeamsSource, &c.teamsSource)
	config.AddStringFlag(cmd, config.Registry, config.FlagTeamsPath, &c.teamsPath)
	config.AddStringFlag(cmd, config.Registry, config.FlagTeamsDSN, &c.teamsDSN)
	config.AddStringFlag(cmd, config.Registry, config.FlagNeo4jURI, &c.neo4jURI)
	config.AddStringFlag(cmd, config.Registry, config.FlagLLMProvider, &c.llmProvider)
	config.AddStringFlag(cmd, config.Registry, config.FlagLLMModel, &c.llmModel)
	config.AddStringFlag(cmd, config.Registry, config.FlagCacheProvider, &c.cacheProvider)
	config.AddStringFlag(cmd, config.Registry, config.FlagRedisAddr, &c.redisAddr)
	config.AddStringFlag(cmd, config.Registry, config.FlagEventsProv, &c.eventsProvider)
	config.AddStringFlag(cmd, config.Registry, config.FlagEventsBrokers, &c.eventsBrokers)
	config.AddStringFlag(cmd, config.Registry, config.FlagEventsTopic, &c.eventsTopic)
	config.AddUintFlag(cmd, config.Registry, config.FlagEventsWorkers, &c.eventsWorkers)
	cmd.Flags().BoolVar(&c.json, "json-logs", false, "Write logs as JSON")
	cmd.Flags().StringVar(&c.logFile, "log-file", "", "Also write JSON logs to this file")

	return cmd
}

func (c *ServeCommander) run(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log, closeLog, err := c.newLogger()
	if err != nil {
		return err
	}
	defer closeLog()
	c.logger = log

	s, err := build(ctx, c.v, c.logger)
	if err != nil {
		return err
	}
	defer s.close()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.server.Run(); err != nil {
			return fmt.Errorf("API server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		c.logger.Info("shutting down")
		return s.server.Shutdown()
	})

	if s.watcher != nil {
		g.Go(func() error {
			return s.watcher.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (c *ServeCommander) newLogger() (*slog.Logger, func(), error) {
	console := logger.New(
		logger.WithDebug(c.debug),
		logger.WithPretty(!c.json),
		logger.WithJSON(c.json),
		logger.WithWriter(os.Stderr),
		logger.WithComponent("serve"),
	)
	if c.logFile == "" {
		return console, func() {}, nil
	}

	f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	fileLog := logger.New(
		logger.WithDebug(c.debug),
		logger.WithJSON(true),
		logger.WithWriter(f),
		logger.WithComponent("serve"),
	)
	return logger.Multi(console, fileLog), func() { _ = f.Close() }, nil
}

// stack is everything serve runs, in dependency order.
type stack struct {
	service *graph.Service
	metrics *metrics.Metrics
	pool    *worker.Pool
	server  *api.Server
	watcher *watch.Watcher
	closers []closer
	logger  *slog.Logger
}

// build assembles the server from settings. On error, everything already
// opened is closed.
func build(ctx context.Context, v *viper.Viper, log *slog.Logger) (_ *stack, err error) {
	s := &stack{logger: log}
	defer func() {
		if err != nil {
			s.close()
		}
	}()

	if v.GetBool("metrics.enabled") {
		s.metrics = metrics.New()
	}

	source, closeSource, err := newGraphSource(ctx, v)
	if err != nil {
		return nil, err
	}
	s.addCloser(closeSource)

	teamsLoader, err := newTeamsLoader(v)
	if err != nil {
		return nil, err
	}

	explainer, closeExplainer, err := newExplainer(ctx, v, log)
	if err != nil {
		return nil, err
	}
	s.addCloser(closeExplainer)

	s.service, err = graph.NewService(ctx, graph.ServiceConfig{
		Source:    source,
		Teams:     teamsLoader,
		Explainer: explainer,
		Fallback:  v.GetString("llm.provider") != "none",
		Logger:    log,
	})
	if s.metrics != nil {
		teams := 0
		if s.service != nil {
			teams = s.service.NumTeams()
		}
		s.metrics.ObserveReload(teams, err)
	}
	if err != nil {
		return nil, err
	}

	publisher, err := newPublisher(v)
	if err != nil {
		return nil, err
	}
	s.addCloser(publisher.Close)

	s.pool, err = worker.NewPool(&worker.Config{
		Publisher:  publisher,
		NumWorkers: v.GetUint("events.workers"),
		Logger:     log,
	})
	if err != nil {
		return nil, err
	}

	var mcpHandler http.Handler
	if v.GetBool("mcp.enabled") {
		mcpServer, err := apimcp.NewServer(apimcp.Config{
			Finder: s.service,
			Logger: log,
		})
		if err != nil {
			return nil, fmt.Errorf("creating MCP server: %w", err)
		}
		mcpHandler = mcpServer.Handler()
	}

	s.server, err = api.NewServer(api.Config{
		ListenAddr: v.GetString("server.listen"),
		Events:     s.pool,
		Metrics:    s.metrics,
		MCPHandler: mcpHandler,
	}, s.service, log)
	if err != nil {
		return nil, fmt.Errorf("creating API server: %w", err)
	}

	if v.GetBool("graph.watch") {
		files := watchFiles(v)
		if len(files) == 0 {
			log.Warn("graph.watch is set but no local data files are configured")
		} else {
			s.watcher, err = watch.New(watch.Config{
				Files:  files,
				Reload: s.reload,
				Logger: log,
			})
			if err != nil {
				return nil, err
			}
		}
	}

	return s, nil
}

func (s *stack) reload(ctx context.Context) error {
	err := s.service.Reload(ctx)
	if s.metrics != nil {
		s.metrics.ObserveReload(s.service.NumTeams(), err)
	}
	return err
}

func (s *stack) addCloser(c closer) {
	if c != nil {
		s.closers = append(s.closers, c)
	}
}

// close drains the event pool before closing the publisher and the rest in
// reverse order.
func (s *stack) close() {
	if s.pool != nil {
		s.pool.Close()
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.logger.Warn("closing resource", "error", err)
		}
	}
}
