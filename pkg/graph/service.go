package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/papercomputeco/beatpath/pkg/chain"
	"github.com/papercomputeco/beatpath/pkg/explain"
	"github.com/papercomputeco/beatpath/pkg/teams"
)

// User-facing failure messages returned in Result.Error.
const (
	MsgUnknownTeam       = "Unknown team name provided."
	MsgSameTeam          = "Choose two different teams."
	MsgNoPath            = "No transitive path found."
	MsgLLMNotConfigured  = "LLM service not configured."
	msgExplainFailedStem = "Error generating LLM response"
)

// Outcome classifies a FindPath result.
type Outcome string

const (
	OutcomePath         Outcome = "path"
	OutcomeFallback     Outcome = "fallback"
	OutcomeUnknownTeam  Outcome = "unknown_team"
	OutcomeSameTeam     Outcome = "same_team"
	OutcomeNoPath       Outcome = "no_path"
	OutcomeExplainError Outcome = "explain_error"
)

// Result is the answer to a path query. Error is set on failure.
type Result struct {
	Outcome Outcome
	Path    []string
	Edges   []chain.Edge
	LLMText string
	Error   string
}

// Failed reports whether the query failed.
func (r Result) Failed() bool {
	return r.Error != ""
}

// Response converts the result to its wire form.
func (r Result) Response() chain.Response {
	path := r.Path
	if path == nil {
		path = []string{}
	}
	edges := r.Edges
	if edges == nil {
		edges = []chain.Edge{}
	}
	return chain.Response{
		Path:    path,
		Edges:   edges,
		LLMText: r.LLMText,
		Error:   r.Error,
	}
}

// ServiceConfig configures a Service.
type ServiceConfig struct {
	// Source loads the victory graph. Required.
	Source Source

	// Teams loads logos and team details. Nil means no logos.
	Teams teams.Loader

	// Explainer generates fallback text when no path exists. Nil with
	// Fallback enabled reports MsgLLMNotConfigured.
	Explainer explain.Explainer

	// Fallback enables generated explanations for unreachable pairs.
	Fallback bool

	// Logger is the configured slog logger
	Logger *slog.Logger
}

type snapshot struct {
	graph *Graph
	teams *teams.Directory
}

// Service answers path queries against the current graph. The graph and team
// directory can be reloaded while queries are running.
type Service struct {
	config  ServiceConfig
	current atomic.Pointer[snapshot]
}

// NewService loads the graph and team directory once.
func NewService(ctx context.Context, c ServiceConfig) (*Service, error) {
	if c.Source == nil {
		return nil, errors.New("graph source is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	s := &Service{config: c}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload reloads the graph and team directory and swaps them in atomically.
// On error the previous snapshot stays in place.
func (s *Service) Reload(ctx context.Context) error {
	g, err := s.config.Source.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading graph: %w", err)
	}

	var dir *teams.Directory
	if s.config.Teams != nil {
		dir, err = s.config.Teams.Load(ctx)
		if err != nil {
			return fmt.Errorf("loading teams: %w", err)
		}
	}

	s.current.Store(&snapshot{graph: g, teams: dir})
	s.config.Logger.Info("victory graph loaded",
		"teams", g.Len(),
		"logos", dir.Len(),
	)
	return nil
}

// TeamNames returns the sorted display names of all teams.
func (s *Service) TeamNames() []string {
	return s.current.Load().graph.TeamNames()
}

// NumTeams returns the number of teams in the graph.
func (s *Service) NumTeams() int {
	return s.current.Load().graph.Len()
}

// FindPath resolves the shortest chain of victories from one team to another.
func (s *Service) FindPath(ctx context.Context, from, to string) Result {
	snap := s.current.Load()
	g := snap.graph

	src, okSrc := g.Lookup(from)
	dst, okDst := g.Lookup(to)
	if !okSrc || !okDst {
		return Result{Outcome: OutcomeUnknownTeam, Error: MsgUnknownTeam}
	}
	if src == dst {
		return Result{
			Outcome: OutcomeSameTeam,
			Path:    []string{g.Name(src)},
			Error:   MsgSameTeam,
		}
	}

	nodes, steps, ok := g.ShortestPath(src, dst)
	if !ok {
		return s.fallback(ctx, snap, src, dst)
	}

	names := make([]string, len(nodes))
	for i, id := range nodes {
		names[i] = g.Name(id)
	}

	edges := make([]chain.Edge, len(steps))
	for i, step := range steps {
		label := step.Label
		if label == "" {
			label = fmt.Sprintf("%s def. %s", g.Name(step.From), g.Name(step.To))
		}
		edges[i] = chain.Edge{
			From:     g.Name(step.From),
			To:       g.Name(step.To),
			Label:    label,
			FromLogo: snap.teams.Logo(step.From),
			ToLogo:   snap.teams.Logo(step.To),
		}
	}

	return Result{Outcome: OutcomePath, Path: names, Edges: edges}
}

func (s *Service) fallback(ctx context.Context, snap *snapshot, src, dst string) Result {
	if !s.config.Fallback {
		return Result{Outcome: OutcomeNoPath, Error: MsgNoPath}
	}
	if s.config.Explainer == nil {
		return Result{Outcome: OutcomeNoPath, Error: MsgLLMNotConfigured}
	}

	g := snap.graph
	victor, loser := g.Name(src), g.Name(dst)

	text, err := s.config.Explainer.Explain(ctx, victor, loser)
	if err != nil {
		s.config.Logger.Error("failed to generate explanation",
			"victor", victor,
			"loser", loser,
			"error", err,
		)
		return Result{
			Outcome: OutcomeExplainError,
			Error:   fmt.Sprintf("%s: %v", msgExplainFailedStem, err),
		}
	}

	return Result{
		Outcome: OutcomeFallback,
		LLMText: text,
		Edges: []chain.Edge{{
			From:     victor,
			To:       loser,
			Label:    fmt.Sprintf("%s vs. %s", victor, loser),
			FromLogo: snap.teams.Logo(src),
			ToLogo:   snap.teams.Logo(dst),
		}},
	}
}
