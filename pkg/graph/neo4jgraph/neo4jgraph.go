// Package neo4jgraph loads the victory graph from Neo4j, where teams are
// (:Team {id, name}) nodes and results are [:DEFEATED {weight, label}]
// relationships from winner to loser.
package neo4jgraph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/papercomputeco/beatpath/pkg/graph"
)

const (
	teamsQuery = "MATCH (t:Team) RETURN t.id AS id, coalesce(t.name, '') AS name"
	gamesQuery = "MATCH (w:Team)-[r:DEFEATED]->(l:Team) " +
		"RETURN w.id AS source, l.id AS target, coalesce(r.weight, 1.0) AS weight, coalesce(r.label, '') AS label"
)

// SessionRunner abstracts neo4j.SessionWithContext.
type SessionRunner interface {
	ExecuteRead(ctx context.Context, work neo4j.ManagedTransactionWork, configurers ...func(*neo4j.TransactionConfig)) (any, error)
	Close(ctx context.Context) error
}

// DriverSessioner abstracts neo4j.DriverWithContext.
type DriverSessioner interface {
	NewSession(ctx context.Context, config neo4j.SessionConfig) SessionRunner
	Close(ctx context.Context) error
}

type driver struct {
	driver neo4j.DriverWithContext
}

func (d *driver) NewSession(ctx context.Context, config neo4j.SessionConfig) SessionRunner {
	return d.driver.NewSession(ctx, config)
}

func (d *driver) Close(ctx context.Context) error {
	return d.driver.Close(ctx)
}

// Config holds Neo4j connection settings.
type Config struct {
	URI      string
	Username string
	Password string
	Database string
}

// TeamRow is one (:Team) node.
type TeamRow struct {
	ID   string
	Name string
}

// GameRow is one [:DEFEATED] relationship.
type GameRow struct {
	Source string
	Target string
	Weight float64
	Label  string
}

// Source loads the graph through a Neo4j driver.
type Source struct {
	driver   DriverSessioner
	database string
}

// NewSource connects to Neo4j.
func NewSource(c Config) (*Source, error) {
	d, err := neo4j.NewDriverWithContext(c.URI, neo4j.BasicAuth(c.Username, c.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4j driver error: %w", err)
	}
	return NewSourceWithDriver(&driver{driver: d}, c.Database), nil
}

// NewSourceWithDriver builds a source on a custom driver (tests).
func NewSourceWithDriver(d DriverSessioner, database string) *Source {
	return &Source{driver: d, database: database}
}

// Close closes the underlying driver.
func (s *Source) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// Load implements graph.Source.
func (s *Source) Load(ctx context.Context) (*graph.Graph, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		teams, err := readTeams(ctx, tx)
		if err != nil {
			return nil, err
		}
		games, err := readGames(ctx, tx)
		if err != nil {
			return nil, err
		}
		return Build(teams, games)
	})
	if err != nil {
		return nil, fmt.Errorf("reading graph from neo4j: %w", err)
	}

	g, ok := out.(*graph.Graph)
	if !ok {
		return nil, fmt.Errorf("reading graph from neo4j: unexpected result %T", out)
	}
	return g, nil
}

// Build assembles a graph from query rows.
func Build(teams []TeamRow, games []GameRow) (*graph.Graph, error) {
	b := graph.NewBuilder()
	for _, t := range teams {
		b.AddNode(t.ID, t.Name)
	}
	for _, g := range games {
		if err := b.AddEdge(g.Source, g.Target, g.Weight, g.Label); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

func readTeams(ctx context.Context, tx neo4j.ManagedTransaction) ([]TeamRow, error) {
	result, err := tx.Run(ctx, teamsQuery, nil)
	if err != nil {
		return nil, err
	}

	var rows []TeamRow
	for result.Next(ctx) {
		rec := result.Record()
		id, _ := rec.Get("id")
		name, _ := rec.Get("name")
		rows = append(rows, TeamRow{ID: asString(id), Name: asString(name)})
	}
	return rows, result.Err()
}

func readGames(ctx context.Context, tx neo4j.ManagedTransaction) ([]GameRow, error) {
	result, err := tx.Run(ctx, gamesQuery, nil)
	if err != nil {
		return nil, err
	}

	var rows []GameRow
	for result.Next(ctx) {
		rec := result.Record()
		source, _ := rec.Get("source")
		target, _ := rec.Get("target")
		weight, _ := rec.Get("weight")
		label, _ := rec.Get("label")

		w, err := asFloat(weight)
		if err != nil {
			return nil, err
		}
		rows = append(rows, GameRow{
			Source: asString(source),
			Target: asString(target),
			Weight: w,
			Label:  asString(label),
		})
	}
	return rows, result.Err()
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func asFloat(v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return graph.DefaultWeight, nil
	case float64:
		return t, nil
	case int64:
		return float64(t), nil
	default:
		return 0, fmt.Errorf("unexpected weight type %T", v)
	}
}
