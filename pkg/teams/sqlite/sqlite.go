// Package sqlite loads the team directory from a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/papercomputeco/beatpath/pkg/teams"
)

const selectTeams = `SELECT CAST(id AS TEXT), name, COALESCE(mascot, ''), COALESCE(logo, ''), COALESCE(wins, 0), COALESCE(losses, 0) FROM teams`

// Loader reads the teams table from the database at Path.
type Loader struct {
	Path string
}

// NewLoader creates a SQLite loader. Path can be a file path or ":memory:".
func NewLoader(path string) *Loader {
	return &Loader{Path: path}
}

// Load opens the database, reads the teams table and closes it again.
func (l *Loader) Load(ctx context.Context) (*teams.Directory, error) {
	db, err := sql.Open("sqlite3", l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return LoadFrom(ctx, db)
}

// LoadFrom reads the teams table from an open database.
func LoadFrom(ctx context.Context, db *sql.DB) (*teams.Directory, error) {
	rows, err := db.QueryContext(ctx, selectTeams)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var list []teams.Team
	for rows.Next() {
		var t teams.Team
		var id string
		if err := rows.Scan(&id, &t.Name, &t.Mascot, &t.Logo, &t.Wins, &t.Losses); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		t.ID = teams.ID(id)
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading teams: %w", err)
	}

	return teams.NewDirectory(list), nil
}
