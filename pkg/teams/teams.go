// Package teams holds the team directory: display data (logo, mascot, record)
// keyed by the node ids used in the victory graph.
package teams

import (
	"context"
	"sort"

	"gopkg.in/yaml.v3"
)

// ID is a team identifier. Data files carry both numeric and string ids, so
// any scalar decodes into its textual form.
type ID string

// UnmarshalYAML accepts any scalar node.
func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	*id = ID(node.Value)
	return nil
}

// Team is one entry of the directory.
type Team struct {
	ID     ID     `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Mascot string `yaml:"mascot,omitempty" json:"mascot,omitempty"`
	Logo   string `yaml:"logo,omitempty" json:"logo,omitempty"`
	Wins   int    `yaml:"wins,omitempty" json:"wins,omitempty"`
	Losses int    `yaml:"losses,omitempty" json:"losses,omitempty"`
}

// Loader produces a Directory from some backing store.
type Loader interface {
	Load(ctx context.Context) (*Directory, error)
}

// Directory is an immutable id -> team lookup.
type Directory struct {
	byID map[ID]Team
}

// NewDirectory indexes teams by id. Later duplicates win.
func NewDirectory(teams []Team) *Directory {
	byID := make(map[ID]Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	return &Directory{byID: byID}
}

// Get returns the team with the given id.
func (d *Directory) Get(id string) (Team, bool) {
	if d == nil {
		return Team{}, false
	}
	t, ok := d.byID[ID(id)]
	return t, ok
}

// Logo returns the logo URL for id, or "" when unknown.
func (d *Directory) Logo(id string) string {
	t, _ := d.Get(id)
	return t.Logo
}

// Len returns the number of teams.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.byID)
}

// All returns every team ordered by name.
func (d *Directory) All() []Team {
	if d == nil {
		return nil
	}
	out := make([]Team, 0, len(d.byID))
	for _, t := range d.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Static is a Loader that always returns the same directory.
type Static struct {
	Teams []Team
}

// Load returns a directory of s.Teams.
func (s Static) Load(context.Context) (*Directory, error) {
	return NewDirectory(s.Teams), nil
}
