// Package file loads the team directory from a YAML or JSON file.
package file

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/papercomputeco/beatpath/pkg/teams"
)

// Loader reads a list of teams from Path. YAML is a superset of JSON, so
// both formats decode through yaml.v3.
type Loader struct {
	Path string
}

// NewLoader creates a file loader.
func NewLoader(path string) *Loader {
	return &Loader{Path: path}
}

// Load reads and decodes the file.
func (l *Loader) Load(_ context.Context) (*teams.Directory, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("reading teams file: %w", err)
	}

	var list []teams.Team
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing teams file %s: %w", l.Path, err)
	}

	return teams.NewDirectory(list), nil
}
