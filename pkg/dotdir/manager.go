// Package dotdir resolves the .beatpath/ directory that holds config.toml.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirName is the name of the beatpath directory.
const DirName = ".beatpath"

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the target absolute path to a .beatpath/ directory.
// Order of precedence is as follows:
//  1. Provided override, created if missing
//  2. Local ./.beatpath/ dir
//  3. Home ~/.beatpath/ dir
//
// An empty path with a nil error means no directory was found.
func (m *Manager) Target(overrideDir string) (string, error) {
	if overrideDir != "" {
		if err := os.MkdirAll(overrideDir, 0o755); err != nil {
			return "", fmt.Errorf("creating beatpath directory %s: %w", overrideDir, err)
		}
		return filepath.Abs(overrideDir)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	if local := filepath.Join(cwd, DirName); isDir(local) {
		return local, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}
	if dir := filepath.Join(home, DirName); isDir(dir) {
		return dir, nil
	}

	return "", nil
}

// Init creates a local .beatpath/ directory under parent. created is false
// when it already existed.
func (m *Manager) Init(parent string) (dir string, created bool, err error) {
	dir = filepath.Join(parent, DirName)
	if isDir(dir) {
		return dir, false, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("creating %s directory: %w", DirName, err)
	}
	return dir, true, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
