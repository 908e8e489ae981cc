package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vovakirdan/kiwi/internal/grid"
	"gopkg.in/yaml.v3"
)

// DefaultList is the level list path relative to the game root.
const DefaultList = "levels/list.yaml"

// ErrRootNotFound is returned when no directory containing the level list
// could be found.
var ErrRootNotFound = errors.New("level root not found")

// Load reads a level file. Errors carry the path; nothing is returned on
// failure.
func Load(path string) (*grid.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", path, err)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", path, err)
	}
	return g, nil
}

// Save writes g to path as level YAML, creating parent directories.
func Save(path string, g *grid.Grid) error {
	data, err := Marshal(g)
	if err != nil {
		return fmt.Errorf("save level %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save level %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save level %s: %w", path, err)
	}
	return nil
}

// List is the ordered set of level files making up the game.
type List struct {
	Files []string `yaml:"files"`
}

// LoadList reads the list file name (relative to root unless absolute) and
// returns the level paths resolved against root.
func LoadList(root, name string) ([]string, error) {
	if name == "" {
		name = DefaultList
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load level list %s: %w", path, err)
	}
	var list List
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("load level list %s: %w", path, err)
	}
	if len(list.Files) == 0 {
		return nil, fmt.Errorf("load level list %s: no files", path)
	}

	paths := make([]string, 0, len(list.Files))
	for _, f := range list.Files {
		p := f
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, f)
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// DiscoverRoot finds the game root for the default list file.
func DiscoverRoot(start string) (string, error) {
	return FindRoot(start, DefaultList)
}

// FindRoot walks up from start looking for a directory containing name.
// If that fails the directory of the running executable is searched the same
// way.
func FindRoot(start, name string) (string, error) {
	if name == "" {
		name = DefaultList
	}
	if start != "" {
		if root, ok := walkUp(start, name); ok {
			return root, nil
		}
	}
	if exe, err := os.Executable(); err == nil {
		if root, ok := walkUp(filepath.Dir(exe), name); ok {
			return root, nil
		}
	}
	return "", fmt.Errorf("%w: no %s above %s", ErrRootNotFound, name, start)
}

func walkUp(start, name string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	for {
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil && !info.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
