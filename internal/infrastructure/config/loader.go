package config

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Arena *ArenaConfig
	Units *UnitsConfig
}

// Loader loads game configuration from YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadArena loads arena.yaml
func (l *Loader) LoadArena() (*ArenaConfig, error) {
	var cfg ArenaConfig
	if err := l.decode("arena.yaml", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("arena.yaml: %w", err)
	}
	return &cfg, nil
}

// LoadUnits loads units.yaml
func (l *Loader) LoadUnits() (*UnitsConfig, error) {
	var cfg UnitsConfig
	if err := l.decode("units.yaml", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("units.yaml: %w", err)
	}
	return &cfg, nil
}

// LoadAll loads arena and unit configurations and checks that every
// spawn names a known unit type.
func (l *Loader) LoadAll() (*GameConfig, error) {
	arena, err := l.LoadArena()
	if err != nil {
		return nil, err
	}

	units, err := l.LoadUnits()
	if err != nil {
		return nil, err
	}

	for _, s := range arena.Layout.Units {
		if _, ok := units.Units[s.Unit]; !ok {
			return nil, fmt.Errorf("spawn of unknown unit %q: %w", s.Unit, ErrInvalidConfig)
		}
	}

	return &GameConfig{
		Arena: arena,
		Units: units,
	}, nil
}

func (l *Loader) decode(name string, out any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
