// Package manifest handles sol.toml runtime configuration.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chazu/sol/vm"
)

// FileName is the configuration file FindAndLoad looks for.
const FileName = "sol.toml"

// Manifest represents a sol.toml configuration.
type Manifest struct {
	Runtime Runtime     `toml:"runtime"`
	Log     LogConfig   `toml:"log"`
	Cache   CacheConfig `toml:"cache"`

	// Dir is the directory containing the sol.toml file (set at load time).
	Dir string `toml:"-"`
}

// Runtime selects interpreter policies.
type Runtime struct {
	Closures string `toml:"closures"`
	Setters  string `toml:"setters"`
	MaxDepth int    `toml:"max-depth"`
}

// LogConfig configures commonlog output.
type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// CacheConfig configures the parsed-program cache.
type CacheConfig struct {
	Dir string `toml:"dir"`
}

// Default returns the configuration used when no sol.toml exists.
func Default() *Manifest {
	m := &Manifest{}
	m.applyDefaults()
	return m
}

func (m *Manifest) applyDefaults() {
	if m.Runtime.Closures == "" {
		m.Runtime.Closures = string(vm.ClosuresDynamic)
	}
	if m.Runtime.Setters == "" {
		m.Runtime.Setters = string(vm.SettersFallback)
	}
}

// Load parses a sol.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile parses the configuration file at path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return &m, nil
}

// FindAndLoad walks up from startDir to find a sol.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// Validate checks the policy names and limits.
func (m *Manifest) Validate() error {
	var errs []error
	switch vm.ClosurePolicy(m.Runtime.Closures) {
	case vm.ClosuresDynamic, vm.ClosuresLexical:
	default:
		errs = append(errs, fmt.Errorf("runtime.closures: unknown policy %q", m.Runtime.Closures))
	}
	switch vm.SetterPolicy(m.Runtime.Setters) {
	case vm.SettersFallback, vm.SettersEager:
	default:
		errs = append(errs, fmt.Errorf("runtime.setters: unknown policy %q", m.Runtime.Setters))
	}
	if m.Runtime.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("runtime.max-depth: must not be negative, got %d", m.Runtime.MaxDepth))
	}
	if m.Log.Verbosity < 0 {
		errs = append(errs, fmt.Errorf("log.verbosity: must not be negative, got %d", m.Log.Verbosity))
	}
	return errors.Join(errs...)
}

// Options returns the VM options this configuration selects.
func (m *Manifest) Options() vm.Options {
	return vm.Options{
		Closures: vm.ClosurePolicy(m.Runtime.Closures),
		Setters:  vm.SetterPolicy(m.Runtime.Setters),
		MaxDepth: m.Runtime.MaxDepth,
	}
}

// CacheDir returns the absolute cache directory, or "" when caching is
// off. Relative paths are taken from the manifest's directory.
func (m *Manifest) CacheDir() string {
	return m.resolve(m.Cache.Dir)
}

// LogFile returns the absolute log file path, or "" for stderr.
func (m *Manifest) LogFile() string {
	return m.resolve(m.Log.File)
}

func (m *Manifest) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || m.Dir == "" {
		return p
	}
	return filepath.Join(m.Dir, p)
}
