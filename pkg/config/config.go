// Package config loads ArchScope's analysis configuration.
//
// Configuration lives in an optional .archscope.toml at the scan root
// (or a path given with --config). Every field has a sensible default;
// a missing file is not an error. The thresholds here are deliberately
// configuration rather than constants: the clustering and scoring
// heuristics are shape-stable but their exact numbers are empirical.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	archerrors "github.com/archscope/archscope/pkg/errors"
)

// DefaultFileName is the config file looked up at the scan root.
const DefaultFileName = ".archscope.toml"

// Config is the full analysis configuration.
type Config struct {
	Scan       ScanConfig       `toml:"scan"`
	Coupling   CouplingConfig   `toml:"coupling"`
	Cohesion   CohesionConfig   `toml:"cohesion"`
	Boundaries BoundariesConfig `toml:"boundaries"`
}

// ScanConfig controls file enumeration and import resolution.
type ScanConfig struct {
	// Extensions are the source extensions to scan and resolve.
	Extensions []string `toml:"extensions"`
	// IgnoreDirs supplements the built-in ignored directory names.
	IgnoreDirs []string `toml:"ignore_dirs"`
	// IgnorePatterns are extra gitignore-style patterns.
	IgnorePatterns []string `toml:"ignore_patterns"`
}

// CouplingConfig tunes the coupling-derived file lists.
type CouplingConfig struct {
	HubThreshold     int `toml:"hub_threshold"`
	CoupledThreshold int `toml:"coupled_threshold"`
}

// CohesionConfig tunes module grouping.
type CohesionConfig struct {
	ModuleDepth  int     `toml:"module_depth"`
	LowThreshold float64 `toml:"low_threshold"`
}

// BoundariesConfig tunes service clustering.
type BoundariesConfig struct {
	MergeRatio     float64 `toml:"merge_ratio"`
	KeepCohesion   float64 `toml:"keep_cohesion"`
	MaxShare       float64 `toml:"max_share"`
	MinFiles       int     `toml:"min_files"`
	CohesionWeight float64 `toml:"cohesion_weight"`
	CouplingWeight float64 `toml:"coupling_weight"`
}

// Default returns the built-in configuration.
// Zero-valued thresholds defer to each analysis package's defaults, so
// this only pins the values config consumers need directly.
func Default() Config {
	return Config{
		Scan: ScanConfig{
			Extensions: []string{".js", ".ts", ".jsx", ".tsx", ".mjs", ".cjs"},
		},
		Cohesion: CohesionConfig{ModuleDepth: 1},
	}
}

// Load reads the config file at path. A missing file returns Default()
// without error; a malformed file is an INVALID_CONFIG error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, archerrors.Wrap(archerrors.ErrCodeInvalidConfig, err, "read config %q", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, archerrors.Wrap(archerrors.ErrCodeInvalidConfig, err, "parse config %q", path)
	}
	if len(cfg.Scan.Extensions) == 0 {
		cfg.Scan.Extensions = Default().Scan.Extensions
	}
	return cfg, nil
}

// LoadFromRoot looks for DefaultFileName at the scan root.
func LoadFromRoot(root string) (Config, error) {
	return Load(filepath.Join(root, DefaultFileName))
}
