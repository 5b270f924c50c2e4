package editorconfig

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the path to the editor config file, relative to the
// process working directory.
const ConfigPath = "config/editor.yaml"

// Config holds the placement tunables. Persisted across runs; in-scene
// data is separate and owned by the store.
type Config struct {
	// SnapRadius caps how far connection-point snapping may pull an
	// object from the gesture's desired position, in world units.
	SnapRadius float32 `yaml:"snap_radius"`
	// FlushTolerance and PerpTolerance classify normal pairs by dot
	// product: flush near -1, perpendicular near 0.
	FlushTolerance float32 `yaml:"flush_tolerance"`
	PerpTolerance  float32 `yaml:"perp_tolerance"`
	// InterpolationSteps is the sample count for the wall-stop search
	// when a drag runs into a wall.
	InterpolationSteps int `yaml:"interpolation_steps"`
	// CatalogDir holds extra object definitions layered over the
	// built-in catalog.
	CatalogDir string `yaml:"catalog_dir,omitempty"`
}

// Default returns the stock tunables.
func Default() Config {
	return Config{
		SnapRadius:         0.3,
		FlushTolerance:     0.1,
		PerpTolerance:      0.1,
		InterpolationSteps: 10,
		CatalogDir:         "assets/catalog",
	}
}

// Load reads the config from ConfigPath. If the file is missing or
// invalid, returns Default() and does not create a file.
func Load() (Config, error) {
	return LoadFrom(ConfigPath)
}

// LoadFrom reads the config from an explicit path with the same fallback
// behavior as Load.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), nil
	}
	if cfg.SnapRadius <= 0 {
		cfg.SnapRadius = Default().SnapRadius
	}
	// Below 2 the wall-stop search has no interior samples to try.
	if cfg.InterpolationSteps < 2 {
		cfg.InterpolationSteps = Default().InterpolationSteps
	}
	return cfg, nil
}

// Save writes the config to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
