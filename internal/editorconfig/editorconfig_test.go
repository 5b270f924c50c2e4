package editorconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("missing file config = %+v, want defaults", cfg)
	}
}

func TestLoadInvalidFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.yaml")
	if err := os.WriteFile(path, []byte("snap_radius: [oops"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("invalid file config = %+v, want defaults", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "editor.yaml")
	want := Config{
		SnapRadius:         0.5,
		FlushTolerance:     0.05,
		PerpTolerance:      0.2,
		InterpolationSteps: 20,
		CatalogDir:         "custom/catalog",
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got != want {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoadClampsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "editor.yaml")
	if err := os.WriteFile(path, []byte("snap_radius: -1\ninterpolation_steps: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.SnapRadius != Default().SnapRadius {
		t.Fatalf("snap radius = %f, want default", cfg.SnapRadius)
	}
	if cfg.InterpolationSteps != Default().InterpolationSteps {
		t.Fatalf("steps = %d, want default", cfg.InterpolationSteps)
	}
}
