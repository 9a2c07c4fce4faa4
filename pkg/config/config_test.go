package config

import (
	"os"
	"path/filepath"
	"testing"

	"rubyfactor/pkg/types"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.AddParens {
		t.Error("Expected AddParens to default to true")
	}
	if cfg.PlacementMode != types.PlacementTop {
		t.Errorf("Expected default placement mode top, got %v", cfg.PlacementMode)
	}
	if !cfg.AnchorPattern.MatchString("  describe Widget do") {
		t.Error("Expected anchor pattern to match indented describe line")
	}
	if !cfg.AnchorPattern.MatchString("context 'empty' do") {
		t.Error("Expected anchor pattern to match context line")
	}
	if cfg.AnchorPattern.MatchString("  it 'works' do") {
		t.Error("Expected anchor pattern not to match it-block line")
	}
	if got := cfg.TrimPattern.String(); got != defaultTrimPattern {
		t.Errorf("Expected default trim pattern %q, got %q", defaultTrimPattern, got)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rubyfactor.toml")
	content := `
add_parens = false
placement_mode = "closest"
anchor_pattern = '^\s*feature\b'
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AddParens {
		t.Error("Expected AddParens false from file")
	}
	if cfg.PlacementMode != types.PlacementClosest {
		t.Errorf("Expected closest placement, got %v", cfg.PlacementMode)
	}
	if !cfg.AnchorPattern.MatchString("feature 'login' do") {
		t.Error("Expected custom anchor pattern to apply")
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("Expected error for missing explicit config file")
	}
}

func TestLoad_MissingDefaultFileIsFine(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load without config file failed: %v", err)
	}
	if cfg.PlacementMode != types.PlacementTop {
		t.Errorf("Expected defaults, got placement %v", cfg.PlacementMode)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	t.Setenv("RUBYFACTOR_PLACEMENT_MODE", "closest")
	t.Setenv("RUBYFACTOR_ADD_PARENS", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PlacementMode != types.PlacementClosest {
		t.Errorf("Expected env placement override, got %v", cfg.PlacementMode)
	}
	if cfg.AddParens {
		t.Error("Expected env AddParens override")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad placement mode", `placement_mode = "middle"`},
		{"bad anchor pattern", `anchor_pattern = '['`},
		{"bad trim pattern", `trim_pattern = '('`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Expected error for invalid config")
			}
		})
	}
}
