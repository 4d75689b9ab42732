package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPresets(t *testing.T) {
	cfg := Default()

	exts := cfg.ExtensionsFor("Django")
	if len(exts) != 4 {
		t.Fatalf("expected 4 Django extensions, got %d: %v", len(exts), exts)
	}

	if got := cfg.ExtensionsFor("no such preset"); len(got) == 0 {
		t.Error("unknown preset should fall back to the None preset")
	}

	if cfg.TemplateFor("Refactoring") == "" {
		t.Error("expected a built-in Refactoring template")
	}
	if cfg.TemplateFor("bogus") != "" {
		t.Error("unknown template keys should map to empty text")
	}
}

func TestExclusionsForMergesBaseAndPreset(t *testing.T) {
	cfg := Default()
	excl := cfg.ExclusionsFor("Django")

	set := make(map[string]bool, len(excl))
	for _, e := range excl {
		set[e] = true
	}

	for _, want := range []string{".git", "node_modules", "venv", "migrations"} {
		if !set[want] {
			t.Errorf("expected exclusion %q in %v", want, excl)
		}
	}

	// Presets without extra exclusions get just the base set.
	if got := cfg.ExclusionsFor("Academic Code"); len(got) != len(cfg.BaseExclusions) {
		t.Errorf("expected only base exclusions, got %v", got)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
extension_presets:
  Rust: [".rs", ".toml"]
prompt_library:
  Refactoring: "Custom refactoring instructions."
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got := cfg.ExtensionsFor("Rust"); len(got) != 2 || got[0] != ".rs" {
		t.Errorf("expected user preset to be added, got %v", got)
	}
	if got := cfg.TemplateFor("Refactoring"); got != "Custom refactoring instructions." {
		t.Errorf("expected user template to override built-in, got %q", got)
	}
	// Untouched built-ins survive the merge.
	if got := cfg.TemplateFor("Security Audit"); got == "" {
		t.Error("built-in templates should survive a partial user config")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not be an error: %v", err)
	}
	if len(cfg.ExtensionPresets) == 0 {
		t.Error("expected built-in presets")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("extension_presets: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := load(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}
