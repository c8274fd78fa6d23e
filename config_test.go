package press

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Content.Dir != "content" {
		t.Fatalf("unexpected content dir %q", cfg.Content.Dir)
	}
	if cfg.Output.Dir != "public" {
		t.Fatalf("unexpected output dir %q", cfg.Output.Dir)
	}
	if !cfg.Output.Sitemap || !cfg.Output.Robots || !cfg.Output.Feeds {
		t.Fatal("expected sitemap, robots and feeds enabled by default")
	}
	if cfg.Workers < 1 {
		t.Fatalf("expected at least one worker, got %d", cfg.Workers)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestConfigWithDefaultsPreservesExplicitValues(t *testing.T) {
	cfg := Config{
		Site:    SiteConfig{Title: "Custom", BaseURL: "https://blog.example.com"},
		Content: ContentConfig{Dir: "posts", SlugSource: "title"},
		Workers: 3,
	}.WithDefaults()

	if cfg.Site.Title != "Custom" {
		t.Fatalf("expected explicit title preserved, got %q", cfg.Site.Title)
	}
	if cfg.Content.Dir != "posts" {
		t.Fatalf("expected explicit content dir preserved, got %q", cfg.Content.Dir)
	}
	if cfg.Content.SlugSource != "title" {
		t.Fatalf("expected explicit slug source preserved, got %q", cfg.Content.SlugSource)
	}
	if cfg.Content.Pattern != "*.md" {
		t.Fatalf("expected defaulted pattern, got %q", cfg.Content.Pattern)
	}
	if cfg.Workers != 3 {
		t.Fatalf("expected explicit worker count preserved, got %d", cfg.Workers)
	}
}

func TestConfigValidateRejectsUnknownSlugSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Content.SlugSource = "checksum"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown slug source")
	}
}

func TestLoadConfigFromTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "press.toml")
	body := strings.Join([]string{
		`workers = 2`,
		``,
		`[site]`,
		`title = "Field Notes"`,
		`base_url = "https://notes.example.com"`,
		`author = "edith"`,
		``,
		`[content]`,
		`dir = "notes"`,
		`slug_source = "title"`,
		``,
		`[output]`,
		`dir = "dist"`,
		`feeds = true`,
		``,
		`[logging]`,
		`level = "debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Site.Title != "Field Notes" {
		t.Fatalf("unexpected title %q", cfg.Site.Title)
	}
	if cfg.Content.Dir != "notes" {
		t.Fatalf("unexpected content dir %q", cfg.Content.Dir)
	}
	if cfg.Content.SlugSource != "title" {
		t.Fatalf("unexpected slug source %q", cfg.Content.SlugSource)
	}
	if cfg.Output.Dir != "dist" {
		t.Fatalf("unexpected output dir %q", cfg.Output.Dir)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected log level %q", cfg.Logging.Level)
	}
	// Defaults fill the gaps the file leaves open.
	if cfg.Content.Pattern != "*.md" {
		t.Fatalf("expected defaulted pattern, got %q", cfg.Content.Pattern)
	}
	if cfg.Workers != 2 {
		t.Fatalf("unexpected workers %d", cfg.Workers)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(path, []byte("site = [broken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}
