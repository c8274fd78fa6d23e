package press

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-press/internal/content"
	toml "github.com/pelletier/go-toml/v2"
)

// Config is the root configuration for a site build.
type Config struct {
	Site     SiteConfig     `toml:"site"`
	Content  ContentConfig  `toml:"content"`
	Output   OutputConfig   `toml:"output"`
	Markdown MarkdownConfig `toml:"markdown"`
	Theme    ThemeConfig    `toml:"theme"`
	Logging  LoggingConfig  `toml:"logging"`
	Workers  int            `toml:"workers"`
}

// SiteConfig describes the published site.
type SiteConfig struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	BaseURL     string `toml:"base_url"`
	Author      string `toml:"author"`
}

// ContentConfig locates and filters source documents.
type ContentConfig struct {
	Dir           string `toml:"dir"`
	Pattern       string `toml:"pattern"`
	Recursive     bool   `toml:"recursive"`
	SlugSource    string `toml:"slug_source"`
	IncludeDrafts bool   `toml:"include_drafts"`
}

// OutputConfig controls the published artifact set.
type OutputConfig struct {
	Dir     string `toml:"dir"`
	Sitemap bool   `toml:"sitemap"`
	Robots  bool   `toml:"robots"`
	Feeds   bool   `toml:"feeds"`
}

// MarkdownConfig tunes the Markdown converter.
type MarkdownConfig struct {
	Extensions []string `toml:"extensions"`
	HardWraps  bool     `toml:"hard_wraps"`
	SafeMode   bool     `toml:"safe_mode"`
}

// ThemeConfig wires optional go-theme support and template overrides.
type ThemeConfig struct {
	Dir               string            `toml:"dir"`
	Variant           string            `toml:"variant"`
	CSSVariablePrefix string            `toml:"css_variable_prefix"`
	Partials          map[string]string `toml:"partials"`
	TemplateDir       string            `toml:"template_dir"`
}

// LoggingConfig captures go-logger options.
type LoggingConfig struct {
	Level     string `toml:"level"`
	Format    string `toml:"format"`
	AddSource bool   `toml:"add_source"`
}

// DefaultConfig returns opinionated defaults for a local blog build.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Title:   "My Blog",
			BaseURL: "http://localhost",
		},
		Content: ContentConfig{
			Dir:        "content",
			Pattern:    "*.md",
			Recursive:  true,
			SlugSource: string(content.SlugSourceIdentifier),
		},
		Output: OutputConfig{
			Dir:     "public",
			Sitemap: true,
			Robots:  true,
			Feeds:   true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Workers: runtime.NumCPU(),
	}
}

// WithDefaults fills in zero values from DefaultConfig.
func (c Config) WithDefaults() Config {
	defaults := DefaultConfig()
	if strings.TrimSpace(c.Site.Title) == "" {
		c.Site.Title = defaults.Site.Title
	}
	if strings.TrimSpace(c.Site.BaseURL) == "" {
		c.Site.BaseURL = defaults.Site.BaseURL
	}
	if strings.TrimSpace(c.Content.Dir) == "" {
		c.Content.Dir = defaults.Content.Dir
	}
	if strings.TrimSpace(c.Content.Pattern) == "" {
		c.Content.Pattern = defaults.Content.Pattern
	}
	if strings.TrimSpace(c.Content.SlugSource) == "" {
		c.Content.SlugSource = defaults.Content.SlugSource
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		c.Output.Dir = defaults.Output.Dir
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaults.Logging.Format
	}
	if c.Workers <= 0 {
		c.Workers = defaults.Workers
	}
	return c
}

// Validate checks cross-field constraints before any build work starts.
func (c Config) Validate() error {
	if _, err := content.ParseSlugSource(c.Content.SlugSource); err != nil {
		return err
	}
	return validation.ValidateStruct(&c,
		validation.Field(&c.Content, validation.By(func(any) error {
			if strings.TrimSpace(c.Content.Dir) == "" {
				return validation.NewError("press.config.content_dir", "content dir is required")
			}
			return nil
		})),
		validation.Field(&c.Output, validation.By(func(any) error {
			if strings.TrimSpace(c.Output.Dir) == "" {
				return validation.NewError("press.config.output_dir", "output dir is required")
			}
			return nil
		})),
	)
}

// LoadConfig reads a TOML config file and overlays it on the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("press: read config %s: %w", path, err)
	}

	cfg := Config{}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("press: parse config %s: %w", path, err)
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
