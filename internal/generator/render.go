package generator

import (
	"html/template"
	"strings"
	"time"

	gotheme "github.com/goliatone/go-theme"
)

// RenderTarget identifies the kind of page a render request produces.
type RenderTarget string

const (
	TargetPostPage      RenderTarget = "post"
	TargetDateIndexPage RenderTarget = "date_index"
	TargetTagIndexPage  RenderTarget = "tag_index"
)

// TemplateContext captures the data contract passed to TemplateRenderer
// implementations.
type TemplateContext struct {
	Site    SiteMetadata
	Post    *PostView
	Index   *IndexView
	Theme   ThemeContext
	Helpers TemplateHelpers
}

// SiteMetadata exposes site wide information required by templates.
type SiteMetadata struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
	GeneratedAt time.Time
}

// PostView is the template facing projection of a single post.
type PostView struct {
	Identifier   string
	Title        string
	Slug         string
	Route        string
	Permalink    string
	Date         time.Time
	LastModified time.Time
	Author       string
	Tags         []TagRef
	Description  string
	HTML         template.HTML
}

// IndexView backs the reverse chronological and per tag listing pages.
type IndexView struct {
	Title string
	Tag   string
	Posts []PostView
	Tags  []TagSummary
}

// TagRef links a tag shown on a post page to its listing route. The route
// always folds through the tag slug so it matches where the listing page is
// actually written.
type TagRef struct {
	Name  string
	Route string
}

// TagSummary is a single row on the tag overview listing.
type TagSummary struct {
	Tag   string
	Route string
	Count int
}

// ThemeContext surfaces go-theme selection data to templates.
type ThemeContext struct {
	Name      string
	Variant   string
	Tokens    map[string]string
	CSSVars   map[string]string
	Partials  map[string]string
	AssetURL  func(string) string
	Template  func(string, string) string
	Selection *gotheme.Selection
}

// TemplateHelpers exposes convenience helpers for template authors.
type TemplateHelpers struct {
	baseURL string
}

func newTemplateHelpers(baseURL string) TemplateHelpers {
	return TemplateHelpers{baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

// BaseURL returns the configured site base URL.
func (h TemplateHelpers) BaseURL() string {
	return h.baseURL
}

// WithBaseURL prefixes the provided path with the configured base URL.
func (h TemplateHelpers) WithBaseURL(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return h.baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if h.baseURL == "" {
		return path
	}
	return h.baseURL + path
}

func buildThemeContext(selection *gotheme.Selection, cfg ThemingConfig) ThemeContext {
	empty := ThemeContext{
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
		Partials: map[string]string{},
		AssetURL: func(string) string { return "" },
		Template: func(_ string, fallback string) string { return fallback },
	}
	if selection == nil {
		return empty
	}

	return ThemeContext{
		Name:      selection.Theme,
		Variant:   selection.Variant,
		Tokens:    selection.Tokens(),
		CSSVars:   selection.CSSVariables(cfg.CSSVariablePrefix),
		Partials:  selection.Partials(cfg.PartialFallbacks),
		AssetURL:  func(key string) string { url, _ := selection.Asset(key); return url },
		Template:  selection.Template,
		Selection: selection,
	}
}

// RenderedPage captures the rendered HTML output for a single page.
type RenderedPage struct {
	Identifier   string
	Target       RenderTarget
	Route        string
	Output       string
	Template     string
	HTML         string
	Checksum     string
	Date         time.Time
	LastModified time.Time
	Duration     time.Duration
}

// RenderDiagnostic records rendering timing and errors for individual pages.
type RenderDiagnostic struct {
	Identifier string
	Target     RenderTarget
	Route      string
	Template   string
	Duration   time.Duration
	Err        error
}

type renderOutcome struct {
	page       RenderedPage
	diagnostic RenderDiagnostic
	err        error
}
