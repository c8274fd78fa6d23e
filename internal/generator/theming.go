package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"
)

// ThemingConfig controls optional go-theme support. When no theme directory
// is configured pages render with the built in templates and an empty theme
// context.
type ThemingConfig struct {
	// Dir is the theme root containing a theme.json manifest.
	Dir string
	// Variant selects a manifest variant (e.g. "dark").
	Variant string
	// CSSVariablePrefix namespaces emitted CSS custom properties.
	CSSVariablePrefix string
	// PartialFallbacks maps partial names to template fallbacks used when
	// the manifest provides no entry.
	PartialFallbacks map[string]string
}

func (c ThemingConfig) enabled() bool {
	return strings.TrimSpace(c.Dir) != ""
}

type themeManifestLoader interface {
	Load(themePath string) (*gotheme.Manifest, error)
}

type fsThemeManifestLoader struct{}

func (fsThemeManifestLoader) Load(themePath string) (*gotheme.Manifest, error) {
	cleaned := filepath.Clean(strings.TrimSpace(themePath))
	if cleaned == "" {
		return nil, fmt.Errorf("theme path required")
	}

	return gotheme.LoadDir(os.DirFS(cleaned), ".")
}

type themeSelector struct {
	cfg      ThemingConfig
	registry *gotheme.MemoryRegistry
	loader   themeManifestLoader

	mu       sync.Mutex
	manifest *gotheme.Manifest
}

func newThemeSelector(cfg ThemingConfig, loader themeManifestLoader) *themeSelector {
	if loader == nil {
		loader = fsThemeManifestLoader{}
	}
	return &themeSelector{
		cfg:      cfg,
		registry: gotheme.NewRegistry(),
		loader:   loader,
	}
}

// Selection loads and registers the configured theme manifest once, then
// resolves the theme and variant. A disabled theming config returns nil
// without error.
func (s *themeSelector) Selection() (*gotheme.Selection, error) {
	if !s.cfg.enabled() {
		return nil, nil
	}

	manifest, err := s.ensureManifest()
	if err != nil {
		return nil, err
	}

	selector := gotheme.Selector{
		Registry:       s.registry,
		DefaultTheme:   manifest.Name,
		DefaultVariant: strings.TrimSpace(s.cfg.Variant),
	}

	selection, err := selector.Select(manifest.Name, strings.TrimSpace(s.cfg.Variant))
	if err != nil {
		return nil, fmt.Errorf("select theme %s: %w", manifest.Name, err)
	}
	return selection, nil
}

func (s *themeSelector) ensureManifest() (*gotheme.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.manifest != nil {
		return s.manifest, nil
	}

	manifest, err := s.loader.Load(s.cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("load theme manifest from %s: %w", s.cfg.Dir, err)
	}
	if strings.TrimSpace(manifest.Name) == "" {
		return nil, fmt.Errorf("theme name required for manifest registration")
	}

	if err := s.registry.Register(manifest); err != nil {
		return nil, fmt.Errorf("register theme manifest: %w", err)
	}
	s.manifest = manifest
	return manifest, nil
}

// collectThemeAssets lists every manifest asset file, variant entries winning
// over base entries, deduplicated and normalized to forward slashes.
func collectThemeAssets(selection *gotheme.Selection) []string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}

	assets := selection.Manifest.Assets.Files
	if variant := strings.TrimSpace(selection.Variant); variant != "" {
		if v, ok := selection.Manifest.Variants[variant]; ok && len(v.Assets.Files) > 0 {
			merged := make(map[string]string, len(selection.Manifest.Assets.Files)+len(v.Assets.Files))
			for key, path := range selection.Manifest.Assets.Files {
				merged[key] = path
			}
			for key, path := range v.Assets.Files {
				merged[key] = path
			}
			assets = merged
		}
	}

	seen := map[string]struct{}{}
	var out []string
	for _, asset := range assets {
		asset = strings.TrimPrefix(strings.TrimSpace(asset), "/")
		if asset == "" {
			continue
		}
		if _, ok := seen[asset]; ok {
			continue
		}
		seen[asset] = struct{}{}
		out = append(out, filepath.ToSlash(asset))
	}
	return out
}

func detectAssetContentType(asset string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(asset), "."))
	switch ext {
	case "css":
		return "text/css"
	case "js":
		return "application/javascript"
	case "json":
		return "application/json"
	case "svg":
		return "image/svg+xml"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "ico":
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}
