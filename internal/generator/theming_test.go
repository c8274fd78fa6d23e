package generator

import (
	"testing"

	gotheme "github.com/goliatone/go-theme"
)

type stubManifestLoader struct {
	manifest *gotheme.Manifest
	err      error
}

func (l stubManifestLoader) Load(string) (*gotheme.Manifest, error) {
	return l.manifest, l.err
}

func testThemeManifest() *gotheme.Manifest {
	return &gotheme.Manifest{
		Name:    "plain",
		Version: "1.0.0",
		Tokens:  map[string]string{"color-bg": "#fff"},
		Templates: map[string]string{
			"header": "partials/header.html",
		},
		Assets: gotheme.Assets{
			Files: map[string]string{"main": "css/main.css"},
		},
		Variants: map[string]gotheme.Variant{
			"dark": {
				Tokens: map[string]string{"color-bg": "#000"},
				Assets: gotheme.Assets{
					Files: map[string]string{"main": "css/dark.css"},
				},
			},
		},
	}
}

func TestThemeContextResolvesPartialFallbacks(t *testing.T) {
	cfg := ThemingConfig{
		Dir: "theme",
		PartialFallbacks: map[string]string{
			"header": "builtin/header.html",
			"footer": "builtin/footer.html",
		},
	}
	selector := newThemeSelector(cfg, stubManifestLoader{manifest: testThemeManifest()})

	selection, err := selector.Selection()
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	if selection == nil {
		t.Fatal("expected a selection for an enabled theme config")
	}

	themeCtx := buildThemeContext(selection, cfg)
	if themeCtx.Name != "plain" {
		t.Fatalf("expected theme name %q, got %q", "plain", themeCtx.Name)
	}
	if got := themeCtx.Partials["header"]; got != "partials/header.html" {
		t.Fatalf("expected manifest partial to win, got %q", got)
	}
	if got := themeCtx.Partials["footer"]; got != "builtin/footer.html" {
		t.Fatalf("expected fallback partial for missing key, got %q", got)
	}
}

func TestThemeSelectorDisabledReturnsNil(t *testing.T) {
	selector := newThemeSelector(ThemingConfig{}, stubManifestLoader{manifest: testThemeManifest()})

	selection, err := selector.Selection()
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	if selection != nil {
		t.Fatalf("expected nil selection without a theme dir, got %+v", selection)
	}

	themeCtx := buildThemeContext(selection, ThemingConfig{})
	if len(themeCtx.Partials) != 0 {
		t.Fatalf("expected empty partials, got %v", themeCtx.Partials)
	}
	if themeCtx.Template("header", "builtin/header.html") != "builtin/header.html" {
		t.Fatal("expected template helper to pass the fallback through")
	}
}

func TestCollectThemeAssetsVariantOverrides(t *testing.T) {
	cfg := ThemingConfig{Dir: "theme", Variant: "dark"}
	selector := newThemeSelector(cfg, stubManifestLoader{manifest: testThemeManifest()})

	selection, err := selector.Selection()
	if err != nil {
		t.Fatalf("selection: %v", err)
	}

	assets := collectThemeAssets(selection)
	if len(assets) != 1 {
		t.Fatalf("expected 1 asset, got %v", assets)
	}
	if assets[0] != "css/dark.css" {
		t.Fatalf("expected variant asset to win, got %q", assets[0])
	}
}
