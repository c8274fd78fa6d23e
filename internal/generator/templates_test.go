package generator

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGoTemplateRendererBuiltins(t *testing.T) {
	renderer, err := NewGoTemplateRenderer("")
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	ctx := TemplateContext{
		Site: SiteMetadata{Title: "Example Blog", BaseURL: "https://example.com"},
		Post: &PostView{
			Title:  "Hello",
			Route:  "/hello/",
			Date:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Author: "edith",
			Tags:   []TagRef{{Name: "intro", Route: "/tags/intro/"}},
			HTML:   template.HTML("<p>body</p>"),
		},
		Theme:   buildThemeContext(nil, ThemingConfig{}),
		Helpers: newTemplateHelpers("https://example.com"),
	}

	out, err := renderer.Render(postTemplateName, ctx)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<h1>Hello</h1>") {
		t.Fatalf("expected title heading, got:\n%s", out)
	}
	if !strings.Contains(out, "<p>body</p>") {
		t.Fatalf("expected raw post HTML passthrough, got:\n%s", out)
	}
	if !strings.Contains(out, `href="https://example.com/tags/intro/"`) {
		t.Fatalf("expected tag link with base URL, got:\n%s", out)
	}
}

func TestGoTemplateRendererUnknownTemplate(t *testing.T) {
	renderer, err := NewGoTemplateRenderer("")
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := renderer.Render("missing", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestGoTemplateRendererOverridesFromDirectory(t *testing.T) {
	dir := t.TempDir()
	override := `custom: {{ .Post.Title }}`
	if err := os.WriteFile(filepath.Join(dir, "post.html"), []byte(override), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	renderer, err := NewGoTemplateRenderer(dir)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(postTemplateName, TemplateContext{Post: &PostView{Title: "Hi"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "custom: Hi" {
		t.Fatalf("expected override template output, got %q", out)
	}
}

func TestGoTemplateRendererWritesToSink(t *testing.T) {
	renderer, err := NewGoTemplateRenderer("")
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	var sink bytes.Buffer
	if _, err := renderer.RenderString("value: {{ . }}", 42, &sink); err != nil {
		t.Fatalf("render string: %v", err)
	}
	if sink.String() != "value: 42" {
		t.Fatalf("expected streamed output, got %q", sink.String())
	}
}

func TestGoTemplateRendererRejectsMissingDirectory(t *testing.T) {
	if _, err := NewGoTemplateRenderer(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing template directory")
	}
}
