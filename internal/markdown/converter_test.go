package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-press/pkg/interfaces"
)

func TestGoldmarkConverterConvert(t *testing.T) {
	converter := NewGoldmarkConverter(interfaces.ConvertOptions{})

	html, err := converter.Convert([]byte("# Heading\n\nHello **world**"))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "Heading</h1>") {
		t.Fatalf("expected rendered HTML to include <h1>Heading</h1>, got %q", got)
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Fatalf("expected rendered HTML to include <strong>, got %q", got)
	}
}

func TestGoldmarkConverterFenceLanguageHint(t *testing.T) {
	converter := NewGoldmarkConverter(interfaces.ConvertOptions{})

	html, err := converter.Convert([]byte("```go\nfmt.Println(\"hi\")\n```\n"))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if !strings.Contains(string(html), `class="language-go"`) {
		t.Fatalf("expected fence language hint to survive conversion, got %q", string(html))
	}
}

func TestGoldmarkConverterSafeMode(t *testing.T) {
	converter := NewGoldmarkConverter(interfaces.ConvertOptions{})

	unsafe, err := converter.ConvertWithOptions([]byte("<div>raw</div>"), interfaces.ConvertOptions{})
	if err != nil {
		t.Fatalf("ConvertWithOptions: %v", err)
	}
	if !strings.Contains(string(unsafe), "<div>raw</div>") {
		t.Fatalf("expected raw HTML passthrough by default, got %q", string(unsafe))
	}

	safe, err := converter.ConvertWithOptions([]byte("<div>raw</div>"), interfaces.ConvertOptions{SafeMode: true})
	if err != nil {
		t.Fatalf("ConvertWithOptions: %v", err)
	}
	if strings.Contains(string(safe), "<div>raw</div>") {
		t.Fatalf("expected raw HTML suppressed in safe mode, got %q", string(safe))
	}
}

func TestGoldmarkConverterGFMTable(t *testing.T) {
	converter := NewGoldmarkConverter(interfaces.ConvertOptions{})

	html, err := converter.Convert([]byte("| a | b |\n| - | - |\n| 1 | 2 |\n"))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(string(html), "<table>") {
		t.Fatalf("expected GFM table extension to be active, got %q", string(html))
	}
}

func TestCollectExtensionsSkipsUnknownNames(t *testing.T) {
	exts := collectExtensions([]string{"table", "no-such-extension", "TABLE", ""})
	if len(exts) != 1 {
		t.Fatalf("expected one extension after dedup and filtering, got %d", len(exts))
	}
}
