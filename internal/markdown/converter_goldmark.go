package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-press/pkg/interfaces"
)

// GoldmarkConverter implements interfaces.MarkdownConverter using the
// goldmark engine. The converter is intentionally stateless so a single
// instance can be shared across render workers without additional locking.
// Code-fence language hints pass through as language-* classes on the
// rendered <code> element, ready for any client-side highlighter.
type GoldmarkConverter struct {
	defaultOptions interfaces.ConvertOptions
}

// NewGoldmarkConverter constructs a converter with sensible defaults (GFM
// extensions, hard wraps disabled, raw HTML allowed). Behaviour can be
// overridden per invocation through ConvertWithOptions.
func NewGoldmarkConverter(defaults interfaces.ConvertOptions) *GoldmarkConverter {
	return &GoldmarkConverter{
		defaultOptions: defaults,
	}
}

// Convert satisfies interfaces.MarkdownConverter by rendering Markdown into
// HTML using the converter's default configuration.
func (c *GoldmarkConverter) Convert(markdown []byte) ([]byte, error) {
	return c.ConvertWithOptions(markdown, c.defaultOptions)
}

// ConvertWithOptions renders Markdown into HTML using the provided options.
func (c *GoldmarkConverter) ConvertWithOptions(markdown []byte, opts interfaces.ConvertOptions) ([]byte, error) {
	engine := newGoldmarkEngine(opts)
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}
	return buf.Bytes(), nil
}

// newGoldmarkEngine builds a goldmark.Markdown configured from the supplied
// convert options. Unsupported extension names are ignored.
func newGoldmarkEngine(opts interfaces.ConvertOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)

	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	rendererOptions := []renderer.Option{}

	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
	}

	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
