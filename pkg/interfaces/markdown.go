package interfaces

// MarkdownConverter defines how raw Markdown bytes become HTML. The publisher
// treats the converter as an external collaborator: it only relies on this
// contract and surfaces converter failures verbatim, so hosts can swap the
// default goldmark implementation for any other engine.
type MarkdownConverter interface {
	// Convert renders Markdown into HTML using the converter's default settings.
	Convert(markdown []byte) ([]byte, error)
	// ConvertWithOptions renders Markdown into HTML using the supplied overrides.
	ConvertWithOptions(markdown []byte, opts ConvertOptions) ([]byte, error)
}

// ConvertOptions customises Markdown conversion behaviour, keeping option
// names readable for configuration unmarshalling and CLI flags.
type ConvertOptions struct {
	// Extensions selects converter extensions by name (e.g. "gfm", "footnote").
	Extensions []string
	// HardWraps renders single newlines as <br> elements.
	HardWraps bool
	// SafeMode suppresses raw HTML passthrough from the source documents.
	SafeMode bool
}
