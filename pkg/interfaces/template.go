package interfaces

import "io"

// TemplateRenderer abstracts the template engine used to wrap rendered
// Markdown bodies into full pages. The default implementation is backed by
// html/template; themes may provide their own.
type TemplateRenderer interface {
	// Render executes the named template against data. When an optional
	// writer is supplied the output is streamed there as well.
	Render(name string, data any, out ...io.Writer) (string, error)
	// RenderString executes an inline template body against data.
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}
