package generator

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goliatone/go-press/pkg/interfaces"
)

const (
	postTemplateName      = "post"
	dateIndexTemplateName = "date_index"
	tagIndexTemplateName  = "tag_index"
)

// defaultPostTemplate renders a single post page when the site ships no
// template of its own.
const defaultPostTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Post.Title }} | {{ .Site.Title }}</title>
  {{- if .Post.Description }}
  <meta name="description" content="{{ .Post.Description }}">
  {{- end }}
  {{- if .Theme.CSSVars }}
  <style>:root { {{ range $name, $value := .Theme.CSSVars }}{{ $name }}: {{ $value }}; {{ end }}}</style>
  {{- end }}
</head>
<body>
  <header>
    <a href="{{ .Helpers.WithBaseURL "/" }}">{{ .Site.Title }}</a>
  </header>
  <main>
    <article>
      <h1>{{ .Post.Title }}</h1>
      <p class="meta">
        <time datetime="{{ .Post.Date.Format "2006-01-02" }}">{{ .Post.Date.Format "January 2, 2006" }}</time>
        {{- if .Post.Author }} by {{ .Post.Author }}{{ end }}
      </p>
      {{- if .Post.Tags }}
      <ul class="tags">
        {{- range .Post.Tags }}
        <li><a href="{{ $.Helpers.WithBaseURL .Route }}">{{ .Name }}</a></li>
        {{- end }}
      </ul>
      {{- end }}
      {{ .Post.HTML }}
    </article>
  </main>
</body>
</html>
`

const defaultDateIndexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Site.Title }}</title>
  {{- if .Site.Description }}
  <meta name="description" content="{{ .Site.Description }}">
  {{- end }}
</head>
<body>
  <header>
    <h1>{{ .Site.Title }}</h1>
    {{- if .Site.Description }}
    <p>{{ .Site.Description }}</p>
    {{- end }}
  </header>
  <main>
    <ul class="posts">
      {{- range .Index.Posts }}
      <li>
        <time datetime="{{ .Date.Format "2006-01-02" }}">{{ .Date.Format "2006-01-02" }}</time>
        <a href="{{ .Route }}">{{ .Title }}</a>
      </li>
      {{- end }}
    </ul>
  </main>
</body>
</html>
`

const defaultTagIndexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Index.Title }} | {{ .Site.Title }}</title>
</head>
<body>
  <header>
    <a href="{{ .Helpers.WithBaseURL "/" }}">{{ .Site.Title }}</a>
    <h1>{{ .Index.Title }}</h1>
  </header>
  <main>
    {{- if .Index.Posts }}
    <ul class="posts">
      {{- range .Index.Posts }}
      <li>
        <time datetime="{{ .Date.Format "2006-01-02" }}">{{ .Date.Format "2006-01-02" }}</time>
        <a href="{{ .Route }}">{{ .Title }}</a>
      </li>
      {{- end }}
    </ul>
    {{- else }}
    <ul class="tags">
      {{- range .Index.Tags }}
      <li><a href="{{ .Route }}">{{ .Tag }}</a> ({{ .Count }})</li>
      {{- end }}
    </ul>
    {{- end }}
  </main>
</body>
</html>
`

// NewGoTemplateRenderer returns a TemplateRenderer backed by html/template.
// Built in templates cover the post, date index and tag index pages; a
// template directory, when provided, is parsed on top and wins on name
// conflicts.
func NewGoTemplateRenderer(templateDir string) (interfaces.TemplateRenderer, error) {
	if dir := strings.TrimSpace(templateDir); dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("inspect template directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("template path %q is not a directory", dir)
		}
	}
	return &goTemplateRenderer{baseDir: strings.TrimSpace(templateDir)}, nil
}

type goTemplateRenderer struct {
	baseDir string
	once    sync.Once
	tpl     *template.Template
	err     error
}

func (r *goTemplateRenderer) ensureTemplates() (*template.Template, error) {
	r.once.Do(func() {
		overrides := map[string]string{}
		if r.baseDir != "" {
			err := filepath.WalkDir(r.baseDir, func(path string, entry fs.DirEntry, walkErr error) error {
				if walkErr != nil {
					return walkErr
				}
				if entry.IsDir() {
					return nil
				}
				ext := strings.ToLower(filepath.Ext(path))
				if ext != ".html" && ext != ".tmpl" {
					return nil
				}
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				overrides[name] = string(data)
				return nil
			})
			if err != nil {
				r.err = err
				return
			}
		}

		// html/template rejects redefining a non-empty template, so builtins
		// only register for names the override directory does not supply.
		tpl := template.New("press").Funcs(templateFuncs())
		for name, source := range map[string]string{
			postTemplateName:      defaultPostTemplate,
			dateIndexTemplateName: defaultDateIndexTemplate,
			tagIndexTemplateName:  defaultTagIndexTemplate,
		} {
			if _, ok := overrides[name]; ok {
				continue
			}
			if _, err := tpl.New(name).Parse(source); err != nil {
				r.err = fmt.Errorf("parse builtin template %q: %w", name, err)
				return
			}
		}
		for name, source := range overrides {
			if _, err := tpl.New(name).Parse(source); err != nil {
				r.err = fmt.Errorf("parse template %q: %w", name, err)
				return
			}
		}

		r.tpl = tpl
	})
	return r.tpl, r.err
}

func (r *goTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	tpl, err := r.ensureTemplates()
	if err != nil {
		return "", err
	}
	if tpl.Lookup(name) == nil {
		return "", fmt.Errorf("template %q not found", name)
	}

	var writer io.Writer
	var buffer *bytes.Buffer
	if len(out) > 0 && out[0] != nil {
		writer = out[0]
	} else {
		buffer = &bytes.Buffer{}
		writer = buffer
	}

	if err := tpl.ExecuteTemplate(writer, name, data); err != nil {
		return "", err
	}
	if buffer != nil {
		return buffer.String(), nil
	}
	return "", nil
}

func (r *goTemplateRenderer) RenderString(content string, data any, out ...io.Writer) (string, error) {
	tpl, err := template.New("inline").Funcs(templateFuncs()).Parse(content)
	if err != nil {
		return "", err
	}

	var writer io.Writer
	var buffer *bytes.Buffer
	if len(out) > 0 && out[0] != nil {
		writer = out[0]
	} else {
		buffer = &bytes.Buffer{}
		writer = buffer
	}

	if err := tpl.Execute(writer, data); err != nil {
		return "", err
	}
	if buffer != nil {
		return buffer.String(), nil
	}
	return "", nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"safeHTML": func(value any) template.HTML { return toHTML(value) },
	}
}

func toHTML(value any) template.HTML {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case template.HTML:
		return v
	case string:
		return template.HTML(v)
	default:
		return template.HTML(fmt.Sprint(v))
	}
}
