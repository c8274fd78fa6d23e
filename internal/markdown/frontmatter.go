package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-press/internal/content"
	"github.com/goliatone/go-press/internal/identity"
)

// FrontMatter models the metadata block prefixed to each content file. Both
// YAML (---) and TOML (+++) delimiters are recognised; the parsing library
// picks the format from the opening delimiter.
type FrontMatter struct {
	Title       string    `yaml:"title" toml:"title"`
	Date        time.Time `yaml:"date" toml:"date"`
	Author      string    `yaml:"author" toml:"author"`
	Tags        []string  `yaml:"tags" toml:"tags"`
	Draft       bool      `yaml:"draft" toml:"draft"`
	Description string    `yaml:"description" toml:"description"`
}

// Validate enforces the fields a post needs to be publishable. A missing or
// unparseable title or date makes the whole file malformed.
func (fm FrontMatter) Validate() error {
	return validation.ValidateStruct(&fm,
		validation.Field(&fm.Title, validation.Required.Error("title is required")),
		validation.Field(&fm.Date, validation.Required.Error("date is required")),
	)
}

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. The body is returned verbatim past the closing
// delimiter. Pure function: no filesystem or clock access.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	if err := meta.Validate(); err != nil {
		return FrontMatter{}, nil, fmt.Errorf("validate frontmatter: %w", err)
	}

	return meta, body, nil
}

// BuildPost assembles a content.Post from the supplied identifier, raw file
// bytes, and modification time. Parse and validation failures surface as
// content.MalformedFrontmatterError so the build can name the offending file.
func BuildPost(identifier string, source []byte, modified time.Time) (*content.Post, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, &content.MalformedFrontmatterError{Identifier: identifier, Cause: err}
	}

	return &content.Post{
		ID:           identity.PostUUID(identifier),
		Identifier:   identifier,
		Title:        meta.Title,
		Date:         meta.Date,
		Author:       meta.Author,
		Tags:         content.NormalizeTags(meta.Tags),
		Draft:        meta.Draft,
		Description:  meta.Description,
		Body:         body,
		LastModified: modified,
	}, nil
}
