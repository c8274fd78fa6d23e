package content

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Post is the unit of publishing: parsed frontmatter plus the raw Markdown
// body. The store owns Post records for the duration of a build; downstream
// stages hold read-only references and never mutate them.
type Post struct {
	// ID is derived deterministically from Identifier (see internal/identity).
	ID uuid.UUID
	// Identifier is the slash-separated source path relative to the content
	// root. Unique across the store.
	Identifier string
	Title      string
	// Date is the publication date. Required for a post to be publishable.
	Date        time.Time
	Author      string
	Tags        []string
	Draft       bool
	Description string
	// Body is the Markdown source following the frontmatter block, verbatim.
	Body []byte
	// LastModified mirrors the source file's modification time.
	LastModified time.Time
	// Checksum is the SHA-256 digest of the raw source file.
	Checksum []byte
}

// Publishable reports whether the post belongs in the published output at the
// given build time. Drafts and future-dated posts are excluded silently.
func (p *Post) Publishable(buildTime time.Time) bool {
	if p == nil || p.Draft {
		return false
	}
	if p.Date.IsZero() {
		return false
	}
	return !p.Date.After(buildTime)
}

// HasTag reports whether the post carries the given tag. Comparison is
// case-insensitive to match tag grouping in the index builder.
func (p *Post) HasTag(tag string) bool {
	if p == nil {
		return false
	}
	needle := strings.ToLower(strings.TrimSpace(tag))
	for _, item := range p.Tags {
		if strings.ToLower(strings.TrimSpace(item)) == needle {
			return true
		}
	}
	return false
}

// NormalizeTags trims whitespace and drops duplicates while preserving the
// author's declared order, which templates use for display.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
