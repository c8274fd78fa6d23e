package content

import (
	"fmt"
	"iter"
	"path"
	"strings"

	slug "github.com/goliatone/go-slug"
)

// SlugSource selects which field seeds a post's slug.
type SlugSource string

const (
	// SlugSourceIdentifier derives slugs from the source path (default).
	SlugSourceIdentifier SlugSource = "identifier"
	// SlugSourceTitle derives slugs from the post title.
	SlugSourceTitle SlugSource = "title"
)

// ParseSlugSource validates a configuration value for the slug policy.
func ParseSlugSource(value string) (SlugSource, error) {
	switch SlugSource(strings.ToLower(strings.TrimSpace(value))) {
	case "", SlugSourceIdentifier:
		return SlugSourceIdentifier, nil
	case SlugSourceTitle:
		return SlugSourceTitle, nil
	default:
		return "", fmt.Errorf("content: unknown slug source %q", value)
	}
}

// Resolver derives canonical URL slugs for posts. Resolution is a pure
// function of the configured source field, so identical input always yields
// an identical slug.
type Resolver struct {
	source SlugSource
}

// NewResolver constructs a resolver for the given policy.
func NewResolver(source SlugSource) *Resolver {
	if source == "" {
		source = SlugSourceIdentifier
	}
	return &Resolver{source: source}
}

// Resolve returns the slug for a single post.
func (r *Resolver) Resolve(post *Post) (string, error) {
	if post == nil {
		return "", ErrIdentifierRequired
	}

	switch r.source {
	case SlugSourceTitle:
		title := strings.TrimSpace(post.Title)
		if title == "" {
			return "", ErrTitleRequired
		}
		normalized, err := slug.Normalize(title)
		if err != nil {
			return "", fmt.Errorf("content: normalize slug for %s: %w", post.Identifier, err)
		}
		return normalized, nil
	default:
		return identifierSlug(post.Identifier)
	}
}

// ResolveAll resolves every post and enforces global uniqueness. A collision
// fails the whole build; there is no silent suffixing, so accidental
// duplicate titles surface immediately.
func (r *Resolver) ResolveAll(posts iter.Seq[*Post]) (map[string]string, error) {
	routes := map[string]string{}
	claimed := map[string]string{}

	for post := range posts {
		resolved, err := r.Resolve(post)
		if err != nil {
			return nil, err
		}
		if prior, ok := claimed[resolved]; ok {
			return nil, &SlugCollisionError{Slug: resolved, PostA: prior, PostB: post.Identifier}
		}
		claimed[resolved] = post.Identifier
		routes[post.Identifier] = resolved
	}

	return routes, nil
}

// TagSlug folds a tag into its canonical route segment
// (Machine Learning -> machine-learning). Tag listing pages and the links
// pointing at them must both go through this so they agree on casing.
func TagSlug(tag string) (string, error) {
	normalized, err := slug.Normalize(tag)
	if err != nil {
		return "", fmt.Errorf("content: normalize tag %q: %w", tag, err)
	}
	return normalized, nil
}

// identifierSlug normalizes each path segment independently so nested content
// directories map onto nested routes (posts/2025/My Note.md -> posts/2025/my-note).
func identifierSlug(identifier string) (string, error) {
	trimmed := strings.Trim(strings.TrimSpace(identifier), "/")
	if trimmed == "" {
		return "", ErrIdentifierRequired
	}

	trimmed = strings.TrimSuffix(trimmed, path.Ext(trimmed))
	segments := strings.Split(trimmed, "/")
	normalized := make([]string, 0, len(segments))
	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		part, err := slug.Normalize(segment)
		if err != nil {
			return "", fmt.Errorf("content: normalize slug segment %q: %w", segment, err)
		}
		if part == "" {
			continue
		}
		normalized = append(normalized, part)
	}
	if len(normalized) == 0 {
		return "", ErrIdentifierRequired
	}
	return strings.Join(normalized, "/"), nil
}
