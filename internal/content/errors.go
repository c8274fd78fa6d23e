package content

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedFrontmatter = errors.New("content: malformed frontmatter")
	ErrDuplicateIdentifier  = errors.New("content: duplicate identifier")
	ErrNotFound             = errors.New("content: post not found")
	ErrSlugCollision        = errors.New("content: slug collision")
	ErrRender               = errors.New("content: render failed")
	ErrIdentifierRequired   = errors.New("content: identifier is required")
	ErrTitleRequired        = errors.New("content: title is required")
	ErrDateRequired         = errors.New("content: date is required")
)

// MalformedFrontmatterError reports a frontmatter block that failed parsing
// or validation, identifying the offending source file.
type MalformedFrontmatterError struct {
	Identifier string
	Cause      error
}

func (e *MalformedFrontmatterError) Error() string {
	if e == nil {
		return ErrMalformedFrontmatter.Error()
	}
	id := strings.TrimSpace(e.Identifier)
	if id == "" {
		id = "<unknown>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", ErrMalformedFrontmatter.Error(), id, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedFrontmatter.Error(), id)
}

func (e *MalformedFrontmatterError) Unwrap() []error {
	if e == nil || e.Cause == nil {
		return []error{ErrMalformedFrontmatter}
	}
	return []error{ErrMalformedFrontmatter, e.Cause}
}

// DuplicateIdentifierError reports a second post claiming an identifier that
// is already present in the store.
type DuplicateIdentifierError struct {
	Identifier string
}

func (e *DuplicateIdentifierError) Error() string {
	if e == nil {
		return ErrDuplicateIdentifier.Error()
	}
	return fmt.Sprintf("%s: %s", ErrDuplicateIdentifier.Error(), e.Identifier)
}

func (e *DuplicateIdentifierError) Unwrap() error {
	return ErrDuplicateIdentifier
}

// SlugCollisionError reports two posts resolving to the same slug. Collisions
// are a build-time configuration error; nothing is published.
type SlugCollisionError struct {
	Slug  string
	PostA string
	PostB string
}

func (e *SlugCollisionError) Error() string {
	if e == nil {
		return ErrSlugCollision.Error()
	}
	return fmt.Sprintf("%s: %q claimed by %s and %s", ErrSlugCollision.Error(), e.Slug, e.PostA, e.PostB)
}

func (e *SlugCollisionError) Unwrap() error {
	return ErrSlugCollision
}

// RenderError wraps a converter or template failure for a single post. One
// failing post fails the whole build; there is no partial publish.
type RenderError struct {
	Identifier string
	Cause      error
}

func (e *RenderError) Error() string {
	if e == nil {
		return ErrRender.Error()
	}
	id := strings.TrimSpace(e.Identifier)
	if id == "" {
		id = "<unknown>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", ErrRender.Error(), id, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrRender.Error(), id)
}

func (e *RenderError) Unwrap() []error {
	if e == nil || e.Cause == nil {
		return []error{ErrRender}
	}
	return []error{ErrRender, e.Cause}
}
