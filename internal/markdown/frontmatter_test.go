package markdown

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-press/internal/content"
)

func readFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}

func TestParseFrontMatterYAML(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")

	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fm.Title != "A Sample Post" {
		t.Fatalf("Title mismatch, got %q", fm.Title)
	}
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !fm.Date.Equal(want) {
		t.Fatalf("Date mismatch, got %v", fm.Date)
	}
	if fm.Author != "Jane Example" {
		t.Fatalf("Author mismatch, got %q", fm.Author)
	}
	if len(fm.Tags) != 2 || fm.Tags[0] != "go" || fm.Tags[1] != "releases" {
		t.Fatalf("Tags mismatch: %#v", fm.Tags)
	}
	if fm.Draft {
		t.Fatal("expected draft to default to false")
	}
	if fm.Description != "Sample description goes here" {
		t.Fatalf("Description mismatch, got %q", fm.Description)
	}
	if !strings.Contains(string(body), "# A Sample Post") {
		t.Fatalf("body not returned correctly: %q", string(body))
	}
}

func TestParseFrontMatterTOML(t *testing.T) {
	data := readFixture(t, "testdata/toml.md")

	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fm.Title != "TOML Flavoured" {
		t.Fatalf("Title mismatch, got %q", fm.Title)
	}
	if !fm.Draft {
		t.Fatal("expected draft to be true")
	}
	if len(fm.Tags) != 1 || fm.Tags[0] != "notes" {
		t.Fatalf("Tags mismatch: %#v", fm.Tags)
	}
	if !strings.Contains(string(body), "Body written after TOML frontmatter.") {
		t.Fatalf("body not returned correctly: %q", string(body))
	}
}

func TestParseFrontMatterMissingDate(t *testing.T) {
	data := readFixture(t, "testdata/missing-date.md")

	if _, _, err := ParseFrontMatter(data); err == nil {
		t.Fatal("expected validation error for missing date")
	}
}

func TestParseFrontMatterUnclosedDelimiter(t *testing.T) {
	data := readFixture(t, "testdata/unclosed.md")

	if _, _, err := ParseFrontMatter(data); err == nil {
		t.Fatal("expected error for unclosed frontmatter block")
	}
}

func TestParseFrontMatterIsDeterministic(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")

	first, firstBody, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	second, secondBody, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if first.Title != second.Title || !first.Date.Equal(second.Date) {
		t.Fatalf("expected identical metadata, got %#v and %#v", first, second)
	}
	if string(firstBody) != string(secondBody) {
		t.Fatal("expected identical bodies across runs")
	}
}

func TestBuildPost(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")
	modified := time.Now().UTC()

	post, err := BuildPost("posts/basic.md", data, modified)
	if err != nil {
		t.Fatalf("BuildPost: %v", err)
	}

	if post.Identifier != "posts/basic.md" {
		t.Fatalf("expected identifier to be set, got %q", post.Identifier)
	}
	if post.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("expected deterministic non-nil post ID")
	}
	if !post.LastModified.Equal(modified) {
		t.Fatal("expected LastModified to equal the provided timestamp")
	}
	if len(post.Body) == 0 {
		t.Fatal("expected Body to contain markdown content")
	}
}

func TestBuildPostWrapsMalformedFrontmatter(t *testing.T) {
	data := readFixture(t, "testdata/missing-date.md")

	_, err := BuildPost("posts/missing-date.md", data, time.Now())
	if !errors.Is(err, content.ErrMalformedFrontmatter) {
		t.Fatalf("expected ErrMalformedFrontmatter, got %v", err)
	}

	var malformed *content.MalformedFrontmatterError
	if !errors.As(err, &malformed) || malformed.Identifier != "posts/missing-date.md" {
		t.Fatalf("expected identifier on error, got %v", err)
	}
}
