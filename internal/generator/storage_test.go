package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStagingPublisherCommitSwapsOutput(t *testing.T) {
	ctx := context.Background()
	outputDir := filepath.Join(t.TempDir(), "public")

	// Pre-existing output from an earlier run.
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, "stale.html"), []byte("old"), 0o644); err != nil {
		t.Fatalf("write stale: %v", err)
	}

	publisher, err := newStagingPublisher(outputDir)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	if err := publisher.WriteFile(ctx, writeFileRequest{
		Path:     "fresh/index.html",
		Content:  strings.NewReader("<html>new</html>"),
		Category: categoryPage,
	}); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Nothing visible until commit.
	if _, err := os.Stat(filepath.Join(outputDir, "fresh", "index.html")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected staged file to be invisible, got err=%v", err)
	}

	if err := publisher.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outputDir, "fresh", "index.html"))
	if err != nil {
		t.Fatalf("read committed file: %v", err)
	}
	if string(data) != "<html>new</html>" {
		t.Fatalf("unexpected committed content %q", data)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "stale.html")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected stale output removed, got err=%v", err)
	}
}

func TestStagingPublisherDiscardLeavesOutputAlone(t *testing.T) {
	ctx := context.Background()
	outputDir := filepath.Join(t.TempDir(), "public")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, "keep.html"), []byte("keep"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	publisher, err := newStagingPublisher(outputDir)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	if err := publisher.WriteFile(ctx, writeFileRequest{
		Path:     "partial.html",
		Content:  strings.NewReader("half done"),
		Category: categoryPage,
	}); err != nil {
		t.Fatalf("write: %v", err)
	}
	publisher.Discard()

	if _, err := os.Stat(publisher.stagingDir); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected staging dir removed, got err=%v", err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "keep.html")); err != nil {
		t.Fatalf("expected previous output intact: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "partial.html")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected partial write to be absent, got err=%v", err)
	}
}

func TestStagingPublisherDiscardAfterCommitIsNoop(t *testing.T) {
	ctx := context.Background()
	outputDir := filepath.Join(t.TempDir(), "public")

	publisher, err := newStagingPublisher(outputDir)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	if err := publisher.WriteFile(ctx, writeFileRequest{
		Path:     "index.html",
		Content:  strings.NewReader("content"),
		Category: categoryPage,
	}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := publisher.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}
	publisher.Discard()

	if _, err := os.Stat(filepath.Join(outputDir, "index.html")); err != nil {
		t.Fatalf("expected committed output to survive discard: %v", err)
	}
}

func TestStagingPublisherRequiresOutputDir(t *testing.T) {
	if _, err := newStagingPublisher("  "); err == nil {
		t.Fatal("expected error for empty output dir")
	}
}
