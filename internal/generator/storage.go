package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type writeCategory string

const (
	categoryPage     writeCategory = "page"
	categoryIndex    writeCategory = "index"
	categorySitemap  writeCategory = "sitemap"
	categoryRobots   writeCategory = "robots"
	categoryFeed     writeCategory = "feed"
	categoryManifest writeCategory = "manifest"
	categoryAsset    writeCategory = "asset"
)

// writeFileRequest describes a file write routed through the artifact writer.
type writeFileRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	Category    writeCategory
	ContentType string
	Checksum    string
}

// artifactWriter abstracts the output target so builds can stage writes and
// tests can capture them in memory.
type artifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req writeFileRequest) error
}

// stagingPublisher writes the whole output set into a temporary sibling of
// the output directory and swaps it into place only when the build succeeds.
// A failed build leaves the previous output untouched.
type stagingPublisher struct {
	outputDir  string
	stagingDir string
	committed  bool
}

func newStagingPublisher(outputDir string) (*stagingPublisher, error) {
	cleaned := filepath.Clean(strings.TrimSpace(outputDir))
	if cleaned == "" || cleaned == "." {
		return nil, errors.New("generator: output directory is required")
	}

	parent := filepath.Dir(cleaned)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("generator: prepare output parent %s: %w", parent, err)
	}

	staging, err := os.MkdirTemp(parent, ".press-staging-*")
	if err != nil {
		return nil, fmt.Errorf("generator: create staging directory: %w", err)
	}

	return &stagingPublisher{
		outputDir:  cleaned,
		stagingDir: staging,
	}, nil
}

func (p *stagingPublisher) EnsureDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir = strings.Trim(strings.TrimSpace(dir), "/")
	if dir == "" || dir == "." {
		return nil
	}
	full := filepath.Join(p.stagingDir, filepath.FromSlash(dir))
	if err := os.MkdirAll(full, 0o755); err != nil {
		return fmt.Errorf("generator: ensure dir %s: %w", dir, err)
	}
	return nil
}

func (p *stagingPublisher) WriteFile(ctx context.Context, req writeFileRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Content == nil {
		return errors.New("generator: write requires content reader")
	}
	rel := strings.Trim(strings.TrimSpace(req.Path), "/")
	if rel == "" {
		return errors.New("generator: write requires path")
	}

	full := filepath.Join(p.stagingDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("generator: ensure parent for %s: %w", rel, err)
	}

	file, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("generator: create %s: %w", rel, err)
	}
	if _, err := io.Copy(file, req.Content); err != nil {
		_ = file.Close()
		return fmt.Errorf("generator: write %s: %w", rel, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("generator: close %s: %w", rel, err)
	}
	return nil
}

// Commit replaces the output directory with the staged tree. The previous
// output is parked beside the new one until the rename succeeds, then removed.
func (p *stagingPublisher) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.committed {
		return nil
	}

	previous := ""
	if _, err := os.Stat(p.outputDir); err == nil {
		previous = p.outputDir + ".previous"
		_ = os.RemoveAll(previous)
		if err := os.Rename(p.outputDir, previous); err != nil {
			return fmt.Errorf("generator: park previous output: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("generator: inspect output dir: %w", err)
	}

	if err := os.Rename(p.stagingDir, p.outputDir); err != nil {
		// Restore the previous output so a failed swap is not destructive.
		if previous != "" {
			_ = os.Rename(previous, p.outputDir)
		}
		return fmt.Errorf("generator: activate staged output: %w", err)
	}

	if previous != "" {
		_ = os.RemoveAll(previous)
	}
	p.committed = true
	return nil
}

// Discard removes the staging directory without touching the output.
func (p *stagingPublisher) Discard() {
	if p.committed {
		return
	}
	_ = os.RemoveAll(p.stagingDir)
}

func ensureDir(ctx context.Context, writer artifactWriter, cache map[string]struct{}, dir string) error {
	dir = strings.Trim(dir, " ")
	if dir == "" || dir == "." {
		return nil
	}
	if cache != nil {
		if _, ok := cache[dir]; ok {
			return nil
		}
		cache[dir] = struct{}{}
	}
	return writer.EnsureDir(ctx, dir)
}
