package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-press/internal/content"
)

// LoaderConfig configures how content files are discovered within a base directory.
type LoaderConfig struct {
	// BasePath is the root directory where content files live.
	BasePath string
	// Pattern limits discovered files to those matching the supplied glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader turns filesystem paths into posts keyed by their relative path.
type Loader struct {
	fs        fs.FS
	basePath  string
	pattern   string
	recursive bool
}

// NewLoader constructs a Loader over the provided filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}

	return &Loader{
		fs:        filesystem,
		basePath:  filepath.Clean(cfg.BasePath),
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// NewDirLoader constructs a Loader rooted at the configured base path on the
// local filesystem, verifying the directory exists up front.
func NewDirLoader(cfg LoaderConfig) (*Loader, error) {
	base := filepath.Clean(strings.TrimSpace(cfg.BasePath))
	if base == "" || base == "." {
		base = "."
	}
	info, err := os.Stat(base)
	if err != nil {
		return nil, fmt.Errorf("markdown loader: base path %s: %w", base, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("markdown loader: base path %s is not a directory", base)
	}
	return NewLoader(os.DirFS(base), cfg), nil
}

// LoadFile reads and parses a single content file. The identifier recorded on
// the returned post is the slash-separated path relative to the base path.
func (l *Loader) LoadFile(ctx context.Context, path string) (*content.Post, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	post, err := BuildPost(rel, data, info.ModTime())
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	post.Checksum = sum[:]

	return post, nil
}

// LoadDirectory discovers content files under dir and returns parsed posts
// sorted by path, which fixes the store's discovery order across platforms.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*content.Post, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}
	root = filepath.Clean(root)

	var posts []*content.Post

	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if !l.shouldRecurse(root, path) {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(path)
		if !l.matchesPattern(rel) {
			return nil
		}

		post, err := l.LoadFile(ctx, rel)
		if err != nil {
			return err
		}
		posts = append(posts, post)
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Identifier < posts[j].Identifier
	})

	return posts, nil
}

func (l *Loader) shouldRecurse(root, current string) bool {
	if l.recursive {
		return true
	}
	// If recursion is disabled, only walk the root directory.
	return filepath.Clean(root) == filepath.Clean(current)
}

func (l *Loader) matchesPattern(path string) bool {
	// Normalise to slash as fs.WalkDir returns slash-separated paths for DirFS.
	pattern := filepath.ToSlash(l.pattern)
	if strings.Contains(pattern, "**") {
		// Basic support for ** by stripping repeated separators.
		pattern = strings.ReplaceAll(pattern, "**/", "")
	}
	var target string
	if strings.Contains(pattern, "/") {
		target = path
	} else {
		target = filepath.Base(path)
	}
	match, err := filepath.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}

func (l *Loader) makeRelative(path string) (string, error) {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" {
		return "", fmt.Errorf("markdown loader: absolute path %s provided without base path", path)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("markdown loader: make relative %s: %w", path, err)
	}
	return rel, nil
}
