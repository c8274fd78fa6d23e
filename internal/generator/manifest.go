package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	manifestFileName = ".press-manifest.json"
	manifestVersion  = 1
)

// buildManifest records what a build produced so the next run can report a
// diff and Clean knows which tree it owns.
type buildManifest struct {
	Version     int                     `json:"version"`
	BuildID     string                  `json:"build_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Pages       map[string]manifestPage `json:"pages"`
	Assets      []string                `json:"assets,omitempty"`
}

type manifestPage struct {
	Identifier   string    `json:"identifier"`
	Route        string    `json:"route"`
	Output       string    `json:"output"`
	Checksum     string    `json:"checksum"`
	Date         time.Time `json:"date"`
	LastModified time.Time `json:"last_modified,omitempty"`
	RenderedAt   time.Time `json:"rendered_at"`
}

func newBuildManifest(buildID string, generatedAt time.Time) *buildManifest {
	return &buildManifest{
		Version:     manifestVersion,
		BuildID:     buildID,
		GeneratedAt: generatedAt.UTC(),
		Pages:       map[string]manifestPage{},
	}
}

func (m *buildManifest) addPage(page manifestPage) {
	if m.Pages == nil {
		m.Pages = map[string]manifestPage{}
	}
	m.Pages[page.Identifier] = page
}

func (m *buildManifest) addAsset(path string) {
	m.Assets = append(m.Assets, path)
	sort.Strings(m.Assets)
}

// unchanged reports whether the previous build produced the same content for
// the post. Used for diff reporting, not for skipping renders.
func (m *buildManifest) unchanged(identifier, checksum string) bool {
	if m == nil {
		return false
	}
	page, ok := m.Pages[identifier]
	return ok && page.Checksum == checksum
}

func (m *buildManifest) marshal() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("generator: encode manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// loadManifest reads the manifest written by a previous build. A missing or
// unreadable manifest is not an error, it just means no diff baseline.
func loadManifest(outputDir string) *buildManifest {
	data, err := os.ReadFile(filepath.Join(outputDir, manifestFileName))
	if err != nil {
		return nil
	}
	return parseManifest(data)
}

func parseManifest(data []byte) *buildManifest {
	var m buildManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	if m.Version != manifestVersion {
		return nil
	}
	return &m
}
