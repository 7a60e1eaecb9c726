package generator

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	manifestFileName    = ".posts-manifest.json"
	manifestFileVersion = 1
)

// buildManifest records the last successful build so unchanged pages can be
// skipped on the next run.
type buildManifest struct {
	Version     int                     `json:"version"`
	GeneratedAt time.Time               `json:"generated_at"`
	Pages       map[string]manifestPage `json:"pages"`
}

type manifestPage struct {
	Slug       string    `json:"slug"`
	Route      string    `json:"route"`
	Output     string    `json:"output"`
	Layout     string    `json:"layout"`
	Checksum   string    `json:"checksum"`
	RenderedAt time.Time `json:"rendered_at"`
}

func newBuildManifest() *buildManifest {
	return &buildManifest{
		Version: manifestFileVersion,
		Pages:   map[string]manifestPage{},
	}
}

func parseManifest(data []byte) (*buildManifest, error) {
	if len(data) == 0 {
		return newBuildManifest(), nil
	}
	var manifest buildManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("generator: parse manifest: %w", err)
	}
	if manifest.Pages == nil {
		manifest.Pages = map[string]manifestPage{}
	}
	if manifest.Version == 0 {
		manifest.Version = manifestFileVersion
	}
	return &manifest, nil
}

func (m *buildManifest) encode() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
