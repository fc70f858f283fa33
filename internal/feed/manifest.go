// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

// ManifestFile is the manifest name written alongside the feeds.
const ManifestFile = "manifest.yaml"

// Manifest describes one published feed set for static-site consumers.
type Manifest struct {
	// GeneratedAt is the export run time, UTC.
	GeneratedAt time.Time `yaml:"generated_at"`

	// Source is "graph" or "file".
	Source string `yaml:"source"`

	// Table is the exported workbook table name.
	Table string `yaml:"table"`

	Rows    int      `yaml:"rows"`
	Columns []string `yaml:"columns"`

	// Files lists the feed file names relative to the output directory.
	Files []string `yaml:"files"`
}

// WriteManifest writes the manifest as YAML to dir/manifest.yaml, using
// the same atomic write as the feeds.
func WriteManifest(m Manifest, dir string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshalling manifest: %w", err)
	}

	path := filepath.Join(dir, ManifestFile)
	if err := writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
