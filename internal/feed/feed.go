// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed serializes tables to the published feed formats and writes
// them atomically to the output directory.
package feed

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/sheetfeed/pkg/types"
)

// Format identifies a feed serialization format.
type Format string

const (
	FormatXML  Format = "xml"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// AllFormats lists every supported format, in the order feeds are written.
var AllFormats = []Format{FormatXML, FormatCSV, FormatJSON}

// ParseFormats validates and deduplicates format names. An empty list
// selects all formats.
func ParseFormats(names []string) ([]Format, error) {
	if len(names) == 0 {
		return AllFormats, nil
	}

	seen := make(map[Format]bool, len(names))
	var formats []Format
	for _, name := range names {
		f := Format(strings.ToLower(strings.TrimSpace(name)))
		switch f {
		case FormatXML, FormatCSV, FormatJSON:
		default:
			return nil, fmt.Errorf("unknown feed format %q: expected xml, csv or json", name)
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// FormatNames renders formats as a comma-separated list for logs and the
// run ledger.
func FormatNames(formats []Format) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ",")
}

// WriteAll serializes the table in each format to dir/basename.<ext> and
// returns the written paths, in format order.
func WriteAll(t *types.Table, dir, basename string, formats []Format) ([]string, error) {
	var paths []string
	for _, f := range formats {
		path := filepath.Join(dir, basename+"."+string(f))
		if err := writeAtomic(path, func(w io.Writer) error {
			return writeFormat(t, f, w)
		}); err != nil {
			return nil, fmt.Errorf("writing %s feed: %w", f, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFormat(t *types.Table, f Format, w io.Writer) error {
	switch f {
	case FormatXML:
		return WriteXML(t, w)
	case FormatCSV:
		return WriteCSV(t, w)
	case FormatJSON:
		return WriteJSON(t, w)
	default:
		return fmt.Errorf("unknown feed format %q", f)
	}
}

// writeAtomic writes to a temporary file in the destination directory and
// renames it into place, so consumers never observe a partial feed.
func writeAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".feed-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	writeErr := write(tmpFile)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return writeErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
