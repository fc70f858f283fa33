// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export runs the fetch, transform and serialize pipeline for one
// invocation.
package export

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/pdiddy/sheetfeed/internal/feed"
	"github.com/pdiddy/sheetfeed/internal/graph"
	"github.com/pdiddy/sheetfeed/internal/transform"
	"github.com/pdiddy/sheetfeed/internal/workbook"
	"github.com/pdiddy/sheetfeed/pkg/types"
)

// Defaults applied when the corresponding config value is empty.
const (
	DefaultOutDir      = "docs"
	DefaultBasename    = "public_price_stock"
	DefaultStockColumn = "Stock"
	DefaultStampColumn = "updatedAt"
	DefaultUTCOffset   = "+05:00"
)

// Source yields the table to export.
type Source interface {
	// Name identifies the source kind for logs and the run ledger.
	Name() string
	Read(ctx context.Context) (*types.Table, error)
}

// GraphSource reads the table from SharePoint through Microsoft Graph.
type GraphSource struct {
	Client *graph.Client
	Config types.GraphConfig

	// Progress receives per-step resolution messages.
	Progress io.Writer
}

func (s *GraphSource) Name() string { return "graph" }

func (s *GraphSource) Read(ctx context.Context) (*types.Table, error) {
	progress := s.Progress
	if progress == nil {
		progress = io.Discard
	}

	siteID, err := s.Client.ResolveSite(ctx, s.Config.SiteHostname, s.Config.SitePath)
	if err != nil {
		return nil, err
	}

	itemID, err := s.Client.ResolveItem(ctx, siteID, s.Config.WorkbookPath, progress)
	if err != nil {
		return nil, err
	}

	return s.Client.ReadTable(ctx, siteID, itemID, s.Config.TableName)
}

// FileSource reads the table from a local .xlsx workbook.
type FileSource struct {
	Path      string
	TableName string
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Read(_ context.Context) (*types.Table, error) {
	return workbook.ReadTable(s.Path, s.TableName)
}

// Result summarizes a completed export.
type Result struct {
	Table   string
	Rows    int
	Formats []feed.Format
	Paths   []string
}

// Run executes the pipeline: read the table, bucket the stock column,
// stamp every row with the run time, write the feeds and the manifest.
// Warnings go to w; any stage error aborts the run.
func Run(ctx context.Context, src Source, cfg types.ExportConfig, now time.Time, w io.Writer) (Result, error) {
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
	if cfg.Basename == "" {
		cfg.Basename = DefaultBasename
	}
	if cfg.StockColumn == "" {
		cfg.StockColumn = DefaultStockColumn
	}
	if cfg.StampColumn == "" {
		cfg.StampColumn = DefaultStampColumn
	}
	if cfg.UTCOffset == "" {
		cfg.UTCOffset = DefaultUTCOffset
	}

	formats, err := feed.ParseFormats(cfg.Formats)
	if err != nil {
		return Result{}, err
	}

	loc, err := transform.ParseUTCOffset(cfg.UTCOffset)
	if err != nil {
		return Result{}, err
	}

	table, err := src.Read(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("reading table: %w", err)
	}

	if !transform.BucketColumn(table, cfg.StockColumn) {
		fmt.Fprintf(w, "warning: column %q not found; no bucketing applied\n", cfg.StockColumn)
	}
	table.AddColumn(cfg.StampColumn, transform.Stamp(now, loc))

	paths, err := feed.WriteAll(table, cfg.OutDir, cfg.Basename, formats)
	if err != nil {
		return Result{}, err
	}

	files := make([]string, len(paths))
	for i, p := range paths {
		files[i] = filepath.Base(p)
	}
	manifest := feed.Manifest{
		GeneratedAt: now.UTC(),
		Source:      src.Name(),
		Table:       table.Name,
		Rows:        table.NumRows(),
		Columns:     table.Columns,
		Files:       files,
	}
	if err := feed.WriteManifest(manifest, cfg.OutDir); err != nil {
		return Result{}, err
	}

	return Result{
		Table:   table.Name,
		Rows:    table.NumRows(),
		Formats: formats,
		Paths:   paths,
	}, nil
}
