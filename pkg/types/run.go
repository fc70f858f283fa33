// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Run statuses recorded in the export ledger.
const (
	RunOK    = "ok"
	RunError = "error"
)

// Run records one export invocation for the history ledger.
type Run struct {
	ID        int64     `json:"id"`
	StartedAt time.Time `json:"started_at"`

	// Source is "graph" for Microsoft Graph reads or "file" for local
	// workbook reads.
	Source string `json:"source"`

	// TableName is the workbook table that was exported.
	TableName string `json:"table_name"`

	// Rows is the number of data rows written.
	Rows int `json:"rows"`

	// Formats lists the feed formats written (e.g. "xml,csv,json").
	Formats string `json:"formats"`

	// OutDir is the directory the feeds were written to.
	OutDir string `json:"out_dir"`

	// Status is RunOK or RunError.
	Status string `json:"status"`

	// Error holds the failure message for RunError runs.
	Error string `json:"error,omitempty"`
}
