// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "sheetfeed/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of retry attempts for throttled requests.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// GraphConfig holds credentials and addressing for the Microsoft Graph source.
type GraphConfig struct {
	HTTPConfig `yaml:",inline"`

	// TenantID is the Azure AD tenant the client authenticates against.
	TenantID string `json:"tenant_id" yaml:"tenant_id"`

	// ClientID identifies the registered application.
	ClientID string `json:"client_id" yaml:"client_id"`

	// ClientSecret is the application client secret.
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`

	// SiteHostname is the SharePoint hostname (e.g. "contoso.sharepoint.com").
	SiteHostname string `json:"site_hostname" yaml:"site_hostname"`

	// SitePath is the server-relative site path (e.g. "/sites/Common").
	SitePath string `json:"site_path" yaml:"site_path"`

	// WorkbookPath is the drive path of the .xlsx file
	// (e.g. "/Shared Documents/General/data.xlsx").
	WorkbookPath string `json:"workbook_path" yaml:"workbook_path"`

	// TableName is the workbook table to export.
	TableName string `json:"table_name" yaml:"table_name"`
}

// ExportConfig holds settings for the transform and serialization stages.
type ExportConfig struct {
	// OutDir is the directory feed files are written to (default "docs").
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// Basename is the feed file name without extension
	// (default "public_price_stock").
	Basename string `json:"basename" yaml:"basename"`

	// Formats lists the feed formats to write: xml, csv, json.
	Formats []string `json:"formats" yaml:"formats"`

	// StockColumn is the column rewritten into stock buckets (default "Stock").
	// Matched case-insensitively; a missing column is a warning, not an error.
	StockColumn string `json:"stock_column" yaml:"stock_column"`

	// StampColumn is the per-row timestamp column name (default "updatedAt").
	StampColumn string `json:"stamp_column" yaml:"stamp_column"`

	// UTCOffset is the fixed zone offset for the timestamp, formatted
	// "+05:00" or "-03:30" (default "+05:00").
	UTCOffset string `json:"utc_offset" yaml:"utc_offset"`
}

// HistoryConfig holds settings for the export run ledger.
type HistoryConfig struct {
	// Enabled controls whether runs are recorded (default true).
	Enabled bool `json:"enabled" yaml:"enabled"`

	// DBPath is the SQLite database path (default ".sheetfeed/history.db").
	DBPath string `json:"db_path" yaml:"db_path"`
}

// Config groups all stage configurations.
type Config struct {
	Graph   GraphConfig   `json:"graph" yaml:"graph"`
	Export  ExportConfig  `json:"export" yaml:"export"`
	History HistoryConfig `json:"history" yaml:"history"`
}
