// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/sheetfeed/internal/export"
	"github.com/pdiddy/sheetfeed/internal/feed"
	"github.com/pdiddy/sheetfeed/internal/graph"
	"github.com/pdiddy/sheetfeed/internal/history"
	"github.com/pdiddy/sheetfeed/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a workbook table to XML, CSV and JSON feeds",
	Long: `Export fetches the configured workbook table from SharePoint (or a local
.xlsx with --from-file), rewrites the stock column into buckets, stamps every
row with the run time, and writes the feed files plus a manifest to the
output directory.

Credentials come from the secrets directory (tenant-id, client-id,
client-secret), environment variables with the SHEETFEED prefix, or the
config file.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("site-hostname", "", "SharePoint hostname (e.g. contoso.sharepoint.com)")
	exportCmd.Flags().String("site-path", "", "server-relative site path (e.g. /sites/Common)")
	exportCmd.Flags().String("workbook", "", "drive path of the .xlsx workbook")
	exportCmd.Flags().String("table", "", "workbook table name to export")
	exportCmd.Flags().String("from-file", "", "read the table from a local .xlsx instead of Graph")
	exportCmd.Flags().String("formats", "", "feed formats to write, comma-separated (default xml,csv,json)")
	exportCmd.Flags().String("out", "", "output directory (default docs)")
	exportCmd.Flags().String("basename", "", "feed file name without extension (default public_price_stock)")
	exportCmd.Flags().String("stock-column", "", "column rewritten into stock buckets (default Stock)")
	exportCmd.Flags().String("utc-offset", "", `timestamp zone offset (default "+05:00")`)
	exportCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 40s)")

	rootCmd.AddCommand(exportCmd)
}

// stringSetting resolves a string option: explicit flag, then config/env,
// then the flag default.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if key != "" && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

func graphConfig(cmd *cobra.Command) types.GraphConfig {
	cfg := types.GraphConfig{
		TenantID:     secretDefault("tenant-id", viper.GetString("graph.tenant_id")),
		ClientID:     secretDefault("client-id", viper.GetString("graph.client_id")),
		ClientSecret: secretDefault("client-secret", viper.GetString("graph.client_secret")),
		SiteHostname: stringSetting(cmd, "site-hostname", "graph.site_hostname"),
		SitePath:     stringSetting(cmd, "site-path", "graph.site_path"),
		WorkbookPath: stringSetting(cmd, "workbook", "graph.workbook_path"),
		TableName:    stringSetting(cmd, "table", "graph.table_name"),
	}

	cfg.Timeout = viper.GetDuration("graph.timeout")
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	cfg.MaxRetries = viper.GetInt("graph.max_retries")
	cfg.UserAgent = viper.GetString("graph.user_agent")
	if cfg.UserAgent == "" {
		cfg.UserAgent = "sheetfeed/" + version
	}

	return cfg
}

func exportConfig(cmd *cobra.Command) types.ExportConfig {
	cfg := types.ExportConfig{
		OutDir:      stringSetting(cmd, "out", "export.out_dir"),
		Basename:    stringSetting(cmd, "basename", "export.basename"),
		StockColumn: stringSetting(cmd, "stock-column", "export.stock_column"),
		StampColumn: viper.GetString("export.stamp_column"),
		UTCOffset:   stringSetting(cmd, "utc-offset", "export.utc_offset"),
	}

	formats := stringSetting(cmd, "formats", "")
	if formats == "" {
		formats = strings.Join(viper.GetStringSlice("export.formats"), ",")
	}
	if formats != "" {
		cfg.Formats = strings.Split(formats, ",")
	}

	return cfg
}

// validateGraphConfig checks the settings a Graph export cannot run without.
func validateGraphConfig(cfg types.GraphConfig) error {
	missing := func(name, v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("missing required setting %s", name)
		}
		return nil
	}

	checks := []error{
		missing("tenant-id", cfg.TenantID),
		missing("client-id", cfg.ClientID),
		missing("client-secret", cfg.ClientSecret),
		missing("site-hostname", cfg.SiteHostname),
		missing("site-path", cfg.SitePath),
		missing("workbook", cfg.WorkbookPath),
		missing("table", cfg.TableName),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	start := time.Now()

	gcfg := graphConfig(cmd)
	ecfg := exportConfig(cmd)
	if ecfg.OutDir == "" {
		ecfg.OutDir = export.DefaultOutDir
	}
	fromFile := stringSetting(cmd, "from-file", "")

	if gcfg.TableName == "" {
		return fmt.Errorf("missing required setting table")
	}

	ctx := cmd.Context()

	var src export.Source
	if fromFile != "" {
		src = &export.FileSource{Path: fromFile, TableName: gcfg.TableName}
	} else {
		if err := validateGraphConfig(gcfg); err != nil {
			return err
		}
		src = &export.GraphSource{
			Client:   graph.NewClient(ctx, gcfg),
			Config:   gcfg,
			Progress: os.Stderr,
		}
	}

	logger.Info("starting export",
		slog.String("source", src.Name()),
		slog.String("table", gcfg.TableName))

	result, err := export.Run(ctx, src, ecfg, start, os.Stderr)

	run := types.Run{
		StartedAt: start,
		Source:    src.Name(),
		TableName: gcfg.TableName,
		Rows:      result.Rows,
		Formats:   feed.FormatNames(result.Formats),
		OutDir:    ecfg.OutDir,
		Status:    types.RunOK,
	}
	if err != nil {
		run.Status = types.RunError
		run.Error = err.Error()
	}
	recordRun(run)

	if err != nil {
		logger.Error("export failed", slog.String("error", err.Error()))
		return err
	}

	logger.Info("export complete",
		slog.String("table", result.Table),
		slog.Int("rows", result.Rows),
		slog.String("files", strings.Join(result.Paths, ", ")))
	return nil
}

// recordRun appends the run to the ledger. Ledger failures are warnings:
// they must never fail an export that already wrote its feeds.
func recordRun(run types.Run) {
	if !viper.GetBool("history.enabled") {
		return
	}

	store, err := history.Open(viper.GetString("history.db_path"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open export ledger: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(context.Background(), run); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record export run: %v\n", err)
	}
}
