// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the sheetfeed CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/sheetfeed/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from the secrets directory at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the sheetfeed CLI.
var rootCmd = &cobra.Command{
	Use:   "sheetfeed",
	Short: "Publish SharePoint workbook tables as static feed files",
	Long: `sheetfeed exports a SharePoint-hosted Excel workbook table through the
Microsoft Graph API and publishes it as XML, CSV and JSON feed files for
static-site consumers.

The export subcommand runs the whole pipeline in one shot: resolve the
site and workbook, read the table, bucket the stock column, stamp every
row with the run time, and write the feeds. The history subcommand lists
past runs from the export ledger.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("secrets")
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./sheetfeed.yaml or ~/.config/sheetfeed/config.yaml)")
	rootCmd.PersistentFlags().String("secrets", ".secrets/", "directory of secret key files")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sheetfeed")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sheetfeed"))
		}
	}

	viper.SetEnvPrefix("SHEETFEED")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("graph.timeout", "40s")
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.db_path", filepath.Join(".sheetfeed", "history.db"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
