// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pharma-papers CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pharma-papers/internal/pubmed"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultUserAgent = "pharma-papers/0.1"
	defaultTool      = "pharma-papers"
)

// rootCmd is the base command for the pharma-papers CLI.
var rootCmd = &cobra.Command{
	Use:   "pharma-papers",
	Short: "Find PubMed papers with pharma/biotech-affiliated authors",
	Long: `pharma-papers searches PubMed through NCBI E-utilities and keeps the
papers where at least one author lists a commercial affiliation (pharma,
biotech, Inc., Ltd., GmbH and similar). Results are printed to the terminal
or written as CSV, JSON, a YAML saved search, or a SQLite export.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pharma-papers.yaml or ~/.config/pharma-papers/pharma-papers.yaml)")

	viper.SetDefault("limit", pubmed.DefaultLimit)
	viper.SetDefault("timeout", pubmed.DefaultTimeout)
	viper.SetDefault("user_agent", defaultUserAgent)
	viper.SetDefault("eutils_base", pubmed.DefaultBaseURL)
	viper.SetDefault("tool", defaultTool)
	viper.SetDefault("email", "")
	viper.SetDefault("log_level", "warn")
}

func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pharma-papers")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pharma-papers"))
		}
	}

	viper.SetEnvPrefix("PHARMA_PAPERS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
