// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package cmd

import (
	"fmt"
	"os"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/config"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/logger/log"
	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "talent-matcher",
	Short: "Talent Matcher - hybrid semantic and keyword candidate matching",
	Long: `Talent Matcher embeds the skill taxonomy and candidate profiles and
serves hybrid candidate search over pgvector with a keyword fallback.

Example:
  talent-matcher serve --config /etc/talent-matcher/config.yaml
  talent-matcher backfill --target candidates --force`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $CONFIG_PATH or /etc/talent-matcher/config.yaml)")
}

// loadConfig loads configuration and initializes the global logger from it
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		if err := os.Setenv("CONFIG_PATH", cfgFile); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := log.InitGlobalLogger(&cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}
