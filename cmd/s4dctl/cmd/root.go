package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arx-os/s4d/internal/logger"
)

var (
	cfgPath string
	jsonLog bool
)

var rootCmd = &cobra.Command{
	Use:   "s4dctl",
	Short: "Inspect and manipulate s4d spatiotemporal identifiers",
}

// Execute runs the root command, returning any error it produces.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "emit logs as JSON")
	cobra.OnInitialize(func() {
		if jsonLog {
			logger.UseJSON()
		}
		if cfgPath != "" {
			if cfg, err := loadConfig(); err == nil {
				logger.SetLevel(cfg.Logging.Level)
				if cfg.Logging.JSON {
					logger.UseJSON()
				}
			}
		}
	})
}
