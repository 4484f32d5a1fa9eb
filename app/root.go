// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/lmsforge/lms-backend/internal/config"
	"github.com/lmsforge/lms-backend/internal/logger"
)

var (
	configPath string // directory holding main.toml

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "lms-backend",
		Short: "lms-backend serves the learning management REST API",
		Long: `lms-backend serves the learning management REST API: organizations and their
groups and invitations, courses with quizzes, study groups, notes and practice.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "directory of main.toml")
}

// loadConfig reads the configuration and initializes the global logger from it.
func loadConfig() error {
	var err error
	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	return logger.Init(cfg.Log)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
