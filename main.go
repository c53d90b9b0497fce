package main

import (
	"fmt"
	"os"

	"mitra-support-backend/config"
	"mitra-support-backend/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	envFile string
	verbose bool

	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mitra",
	Short: "MITRA student mental-health support backend",
	Long: `MITRA serves the bilingual (English/Hindi) support chat and the
PHQ-9 / GAD-7 self-screening questionnaires.

Run "mitra serve" to start the HTTP API. The other commands run the
classifier and scorer locally for testing lexicon changes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		if envFile != "" {
			files = append(files, envFile)
		}
		if err := config.Load(files...); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		cfg := config.Get()
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}

		var err error
		logger, err = utils.NewLogger(cfg.Environment, level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment from this file instead of .env")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd, classifyCmd, screenCmd, instrumentsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
