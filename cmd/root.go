package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	Logger  *slog.Logger

	rootCmd = &cobra.Command{
		Use:   "jpartition",
		Short: "A parallel JSON partitioning engine",
		Long: `jpartition divides large JSON documents across byte ranges so that
independent workers can parse each range while preserving its nested
syntactic context. It supports a fast speculation strategy using rare key
anchors, and an exact full-pass strategy that scans and reconciles every
partition.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	setupLogger()
}

// setupLogger configures the global slog logger based on the verbose flag.
func setupLogger() {
	var opts *slog.HandlerOptions
	if verbose {
		opts = &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true}
	} else {
		opts = &slog.HandlerOptions{Level: slog.LevelInfo}
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	if verbose {
		Logger.Debug("verbose logging enabled", "level", slog.LevelDebug.String(), "pid", os.Getpid())
	}
}

// GetLogger returns the global logger instance.
func GetLogger() *slog.Logger {
	if Logger == nil {
		setupLogger()
	}
	return Logger
}

// ValidateInputPath checks that the provided input path exists and is
// accessible before a run begins. Glob patterns are left to the filesystem
// collaborator to resolve and are not stat'd directly.
func ValidateInputPath(path string) error {
	if path == "" {
		return fmt.Errorf("input path is required")
	}
	if strings.ContainsAny(path, "*?[{") {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input path does not exist: %s", path)
		}
		return fmt.Errorf("error accessing input path: %w", err)
	}
	return nil
}
