package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"scoutWorkspace/internal/config"
	"scoutWorkspace/internal/shared/logging"
)

var rootCmd = &cobra.Command{
	Use:   "scout-workspace",
	Short: "Scouting workspace gateway",
	Long: `Runs the scouting workspace engine: per-session catalog search with
load-more pagination, saved searches, a two-player comparison and shortlists
synchronised with the scouting API.

Without a subcommand the HTTP and websocket gateway is started.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, searchCmd)
}

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config load error: %w", err)
	}
	return cfg, nil
}

// setupLogging writes to stdout and the daily log file, and routes the
// standard log package through the same writer.
func setupLogging(cfg config.LoggingConfig, console io.Writer) (*os.File, *slog.Logger, error) {
	file, err := logging.OpenDailyFile(cfg.Directory, time.Now())
	if err != nil {
		return nil, nil, err
	}

	writer := io.MultiWriter(console, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
