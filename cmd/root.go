package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/polyclient/config"
	"github.com/s0up4200/polyclient/export"
	"github.com/s0up4200/polyclient/polygon"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  polygon.API

	// Persistent flags
	outputFormat string
	outFile      string
	filterExpr   string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "polyclient",
	Short: "Query the Polygon.io market data REST API",
	Long: `polyclient fetches aggregate bars, ticker reference data and market snapshots
from the Polygon.io REST API and writes them as a table, JSON, CSV or Parquet.

The API token is read from the config file or from the POLYCLIENT_POLYGON_TOKEN
or POLYGON_API_KEY environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: "+export.FormatNames()+" (default from config)")
	rootCmd.PersistentFlags().StringVar(&outFile, "out", "", "write results to a file instead of stdout")
	rootCmd.PersistentFlags().StringVarP(&filterExpr, "filter", "f", "", "filter expression or the name of a filter from config")
}

// initializeApp loads the configuration and creates the Polygon client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create Polygon client
	client, err = polygon.NewClient(cfg.Polygon.Token, logger,
		polygon.WithBaseURL(cfg.Polygon.BaseURL),
		polygon.WithTimeout(cfg.Polygon.Timeout),
		polygon.WithUserAgent(cfg.Polygon.UserAgent),
		polygon.WithMaxPages(cfg.Polygon.MaxPages),
	)
	if err != nil {
		return fmt.Errorf("failed to create Polygon client: %w", err)
	}

	logger.Debug().
		Str("base_url", cfg.Polygon.BaseURL).
		Dur("timeout", cfg.Polygon.Timeout).
		Int("max_pages", cfg.Polygon.MaxPages).
		Msg("Polygon client ready")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
