package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/s0up4200/polyclient/export"
	"github.com/s0up4200/polyclient/filter"
	"github.com/s0up4200/polyclient/polygon"
)

// resolveFormat returns the --output format, falling back to the configured one
func resolveFormat() (export.Format, error) {
	if outputFormat != "" {
		return export.ParseFormat(outputFormat)
	}
	return export.ParseFormat(cfg.Output.Format)
}

// compileFilter compiles --filter for items of type T. The flag may name a
// filter from the config file. An empty flag yields a nil filter.
func compileFilter[T any]() (*filter.Filter[T], error) {
	expression := strings.TrimSpace(filterExpr)
	if expression == "" {
		return nil, nil
	}
	if named, ok := cfg.Filters[strings.ToLower(expression)]; ok {
		expression = named
	}

	f, err := filter.Compile[T](expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return f, nil
}

// openOutput returns the writer results go to and a function that closes it
func openOutput(cmd *cobra.Command, format export.Format) (io.Writer, func() error, error) {
	if outFile == "" {
		out := cmd.OutOrStdout()
		if f, ok := out.(*os.File); ok && format.Binary() && isatty.IsTerminal(f.Fd()) {
			return nil, nil, fmt.Errorf("refusing to write %s to a terminal, use --out FILE or redirect stdout", format)
		}
		return out, func() error { return nil }, nil
	}

	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// writeResults filters items and writes them with write
func writeResults[T any](cmd *cobra.Command, items []T, write func(io.Writer, export.Format, []T) error) error {
	format, err := resolveFormat()
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cmd, format)
	if err != nil {
		return err
	}

	if err := write(out, format, items); err != nil {
		closeOut()
		if outFile != "" {
			if rmErr := os.Remove(outFile); rmErr != nil {
				logger.Warn().Err(rmErr).Str("file", outFile).Msg("Failed to remove partial output file")
			}
		}
		return fmt.Errorf("failed to write results: %w", err)
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	if outFile != "" {
		logger.Info().Str("file", outFile).Int("count", len(items)).Msg("Results written")
	}
	return nil
}

// checkStatus turns a failure status into a command error
func checkStatus(operation string, status polygon.Status, err error) error {
	if err != nil {
		return fmt.Errorf("%s failed with status %s: %w", operation, status, err)
	}
	if !status.IsSuccess() {
		return fmt.Errorf("%s failed with status %s", operation, status)
	}
	return nil
}

// parseDate parses a YYYY-MM-DD date. "today" is accepted as a shortcut.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "today") {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(polygon.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return t, nil
}

// parseOptionalDate is parseDate for flags that may be empty
func parseOptionalDate(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	return parseDate(value)
}
