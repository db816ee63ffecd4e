// Package export writes Polygon results as a table, JSON, CSV or Parquet.
package export

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnsupportedFormat is returned for an unknown output format
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Format is an output format
type Format string

const (
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// Formats lists the supported formats
var Formats = []Format{FormatTable, FormatJSON, FormatCSV, FormatParquet}

// ParseFormat parses a format name case-insensitively. An empty name means table.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if f == "" {
		return FormatTable, nil
	}
	if slices.Contains(Formats, f) {
		return f, nil
	}
	return "", fmt.Errorf("%w %q (use: %s)", ErrUnsupportedFormat, name, FormatNames())
}

// FormatNames returns the supported format names as a comma separated list
func FormatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Binary reports whether the format should not be written to a terminal
func (f Format) Binary() bool {
	return f == FormatParquet
}
