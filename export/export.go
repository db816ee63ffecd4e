package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/parquet-go/parquet-go"

	"github.com/s0up4200/polyclient/polygon"
)

type row interface {
	record() []string
}

// Bars writes aggregate bars to w
func Bars(w io.Writer, format Format, bars []polygon.Bar) error {
	return write(w, format, bars, barColumns, newBarRow)
}

// Tickers writes ticker reference data to w
func Tickers(w io.Writer, format Format, tickers []polygon.TickerDetails) error {
	return write(w, format, tickers, tickerColumns, newTickerRow)
}

// Snapshots writes snapshot tickers to w
func Snapshots(w io.Writer, format Format, snapshots []polygon.SnapshotTicker) error {
	return write(w, format, snapshots, snapshotColumns, newSnapshotRow)
}

// write renders items in format. JSON keeps the full item; the other formats
// use the flat row produced by toRow.
func write[T any, R row](w io.Writer, format Format, items []T, columns []string, toRow func(T) R) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if items == nil {
			items = []T{}
		}
		return enc.Encode(items)
	}

	rows := make([]R, len(items))
	for i, item := range items {
		rows[i] = toRow(item)
	}

	switch format {
	case FormatTable:
		return writeTable(w, columns, rows)
	case FormatCSV:
		return writeCSV(w, columns, rows)
	case FormatParquet:
		if err := parquet.Write(w, rows); err != nil {
			return fmt.Errorf("failed to write parquet: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
}

func writeCSV[R row](w io.Writer, columns []string, rows []R) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeTable[R row](w io.Writer, columns []string, rows []R) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = strings.ToUpper(c)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r.record(), "\t"))
	}
	return tw.Flush()
}
