package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/polyclient/export"
	"github.com/s0up4200/polyclient/polygon"
)

var snapshotIncludeOTC bool

// snapshotCmd represents the snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot [TICKER...]",
	Short: "Show the current market snapshot of tickers",
	Long: `Show the current trading snapshot of the given tickers, or of the whole
US stock market when no ticker is given.

Examples:
  polyclient snapshot AAPL MSFT NVDA
  polyclient snapshot -f "TodaysChangePerc > 10 and LastPrice() > 5" -o csv`,
	PreRunE: initializeApp,
	RunE:    runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)

	snapshotCmd.Flags().BoolVar(&snapshotIncludeOTC, "include-otc", false, "include OTC securities")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	snapshotFilter, err := compileFilter[polygon.SnapshotTicker]()
	if err != nil {
		return err
	}

	tickers := make([]string, len(args))
	for i, arg := range args {
		tickers[i] = strings.ToUpper(arg)
	}

	resp, err := client.GetSnapshot(cmd.Context(), polygon.SnapshotRequest{
		Tickers:    tickers,
		IncludeOTC: snapshotIncludeOTC,
	})
	if err := checkStatus("snapshot request", resp.Status, err); err != nil {
		return err
	}

	snapshots, err := snapshotFilter.Apply(resp.Tickers)
	if err != nil {
		return err
	}

	logger.Info().
		Int("tickers", resp.Count).
		Int("matched", len(snapshots)).
		Msg("Retrieved snapshot")

	return writeResults(cmd, snapshots, export.Snapshots)
}
