package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/polyclient/export"
	"github.com/s0up4200/polyclient/polygon"
)

var (
	aggsFrom       string
	aggsTo         string
	aggsMultiplier int
	aggsTimespan   string
	aggsSort       string
	aggsLimit      int
	aggsUnadjusted bool
)

// aggsCmd represents the aggs command
var aggsCmd = &cobra.Command{
	Use:   "aggs TICKER",
	Short: "Fetch aggregate bars for a ticker",
	Long: `Fetch aggregate (OHLCV) bars for a ticker over a date range.

Examples:
  polyclient aggs AAPL --from 2024-01-01 --to 2024-01-31
  polyclient aggs MSFT --from 2024-03-01 --to 2024-03-01 --multiplier 5 --timespan minute -o csv
  polyclient aggs TSLA --from 2024-01-01 -f "Close > Open and Volume > 1e8"`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runAggs,
}

func init() {
	rootCmd.AddCommand(aggsCmd)

	aggsCmd.Flags().StringVar(&aggsFrom, "from", "", "start date (YYYY-MM-DD)")
	aggsCmd.Flags().StringVar(&aggsTo, "to", "today", "end date (YYYY-MM-DD)")
	aggsCmd.Flags().IntVarP(&aggsMultiplier, "multiplier", "m", 1, "size of the timespan multiplier")
	aggsCmd.Flags().StringVarP(&aggsTimespan, "timespan", "t", string(polygon.TimespanDay), "bar size: second, minute, hour, day, week, month, quarter, year")
	aggsCmd.Flags().StringVar(&aggsSort, "sort", "", "sort by timestamp: asc or desc")
	aggsCmd.Flags().IntVar(&aggsLimit, "limit", 0, "maximum number of base aggregates (max 50000)")
	aggsCmd.Flags().BoolVar(&aggsUnadjusted, "unadjusted", false, "do not adjust results for splits")
	_ = aggsCmd.MarkFlagRequired("from")
}

func runAggs(cmd *cobra.Command, args []string) error {
	from, err := parseDate(aggsFrom)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := parseDate(aggsTo)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	barFilter, err := compileFilter[polygon.Bar]()
	if err != nil {
		return err
	}

	req := polygon.AggregatesRequest{
		Ticker:     strings.ToUpper(args[0]),
		Multiplier: aggsMultiplier,
		Timespan:   polygon.Timespan(strings.ToLower(aggsTimespan)),
		From:       from,
		To:         to,
		Unadjusted: aggsUnadjusted,
		Sort:       polygon.SortOrder(strings.ToLower(aggsSort)),
		Limit:      aggsLimit,
	}

	logger.Info().
		Str("ticker", req.Ticker).
		Str("from", from.Format(polygon.DateLayout)).
		Str("to", to.Format(polygon.DateLayout)).
		Str("timespan", fmt.Sprintf("%d %s", req.Multiplier, req.Timespan)).
		Msg("Fetching aggregates")

	resp, err := client.GetAggregates(cmd.Context(), req)
	if err := checkStatus("aggregates request", resp.Status, err); err != nil {
		return err
	}

	bars, err := barFilter.Apply(resp.Results)
	if err != nil {
		return err
	}

	logger.Info().
		Str("ticker", resp.Ticker).
		Int("bars", resp.ResultsCount).
		Int("matched", len(bars)).
		Str("status", resp.Status.String()).
		Msg("Retrieved aggregates")

	return writeResults(cmd, bars, export.Bars)
}
