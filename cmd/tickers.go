package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/polyclient/export"
	"github.com/s0up4200/polyclient/polygon"
)

var (
	tickerDate string

	tickersSearch   string
	tickersTicker   string
	tickersType     string
	tickersMarket   string
	tickersExchange string
	tickersCUSIP    string
	tickersCIK      string
	tickersDate     string
	tickersActive   bool
	tickersOrder    string
	tickersSort     string
	tickersLimit    int
)

// tickerCmd represents the ticker command
var tickerCmd = &cobra.Command{
	Use:   "ticker TICKER",
	Short: "Show reference details for a ticker",
	Long: `Show reference details for a ticker, optionally as of a past date.

Examples:
  polyclient ticker AAPL
  polyclient ticker META --date 2021-10-01 -o json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runTicker,
}

// tickersCmd represents the tickers command
var tickersCmd = &cobra.Command{
	Use:   "tickers",
	Short: "Search and list tickers",
	Long: `Search and list tickers, following every page of results.

If a later page fails the tickers collected so far are still written.

Examples:
  polyclient tickers --search apple
  polyclient tickers --market crypto --limit 1000 -o parquet --out crypto.parquet
  polyclient tickers --type ETF -f 'like(Name, "treasury")'`,
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE:    runTickers,
}

func init() {
	rootCmd.AddCommand(tickerCmd)
	rootCmd.AddCommand(tickersCmd)

	tickerCmd.Flags().StringVar(&tickerDate, "date", "", "show details as of this date (YYYY-MM-DD)")

	tickersCmd.Flags().StringVarP(&tickersSearch, "search", "s", "", "search ticker symbols and company names")
	tickersCmd.Flags().StringVar(&tickersTicker, "ticker", "", "exact ticker symbol")
	tickersCmd.Flags().StringVar(&tickersType, "type", "", "ticker type, e.g. CS or ETF")
	tickersCmd.Flags().StringVar(&tickersMarket, "market", "", "market: stocks, crypto, fx, otc or indices")
	tickersCmd.Flags().StringVar(&tickersExchange, "exchange", "", "primary exchange MIC, e.g. XNAS")
	tickersCmd.Flags().StringVar(&tickersCUSIP, "cusip", "", "CUSIP code")
	tickersCmd.Flags().StringVar(&tickersCIK, "cik", "", "SEC central index key")
	tickersCmd.Flags().StringVar(&tickersDate, "date", "", "list tickers available on this date (YYYY-MM-DD)")
	tickersCmd.Flags().BoolVar(&tickersActive, "active", true, "only actively traded tickers (--active=false for delisted)")
	tickersCmd.Flags().StringVar(&tickersOrder, "order", "", "order: asc or desc")
	tickersCmd.Flags().StringVar(&tickersSort, "sort", "", "field to sort by, e.g. ticker or name")
	tickersCmd.Flags().IntVar(&tickersLimit, "limit", 0, "page size (max 1000)")
}

func runTicker(cmd *cobra.Command, args []string) error {
	date, err := parseOptionalDate(tickerDate)
	if err != nil {
		return fmt.Errorf("--date: %w", err)
	}

	tickerFilter, err := compileFilter[polygon.TickerDetails]()
	if err != nil {
		return err
	}

	req := polygon.TickerDetailsRequest{
		Ticker: strings.ToUpper(args[0]),
		Date:   date,
	}

	resp, err := client.GetTickerDetails(cmd.Context(), req)
	if err := checkStatus("ticker details request", resp.Status, err); err != nil {
		return err
	}

	var details []polygon.TickerDetails
	if resp.Results != nil {
		details = append(details, *resp.Results)
	}
	details, err = tickerFilter.Apply(details)
	if err != nil {
		return err
	}

	return writeResults(cmd, details, export.Tickers)
}

func runTickers(cmd *cobra.Command, args []string) error {
	date, err := parseOptionalDate(tickersDate)
	if err != nil {
		return fmt.Errorf("--date: %w", err)
	}

	tickerFilter, err := compileFilter[polygon.TickerDetails]()
	if err != nil {
		return err
	}

	req := polygon.TickersRequest{
		Ticker:   strings.ToUpper(tickersTicker),
		Type:     tickersType,
		Market:   tickersMarket,
		Exchange: tickersExchange,
		CUSIP:    tickersCUSIP,
		CIK:      tickersCIK,
		Search:   tickersSearch,
		Date:     date,
		Order:    polygon.SortOrder(strings.ToLower(tickersOrder)),
		Sort:     tickersSort,
		Limit:    tickersLimit,
	}
	if cmd.Flags().Changed("active") {
		active := tickersActive
		req.Active = &active
	}

	logger.Info().
		Str("search", req.Search).
		Str("market", req.Market).
		Msg("Listing tickers")

	resp, err := client.ListTickers(cmd.Context(), req)
	if err := checkStatus("tickers request", resp.Status, err); err != nil {
		return err
	}

	tickers, err := tickerFilter.Apply(resp.Results)
	if err != nil {
		return err
	}

	logger.Info().
		Int("tickers", resp.Count).
		Int("matched", len(tickers)).
		Msg("Retrieved tickers")

	return writeResults(cmd, tickers, export.Tickers)
}
