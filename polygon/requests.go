package polygon

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format of date path segments and query parameters
const DateLayout = "2006-01-02"

const (
	maxAggregatesLimit = 50000
	maxTickersLimit    = 1000
)

// Timespan is the size of the time window of an aggregate bar
type Timespan string

const (
	TimespanSecond  Timespan = "second"
	TimespanMinute  Timespan = "minute"
	TimespanHour    Timespan = "hour"
	TimespanDay     Timespan = "day"
	TimespanWeek    Timespan = "week"
	TimespanMonth   Timespan = "month"
	TimespanQuarter Timespan = "quarter"
	TimespanYear    Timespan = "year"
)

// Valid reports whether t is a timespan the API accepts
func (t Timespan) Valid() bool {
	switch t {
	case TimespanSecond, TimespanMinute, TimespanHour, TimespanDay,
		TimespanWeek, TimespanMonth, TimespanQuarter, TimespanYear:
		return true
	}
	return false
}

// SortOrder orders results by timestamp or by the requested sort field
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Valid reports whether o is empty (server default) or a known order
func (o SortOrder) Valid() bool {
	return o == "" || o == SortAsc || o == SortDesc
}

// AggregatesRequest selects aggregate bars for one ticker
type AggregatesRequest struct {
	Ticker     string
	Multiplier int
	Timespan   Timespan
	From       time.Time
	To         time.Time
	Unadjusted bool      // request prices not adjusted for splits
	Sort       SortOrder // optional
	Limit      int       // optional, at most 50000
}

// Validate checks the request without sending it
func (r AggregatesRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Ticker) == "":
		return invalidRequest("ticker is required")
	case r.Multiplier <= 0:
		return invalidRequest("multiplier must be positive, got %d", r.Multiplier)
	case !r.Timespan.Valid():
		return invalidRequest("unknown timespan %q", r.Timespan)
	case r.From.IsZero() || r.To.IsZero():
		return invalidRequest("from and to dates are required")
	case r.From.Format(DateLayout) > r.To.Format(DateLayout):
		// compare the dates as sent, each in its own zone
		return invalidRequest("from %s is after to %s", r.From.Format(DateLayout), r.To.Format(DateLayout))
	case !r.Sort.Valid():
		return invalidRequest("unknown sort order %q", r.Sort)
	case r.Limit < 0 || r.Limit > maxAggregatesLimit:
		return invalidRequest("limit must be between 1 and %d, got %d", maxAggregatesLimit, r.Limit)
	}
	return nil
}

// buildURL validates the request and returns the absolute request URL
func (r AggregatesRequest) buildURL(base *url.URL) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("adjusted", strconv.FormatBool(!r.Unadjusted))
	if r.Sort != "" {
		params.Set("sort", string(r.Sort))
	}
	if r.Limit > 0 {
		params.Set("limit", strconv.Itoa(r.Limit))
	}

	return endpoint(base, params,
		"v2", "aggs", "ticker", strings.TrimSpace(r.Ticker),
		"range", strconv.Itoa(r.Multiplier), string(r.Timespan),
		r.From.Format(DateLayout), r.To.Format(DateLayout),
	), nil
}

// TickerDetailsRequest selects reference data for one ticker
type TickerDetailsRequest struct {
	Ticker string
	Date   time.Time // optional as-of date
}

// Validate checks the request without sending it
func (r TickerDetailsRequest) Validate() error {
	if strings.TrimSpace(r.Ticker) == "" {
		return invalidRequest("ticker is required")
	}
	return nil
}

func (r TickerDetailsRequest) buildURL(base *url.URL) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	params := url.Values{}
	if !r.Date.IsZero() {
		params.Set("date", r.Date.Format(DateLayout))
	}
	return endpoint(base, params, "v3", "reference", "tickers", strings.TrimSpace(r.Ticker)), nil
}

// TickersRequest filters the ticker list. Zero-valued fields are not sent.
type TickersRequest struct {
	Ticker   string
	Type     string
	Market   string
	Exchange string
	CUSIP    string
	CIK      string
	Search   string
	Date     time.Time
	Active   *bool
	Order    SortOrder
	Sort     string // field to sort by, e.g. ticker or name
	Limit    int    // page size, at most 1000
}

// Validate checks the request without sending it
func (r TickersRequest) Validate() error {
	switch {
	case !r.Order.Valid():
		return invalidRequest("unknown order %q", r.Order)
	case r.Limit < 0 || r.Limit > maxTickersLimit:
		return invalidRequest("limit must be between 1 and %d, got %d", maxTickersLimit, r.Limit)
	}
	return nil
}

func (r TickersRequest) buildURL(base *url.URL) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	params := url.Values{}
	setIfNotEmpty(params, "ticker", r.Ticker)
	setIfNotEmpty(params, "type", r.Type)
	setIfNotEmpty(params, "market", r.Market)
	setIfNotEmpty(params, "exchange", r.Exchange)
	setIfNotEmpty(params, "cusip", r.CUSIP)
	setIfNotEmpty(params, "cik", r.CIK)
	setIfNotEmpty(params, "search", r.Search)
	setIfNotEmpty(params, "order", string(r.Order))
	setIfNotEmpty(params, "sort", r.Sort)
	if !r.Date.IsZero() {
		params.Set("date", r.Date.Format(DateLayout))
	}
	if r.Active != nil {
		params.Set("active", strconv.FormatBool(*r.Active))
	}
	if r.Limit > 0 {
		params.Set("limit", strconv.Itoa(r.Limit))
	}
	return endpoint(base, params, "v3", "reference", "tickers"), nil
}

// SnapshotRequest selects tickers for a snapshot. No tickers means the whole market.
type SnapshotRequest struct {
	Tickers    []string
	IncludeOTC bool
}

// Validate checks the request without sending it
func (r SnapshotRequest) Validate() error {
	for i, t := range r.Tickers {
		if strings.TrimSpace(t) == "" {
			return invalidRequest("ticker %d is empty", i+1)
		}
	}
	return nil
}

func (r SnapshotRequest) buildURL(base *url.URL) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	params := url.Values{}
	if len(r.Tickers) > 0 {
		tickers := make([]string, len(r.Tickers))
		for i, t := range r.Tickers {
			tickers[i] = strings.TrimSpace(t)
		}
		params.Set("tickers", strings.Join(tickers, ","))
	}
	params.Set("include_otc", strconv.FormatBool(r.IncludeOTC))
	return endpoint(base, params, "v2", "snapshot", "locale", "us", "markets", "stocks", "tickers"), nil
}

func setIfNotEmpty(params url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		params.Set(key, value)
	}
}

// endpoint joins escaped path segments onto base and attaches the query
func endpoint(base *url.URL, params url.Values, segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}

	u := *base
	u.RawPath = strings.TrimRight(base.EscapedPath(), "/") + "/" + strings.Join(escaped, "/")
	u.Path = strings.TrimRight(base.Path, "/") + "/" + strings.Join(segments, "/")
	u.RawQuery = params.Encode()
	u.Fragment = ""
	return u.String()
}
