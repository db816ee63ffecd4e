package polygon

import (
	"time"
)

// Bar is one OHLCV aggregate for a ticker over a time bucket
type Bar struct {
	Open         float64 `json:"o"`
	High         float64 `json:"h"`
	Low          float64 `json:"l"`
	Close        float64 `json:"c"`
	Volume       float64 `json:"v"`
	VWAP         float64 `json:"vw,omitempty"` // Volume weighted average price
	Timestamp    int64   `json:"t,omitempty"`  // Unix milliseconds at the start of the bucket
	Transactions int64   `json:"n,omitempty"`
	OTC          bool    `json:"otc,omitempty"`
}

// Time returns the start of the bar's bucket in UTC
func (b Bar) Time() time.Time {
	return time.UnixMilli(b.Timestamp).UTC()
}

// Address is the registered address of a ticker's issuer
type Address struct {
	Address1   string `json:"address1,omitempty"`
	Address2   string `json:"address2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// Branding holds links to the issuer's logo and icon
type Branding struct {
	LogoURL string `json:"logo_url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

// TickerDetails describes one exchange-listed symbol. The list endpoint fills
// the first block of fields; the details endpoint fills all of them.
type TickerDetails struct {
	Ticker          string `json:"ticker"`
	Name            string `json:"name"`
	Market          string `json:"market"`
	Locale          string `json:"locale"`
	PrimaryExchange string `json:"primary_exchange,omitempty"`
	Type            string `json:"type,omitempty"`
	Active          bool   `json:"active"`
	CurrencyName    string `json:"currency_name,omitempty"`
	CIK             string `json:"cik,omitempty"`
	CompositeFIGI   string `json:"composite_figi,omitempty"`
	ShareClassFIGI  string `json:"share_class_figi,omitempty"`
	LastUpdatedUTC  string `json:"last_updated_utc,omitempty"`
	DelistedUTC     string `json:"delisted_utc,omitempty"`

	Description                 string    `json:"description,omitempty"`
	HomepageURL                 string    `json:"homepage_url,omitempty"`
	ListDate                    string    `json:"list_date,omitempty"`
	MarketCap                   float64   `json:"market_cap,omitempty"`
	PhoneNumber                 string    `json:"phone_number,omitempty"`
	SICCode                     string    `json:"sic_code,omitempty"`
	SICDescription              string    `json:"sic_description,omitempty"`
	TickerRoot                  string    `json:"ticker_root,omitempty"`
	TickerSuffix                string    `json:"ticker_suffix,omitempty"`
	TotalEmployees              int64     `json:"total_employees,omitempty"`
	RoundLot                    int64     `json:"round_lot,omitempty"`
	ShareClassSharesOutstanding int64     `json:"share_class_shares_outstanding,omitempty"`
	WeightedSharesOutstanding   int64     `json:"weighted_shares_outstanding,omitempty"`
	Address                     *Address  `json:"address,omitempty"`
	Branding                    *Branding `json:"branding,omitempty"`
}

// MinuteBar is the most recent minute bar in a snapshot
type MinuteBar struct {
	Bar
	AccumulatedVolume float64 `json:"av,omitempty"`
}

// Trade is the last trade seen for a ticker
type Trade struct {
	Conditions []int   `json:"c,omitempty"`
	ID         string  `json:"i,omitempty"`
	Price      float64 `json:"p"`
	Size       float64 `json:"s"`
	Timestamp  int64   `json:"t"` // Unix nanoseconds
	Exchange   int     `json:"x,omitempty"`
}

// Quote is the last NBBO quote seen for a ticker.
// Ask fields use upper case keys and bid fields lower case keys on the wire.
type Quote struct {
	AskPrice  float64 `json:"P"`
	AskSize   float64 `json:"S"`
	BidPrice  float64 `json:"p"`
	BidSize   float64 `json:"s"`
	Timestamp int64   `json:"t"` // Unix nanoseconds
}

// SnapshotTicker is the point-in-time trading state of one ticker
type SnapshotTicker struct {
	Ticker           string    `json:"ticker"`
	TodaysChange     float64   `json:"todaysChange"`
	TodaysChangePerc float64   `json:"todaysChangePerc"`
	Updated          int64     `json:"updated"` // Unix nanoseconds
	Day              Bar       `json:"day"`
	PrevDay          Bar       `json:"prevDay"`
	Min              MinuteBar `json:"min"`
	LastTrade        *Trade    `json:"lastTrade,omitempty"`
	LastQuote        *Quote    `json:"lastQuote,omitempty"`
}

// LastPrice returns the best known current price: the last trade, then the
// latest minute close, then today's close, then the previous close.
func (s SnapshotTicker) LastPrice() float64 {
	switch {
	case s.LastTrade != nil && s.LastTrade.Price > 0:
		return s.LastTrade.Price
	case s.Min.Close > 0:
		return s.Min.Close
	case s.Day.Close > 0:
		return s.Day.Close
	default:
		return s.PrevDay.Close
	}
}

// UpdatedAt returns the snapshot update time in UTC
func (s SnapshotTicker) UpdatedAt() time.Time {
	if s.Updated == 0 {
		return time.Time{}
	}
	return time.Unix(0, s.Updated).UTC()
}

// AggregatesResponse is returned by GetAggregates
type AggregatesResponse struct {
	Ticker       string `json:"ticker"`
	Adjusted     bool   `json:"adjusted"`
	QueryCount   int    `json:"queryCount"`
	ResultsCount int    `json:"resultsCount"`
	RequestID    string `json:"request_id,omitempty"`
	Status       Status `json:"status"`
	StatusCode   int    `json:"-"` // HTTP status observed, or synthesized on local failures
	Results      []Bar  `json:"results"`
	NextURL      string `json:"next_url,omitempty"`
}

// TickerDetailsResponse is returned by GetTickerDetails
type TickerDetailsResponse struct {
	RequestID  string         `json:"request_id,omitempty"`
	Status     Status         `json:"status"`
	StatusCode int            `json:"-"`
	Count      int            `json:"count"`
	Results    *TickerDetails `json:"results"`
}

// TickersResponse is returned by ListTickers and also decodes a single page of the list endpoint
type TickersResponse struct {
	RequestID  string          `json:"request_id,omitempty"`
	Status     Status          `json:"status"`
	StatusCode int             `json:"-"`
	Count      int             `json:"count"`
	Results    []TickerDetails `json:"results"`
	NextURL    string          `json:"next_url,omitempty"`
}

// SnapshotResponse is returned by GetSnapshot
type SnapshotResponse struct {
	RequestID  string           `json:"request_id,omitempty"`
	Status     Status           `json:"status"`
	StatusCode int              `json:"-"`
	Count      int              `json:"count"`
	Tickers    []SnapshotTicker `json:"tickers"`
}
