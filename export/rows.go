package export

import (
	"strconv"
	"time"

	"github.com/s0up4200/polyclient/polygon"
)

// Flat row types shared by the CSV, table and Parquet writers.

type barRow struct {
	Timestamp    int64   `parquet:"t"`
	Open         float64 `parquet:"o"`
	High         float64 `parquet:"h"`
	Low          float64 `parquet:"l"`
	Close        float64 `parquet:"c"`
	Volume       float64 `parquet:"v"`
	VWAP         float64 `parquet:"vw,optional"`
	Transactions int64   `parquet:"n,optional"`
}

var barColumns = []string{"time", "open", "high", "low", "close", "volume", "vwap", "transactions"}

func newBarRow(b polygon.Bar) barRow {
	return barRow{
		Timestamp:    b.Timestamp,
		Open:         b.Open,
		High:         b.High,
		Low:          b.Low,
		Close:        b.Close,
		Volume:       b.Volume,
		VWAP:         b.VWAP,
		Transactions: b.Transactions,
	}
}

func (r barRow) record() []string {
	return []string{
		time.UnixMilli(r.Timestamp).UTC().Format(time.RFC3339),
		floatStr(r.Open),
		floatStr(r.High),
		floatStr(r.Low),
		floatStr(r.Close),
		floatStr(r.Volume),
		floatStr(r.VWAP),
		strconv.FormatInt(r.Transactions, 10),
	}
}

type tickerRow struct {
	Ticker          string  `parquet:"ticker"`
	Name            string  `parquet:"name"`
	Market          string  `parquet:"market"`
	Locale          string  `parquet:"locale"`
	Type            string  `parquet:"type,optional"`
	PrimaryExchange string  `parquet:"primary_exchange,optional"`
	Active          bool    `parquet:"active"`
	CurrencyName    string  `parquet:"currency_name,optional"`
	CIK             string  `parquet:"cik,optional"`
	CompositeFIGI   string  `parquet:"composite_figi,optional"`
	ListDate        string  `parquet:"list_date,optional"`
	MarketCap       float64 `parquet:"market_cap,optional"`
}

var tickerColumns = []string{
	"ticker", "name", "market", "locale", "type", "primary_exchange",
	"active", "currency", "cik", "composite_figi", "list_date", "market_cap",
}

func newTickerRow(t polygon.TickerDetails) tickerRow {
	return tickerRow{
		Ticker:          t.Ticker,
		Name:            t.Name,
		Market:          t.Market,
		Locale:          t.Locale,
		Type:            t.Type,
		PrimaryExchange: t.PrimaryExchange,
		Active:          t.Active,
		CurrencyName:    t.CurrencyName,
		CIK:             t.CIK,
		CompositeFIGI:   t.CompositeFIGI,
		ListDate:        t.ListDate,
		MarketCap:       t.MarketCap,
	}
}

func (r tickerRow) record() []string {
	marketCap := ""
	if r.MarketCap != 0 {
		marketCap = floatStr(r.MarketCap)
	}
	return []string{
		r.Ticker,
		r.Name,
		r.Market,
		r.Locale,
		r.Type,
		r.PrimaryExchange,
		strconv.FormatBool(r.Active),
		r.CurrencyName,
		r.CIK,
		r.CompositeFIGI,
		r.ListDate,
		marketCap,
	}
}

type snapshotRow struct {
	Ticker           string  `parquet:"ticker"`
	LastPrice        float64 `parquet:"last_price"`
	TodaysChange     float64 `parquet:"todays_change"`
	TodaysChangePerc float64 `parquet:"todays_change_perc"`
	DayOpen          float64 `parquet:"day_o"`
	DayHigh          float64 `parquet:"day_h"`
	DayLow           float64 `parquet:"day_l"`
	DayClose         float64 `parquet:"day_c"`
	DayVolume        float64 `parquet:"day_v"`
	PrevClose        float64 `parquet:"prev_c"`
	Updated          int64   `parquet:"updated,optional"`
}

var snapshotColumns = []string{
	"ticker", "last_price", "change", "change_perc",
	"open", "high", "low", "close", "volume", "prev_close", "updated",
}

func newSnapshotRow(s polygon.SnapshotTicker) snapshotRow {
	return snapshotRow{
		Ticker:           s.Ticker,
		LastPrice:        s.LastPrice(),
		TodaysChange:     s.TodaysChange,
		TodaysChangePerc: s.TodaysChangePerc,
		DayOpen:          s.Day.Open,
		DayHigh:          s.Day.High,
		DayLow:           s.Day.Low,
		DayClose:         s.Day.Close,
		DayVolume:        s.Day.Volume,
		PrevClose:        s.PrevDay.Close,
		Updated:          s.Updated,
	}
}

func (r snapshotRow) record() []string {
	updated := ""
	if r.Updated != 0 {
		updated = time.Unix(0, r.Updated).UTC().Format(time.RFC3339)
	}
	return []string{
		r.Ticker,
		floatStr(r.LastPrice),
		floatStr(r.TodaysChange),
		floatStr(r.TodaysChangePerc),
		floatStr(r.DayOpen),
		floatStr(r.DayHigh),
		floatStr(r.DayLow),
		floatStr(r.DayClose),
		floatStr(r.DayVolume),
		floatStr(r.PrevClose),
		updated,
	}
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
