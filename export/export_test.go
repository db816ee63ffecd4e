package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/polyclient/polygon"
)

func testBars() []polygon.Bar {
	return []polygon.Bar{
		{Open: 187.15, High: 188.44, Low: 183.89, Close: 185.64, Volume: 82488674, VWAP: 185.9465, Timestamp: 1704171600000, Transactions: 1008871},
		{Open: 184.22, High: 185.88, Low: 183.43, Close: 184.25, Volume: 58414460, VWAP: 184.3226, Timestamp: 1704258000000, Transactions: 656853},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" csv ", FormatCSV, false},
		{"parquet", FormatParquet, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.True(t, FormatParquet.Binary())
	assert.False(t, FormatCSV.Binary())

	_, err := ParseFormat("xml")
	assert.EqualError(t, err, `unsupported output format "xml" (use: table, json, csv, parquet)`)
	assert.Equal(t, "table, json, csv, parquet", FormatNames())
}

func TestBars_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Bars(&buf, FormatCSV, testBars()))

	want := "time,open,high,low,close,volume,vwap,transactions\n" +
		"2024-01-02T05:00:00Z,187.15,188.44,183.89,185.64,82488674,185.9465,1008871\n" +
		"2024-01-03T05:00:00Z,184.22,185.88,183.43,184.25,58414460,184.3226,656853\n"
	assert.Equal(t, want, buf.String())
}

func TestBars_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Bars(&buf, FormatTable, testBars()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "TIME"))
	assert.Contains(t, lines[0], "TRANSACTIONS")
	assert.Contains(t, lines[1], "185.64")
	assert.Equal(t, strings.Index(lines[0], "OPEN"), strings.Index(lines[1], "187.15"), "columns must be aligned")
}

func TestBars_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Bars(&buf, FormatJSON, testBars()))

	var got []polygon.Bar
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, testBars(), got)

	buf.Reset()
	require.NoError(t, Bars(&buf, FormatJSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestBars_Parquet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Bars(&buf, FormatParquet, testBars()))

	rows, err := parquet.Read[barRow](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, newBarRow(testBars()[0]), rows[0])
	assert.Equal(t, newBarRow(testBars()[1]), rows[1])
}

func TestTickers(t *testing.T) {
	tickers := []polygon.TickerDetails{
		{Ticker: "AAPL", Name: "Apple Inc.", Market: "stocks", Locale: "us", Type: "CS", PrimaryExchange: "XNAS",
			Active: true, CurrencyName: "usd", CIK: "0000320193", CompositeFIGI: "BBG000B9XRY4", MarketCap: 2.9e12},
		{Ticker: "X:BTCUSD", Name: "Bitcoin - United States Dollar", Market: "crypto", Locale: "global", Active: true},
	}

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Tickers(&buf, FormatCSV, tickers))

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "ticker,name,market,locale,type,primary_exchange,active,currency,cik,composite_figi,list_date,market_cap", lines[0])
		assert.Equal(t, "AAPL,Apple Inc.,stocks,us,CS,XNAS,true,usd,0000320193,BBG000B9XRY4,,2900000000000", lines[1])
		assert.Equal(t, "X:BTCUSD,Bitcoin - United States Dollar,crypto,global,,,true,,,,,", lines[2])
	})

	t.Run("parquet", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Tickers(&buf, FormatParquet, tickers))

		rows, err := parquet.Read[tickerRow](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "AAPL", rows[0].Ticker)
		assert.Equal(t, 2.9e12, rows[0].MarketCap)
		assert.Equal(t, "crypto", rows[1].Market)
	})
}

func TestSnapshots(t *testing.T) {
	snapshots := []polygon.SnapshotTicker{
		{
			Ticker:           "AAPL",
			TodaysChange:     -1.25,
			TodaysChangePerc: -0.66,
			Updated:          1704232800000000000,
			Day:              polygon.Bar{Open: 187.15, High: 188.44, Low: 183.89, Close: 185.64, Volume: 82488674},
			PrevDay:          polygon.Bar{Close: 192.53},
			LastTrade:        &polygon.Trade{Price: 185.66},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Snapshots(&buf, FormatCSV, snapshots))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ticker,last_price,change,change_perc,open,high,low,close,volume,prev_close,updated", lines[0])
	assert.Equal(t, "AAPL,185.66,-1.25,-0.66,187.15,188.44,183.89,185.64,82488674,192.53,2024-01-02T22:00:00Z", lines[1])

	buf.Reset()
	require.NoError(t, Snapshots(&buf, FormatParquet, snapshots))
	rows, err := parquet.Read[snapshotRow](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 185.66, rows[0].LastPrice)
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Bars(&buf, Format("xml"), testBars())
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Zero(t, buf.Len())
}
