// Package polygon provides a typed client for the Polygon.io market data REST API.
//
// The client covers four endpoint families: aggregate bars, ticker reference
// details, the paginated ticker list and the multi-ticker snapshot. Every call
// carries a bearer token, decodes the JSON body into typed models and returns a
// fully populated response even when the call fails.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := polygon.NewClient(
//		os.Getenv("POLYGON_API_KEY"),
//		logger,
//		polygon.WithTimeout(15*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.GetAggregates(ctx, polygon.AggregatesRequest{
//		Ticker:     "AAPL",
//		Multiplier: 1,
//		Timespan:   polygon.TimespanDay,
//		From:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
//		To:         time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
//	})
//
// # Failures
//
// Operations never return a nil response. On failure the response is empty
// (no results, zero count) and its Status holds the failure, so callers may
// branch on the status alone:
//
//   - invalid input: BAD_REQUEST (400), no request is sent, the error wraps ErrInvalidRequest
//   - upstream non-2xx: the upstream status, the error is an *APIError
//   - transport or decode failure: INTERNAL_SERVER_ERROR (500)
//
// ListTickers follows next_url links serially. If a later page fails after
// results were collected, the collected results are returned as a success.
package polygon
