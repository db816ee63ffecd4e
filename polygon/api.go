package polygon

import (
	"context"
)

// API defines the Polygon operations exposed by Client
type API interface {
	// GetAggregates retrieves aggregate bars for a ticker over a date range
	GetAggregates(ctx context.Context, req AggregatesRequest) (*AggregatesResponse, error)

	// GetTickerDetails retrieves reference data for a single ticker
	GetTickerDetails(ctx context.Context, req TickerDetailsRequest) (*TickerDetailsResponse, error)

	// ListTickers retrieves every ticker matching the request, following pagination
	ListTickers(ctx context.Context, req TickersRequest) (*TickersResponse, error)

	// GetSnapshot retrieves the current trading snapshot for a set of tickers
	GetSnapshot(ctx context.Context, req SnapshotRequest) (*SnapshotResponse, error)
}

var _ API = (*Client)(nil)
