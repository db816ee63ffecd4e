package polygon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the Polygon REST API host
	DefaultBaseURL = "https://api.polygon.io"
	// DefaultTimeout bounds a single HTTP request, including reading the body
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent unless overridden with WithUserAgent
	DefaultUserAgent = "polyclient/1.0"
)

// Client represents a Polygon API client. It is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	maxPages   int
	logger     zerolog.Logger
}

// NewClient creates a new Polygon client authenticated with token
func NewClient(token string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	credential := bearerCredential(token)
	if credential == "" {
		return nil, ErrMissingToken
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	base, err := url.Parse(strings.TrimRight(o.baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", o.baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", o.baseURL)
	}

	var httpClient http.Client
	if o.httpClient != nil {
		httpClient = *o.httpClient
	} else {
		httpClient.Timeout = DefaultTimeout
	}
	if o.timeout > 0 {
		httpClient.Timeout = o.timeout
	}
	transport := httpClient.Transport
	if transport == nil {
		transport = baseTransport()
	}
	httpClient.Transport = &authTransport{
		base:          transport,
		host:          base.Host,
		authorization: bearerScheme + " " + credential,
		userAgent:     o.userAgent,
	}

	return &Client{
		baseURL:    base,
		httpClient: &httpClient,
		maxPages:   o.maxPages,
		logger:     logger,
	}, nil
}

// GetAggregates retrieves aggregate bars for a ticker. The response is never nil;
// on failure it holds no bars and its status describes the failure.
func (c *Client) GetAggregates(ctx context.Context, req AggregatesRequest) (*AggregatesResponse, error) {
	requestURL, err := req.buildURL(c.baseURL)
	if err != nil {
		return aggregatesFailure(req.Ticker, http.StatusBadRequest), err
	}

	var resp AggregatesResponse
	code, err := c.getJSON(ctx, requestURL, &resp)
	if err != nil {
		c.logFailure(err, "aggregates", req.Ticker)
		return aggregatesFailure(req.Ticker, code), err
	}

	resp.StatusCode = code
	resp.Status = resp.Status.orCode(code)
	if resp.Results == nil {
		resp.Results = []Bar{}
	}
	if resp.ResultsCount == 0 {
		resp.ResultsCount = len(resp.Results)
	}

	c.logger.Debug().
		Str("ticker", req.Ticker).
		Int("count", len(resp.Results)).
		Str("status", resp.Status.String()).
		Msg("Retrieved aggregates from Polygon")

	return &resp, nil
}

// GetTickerDetails retrieves reference data for one ticker
func (c *Client) GetTickerDetails(ctx context.Context, req TickerDetailsRequest) (*TickerDetailsResponse, error) {
	requestURL, err := req.buildURL(c.baseURL)
	if err != nil {
		return tickerDetailsFailure(http.StatusBadRequest), err
	}

	var resp TickerDetailsResponse
	code, err := c.getJSON(ctx, requestURL, &resp)
	if err != nil {
		c.logFailure(err, "ticker details", req.Ticker)
		return tickerDetailsFailure(code), err
	}

	resp.StatusCode = code
	resp.Status = resp.Status.orCode(code)
	if resp.Count == 0 && resp.Results != nil {
		resp.Count = 1
	}
	return &resp, nil
}

// ListTickers retrieves all tickers matching req, following next_url until the
// last page. When a page fails after results were collected, the collected
// results are returned with status OK and a nil error.
func (c *Client) ListTickers(ctx context.Context, req TickersRequest) (*TickersResponse, error) {
	next, err := req.buildURL(c.baseURL)
	if err != nil {
		return tickersFailure(http.StatusBadRequest), err
	}

	var tickers []TickerDetails
	page := 0
	for next != "" {
		if c.maxPages > 0 && page >= c.maxPages {
			c.logger.Debug().Int("pages", page).Msg("Reached page limit, stopping pagination")
			break
		}

		var resp TickersResponse
		code, err := c.getPage(ctx, next, &resp)
		if err != nil {
			if len(tickers) == 0 {
				c.logFailure(err, "tickers", "")
				return tickersFailure(code), err
			}
			c.logger.Warn().
				Err(err).
				Str("request_id", RequestIDOf(err)).
				Int("page", page+1).
				Int("total", len(tickers)).
				Msg("Failed to retrieve tickers page, returning partial results")
			break
		}

		page++
		tickers = append(tickers, resp.Results...)

		c.logger.Debug().
			Int("page", page).
			Int("count", len(resp.Results)).
			Int("total", len(tickers)).
			Msg("Retrieved tickers from Polygon")

		next = resp.NextURL
	}

	if tickers == nil {
		tickers = []TickerDetails{}
	}
	return &TickersResponse{
		Status:     StatusOK,
		StatusCode: http.StatusOK,
		Count:      len(tickers),
		Results:    tickers,
	}, nil
}

// GetSnapshot retrieves the current snapshot of the requested tickers
func (c *Client) GetSnapshot(ctx context.Context, req SnapshotRequest) (*SnapshotResponse, error) {
	requestURL, err := req.buildURL(c.baseURL)
	if err != nil {
		return snapshotFailure(http.StatusBadRequest), err
	}

	var resp SnapshotResponse
	code, err := c.getJSON(ctx, requestURL, &resp)
	if err != nil {
		c.logFailure(err, "snapshot", strings.Join(req.Tickers, ","))
		return snapshotFailure(code), err
	}

	resp.StatusCode = code
	resp.Status = resp.Status.orCode(code)
	if resp.Tickers == nil {
		resp.Tickers = []SnapshotTicker{}
	}
	if resp.Count == 0 {
		resp.Count = len(resp.Tickers)
	}
	return &resp, nil
}

// getPage resolves a possibly relative next-page URL against the base URL and fetches it
func (c *Client) getPage(ctx context.Context, pageURL string, v any) (int, error) {
	ref, err := url.Parse(pageURL)
	if err != nil {
		return http.StatusInternalServerError, fmt.Errorf("invalid next page URL %q: %w", pageURL, err)
	}
	return c.getJSON(ctx, c.baseURL.ResolveReference(ref).String(), v)
}

// getJSON fetches requestURL and decodes the body into v. The returned code is
// the upstream status for API errors and 500 for transport or decode failures.
func (c *Client) getJSON(ctx context.Context, requestURL string, v any) (int, error) {
	requestID := uuid.NewString()
	code, body, err := c.doRequest(ctx, requestID, requestURL)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return apiErr.StatusCode, err
		}
		return http.StatusInternalServerError, &RequestError{RequestID: requestID, Err: err}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return http.StatusInternalServerError, &RequestError{
			RequestID: requestID,
			Err:       fmt.Errorf("failed to decode response: %w", err),
		}
	}
	return code, nil
}

// doRequest performs an authenticated GET and returns the status code and raw body
func (c *Client) doRequest(ctx context.Context, requestID, requestURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Request-Id", requestID)

	c.logger.Debug().
		Str("request_id", requestID).
		Str("url", requestURL).
		Msg("Making Polygon API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, body, newAPIError(resp.StatusCode, requestID, body)
	}
	return resp.StatusCode, body, nil
}

// logFailure logs upstream failures at warn level and local ones at error level
func (c *Client) logFailure(err error, operation, ticker string) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.logger.Warn().
			Str("request_id", apiErr.RequestID).
			Str("polygon_request_id", apiErr.UpstreamID).
			Int("status_code", apiErr.StatusCode).
			Str("ticker", ticker).
			Str("message", apiErr.Message).
			Msgf("Polygon rejected %s request", operation)
		return
	}
	c.logger.Error().
		Err(err).
		Str("request_id", RequestIDOf(err)).
		Str("ticker", ticker).
		Msgf("Error getting %s from Polygon API", operation)
}
