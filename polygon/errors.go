package polygon

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common errors
var (
	// ErrInvalidRequest indicates a request failed validation before being sent
	ErrInvalidRequest = errors.New("invalid polygon request")
	// ErrMissingToken indicates the client was created without an API token
	ErrMissingToken = errors.New("polygon API token is required")
)

// APIError represents a non-2xx response from the Polygon API
type APIError struct {
	StatusCode int
	Message    string
	Body       string
	RequestID  string // X-Request-Id sent with the request
	UpstreamID string // request_id reported by Polygon, if any
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("polygon API error: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsRateLimited checks if the plan's request quota was exceeded
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// RequestError wraps a transport, read or decode failure of one request
type RequestError struct {
	RequestID string
	Err       error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("polygon request %s: %v", e.RequestID, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// RequestIDOf returns the X-Request-Id of the request that produced err, or ""
func RequestIDOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.RequestID
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.RequestID
	}
	return ""
}

// errorBody is the error document Polygon sends with non-2xx responses
type errorBody struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
	Message   string `json:"message"`
}

func newAPIError(code int, requestID string, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: code,
		Message:    http.StatusText(code),
		Body:       string(body),
		RequestID:  requestID,
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.UpstreamID = strings.TrimSpace(eb.RequestID)
		switch {
		case strings.TrimSpace(eb.Error) != "":
			apiErr.Message = strings.TrimSpace(eb.Error)
		case strings.TrimSpace(eb.Message) != "":
			apiErr.Message = strings.TrimSpace(eb.Message)
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = "unexpected status"
	}
	return apiErr
}

func invalidRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// StatusCodeOf maps an error returned by Client to the HTTP status code it
// carries: 200 for nil, 400 for validation errors, the upstream code for
// *APIError and 500 for anything else.
func StatusCodeOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}

// The functions below build the typed empty responses returned on failure.

func aggregatesFailure(ticker string, code int) *AggregatesResponse {
	return &AggregatesResponse{
		Ticker:     ticker,
		Status:     StatusFromCode(code),
		StatusCode: code,
		Results:    []Bar{},
	}
}

func tickerDetailsFailure(code int) *TickerDetailsResponse {
	return &TickerDetailsResponse{
		Status:     StatusFromCode(code),
		StatusCode: code,
	}
}

func tickersFailure(code int) *TickersResponse {
	return &TickersResponse{
		Status:     StatusFromCode(code),
		StatusCode: code,
		Results:    []TickerDetails{},
	}
}

func snapshotFailure(code int) *SnapshotResponse {
	return &SnapshotResponse{
		Status:     StatusFromCode(code),
		StatusCode: code,
		Tickers:    []SnapshotTicker{},
	}
}
