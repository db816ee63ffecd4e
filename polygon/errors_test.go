package polygon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		body       string
		message    string
		upstreamID string
	}{
		{
			name:       "message field",
			code:       http.StatusForbidden,
			body:       `{"status":"NOT_AUTHORIZED","request_id":"abc","message":"You are not entitled to this data."}`,
			message:    "You are not entitled to this data.",
			upstreamID: "abc",
		},
		{
			name:    "error preferred over message",
			code:    http.StatusBadRequest,
			body:    `{"status":"ERROR","error":"Invalid date","message":"ignored"}`,
			message: "Invalid date",
		},
		{
			name:    "plain text body",
			code:    http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			message: "Bad Gateway",
		},
		{
			name:    "unknown code",
			code:    599,
			message: "unexpected status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newAPIError(tt.code, "req-1", []byte(tt.body))
			assert.Equal(t, tt.code, err.StatusCode)
			assert.Equal(t, "req-1", err.RequestID)
			assert.Equal(t, tt.upstreamID, err.UpstreamID)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.body, err.Body)
			assert.Equal(t, fmt.Sprintf("polygon API error: status %d: %s", tt.code, tt.message), err.Error())
		})
	}
}

func TestAPIError_Classification(t *testing.T) {
	assert.True(t, (&APIError{StatusCode: http.StatusNotFound}).IsNotFound())
	assert.True(t, (&APIError{StatusCode: http.StatusUnauthorized}).IsUnauthorized())
	assert.True(t, (&APIError{StatusCode: http.StatusForbidden}).IsUnauthorized())
	assert.True(t, (&APIError{StatusCode: http.StatusTooManyRequests}).IsRateLimited())
	assert.False(t, (&APIError{StatusCode: http.StatusInternalServerError}).IsNotFound())
}

func TestStatusCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", invalidRequest("ticker is required"), http.StatusBadRequest},
		{"api error", newAPIError(http.StatusNotFound, "", nil), http.StatusNotFound},
		{"wrapped api error", fmt.Errorf("page 2: %w", newAPIError(http.StatusServiceUnavailable, "", nil)), http.StatusServiceUnavailable},
		{"context", context.DeadlineExceeded, http.StatusInternalServerError},
		{"other", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCodeOf(tt.err))
		})
	}
}

func TestRequestIDOf(t *testing.T) {
	assert.Empty(t, RequestIDOf(nil))
	assert.Empty(t, RequestIDOf(errors.New("boom")))
	assert.Equal(t, "a1", RequestIDOf(newAPIError(http.StatusNotFound, "a1", nil)))

	reqErr := &RequestError{RequestID: "b2", Err: context.Canceled}
	assert.Equal(t, "b2", RequestIDOf(fmt.Errorf("page 3: %w", reqErr)))
	assert.ErrorIs(t, reqErr, context.Canceled)
	assert.Equal(t, "polygon request b2: context canceled", reqErr.Error())
}

func TestFailureResponses(t *testing.T) {
	aggs := aggregatesFailure("AAPL", http.StatusNotFound)
	assert.Equal(t, "AAPL", aggs.Ticker)
	assert.Equal(t, Status("NOT_FOUND"), aggs.Status)
	assert.Equal(t, http.StatusNotFound, aggs.StatusCode)
	assert.NotNil(t, aggs.Results)
	assert.Zero(t, aggs.ResultsCount)

	details := tickerDetailsFailure(http.StatusInternalServerError)
	assert.Equal(t, StatusInternalError, details.Status)
	assert.Nil(t, details.Results)

	tickers := tickersFailure(http.StatusBadRequest)
	assert.Equal(t, StatusBadRequest, tickers.Status)
	assert.NotNil(t, tickers.Results)
	assert.Zero(t, tickers.Count)

	snapshot := snapshotFailure(http.StatusServiceUnavailable)
	assert.Equal(t, Status("SERVICE_UNAVAILABLE"), snapshot.Status)
	assert.NotNil(t, snapshot.Tickers)
}
