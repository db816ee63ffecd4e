package polygon

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	maxPages   int
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
	}
}

// WithBaseURL overrides the API host, e.g. for a proxy or a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithHTTPClient uses the given HTTP client for all requests.
// The client is copied; its transport is wrapped to add authentication.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout. Without it a client created by
// NewClient uses DefaultTimeout and a client passed to WithHTTPClient keeps its own.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithMaxPages caps the number of pages ListTickers fetches. Zero means no limit.
func WithMaxPages(pages int) Option {
	return func(o *clientOptions) {
		if pages >= 0 {
			o.maxPages = pages
		}
	}
}
