package polygon

import (
	"net/http"
	"strings"
	"time"
)

const bearerScheme = "Bearer"

// NormalizeBearer returns the Authorization header value for token, which may
// be given with or without the "Bearer " prefix.
func NormalizeBearer(token string) string {
	return bearerScheme + " " + bearerCredential(token)
}

// bearerCredential strips whitespace and an optional scheme prefix from token
func bearerCredential(token string) string {
	token = strings.TrimSpace(token)
	if strings.EqualFold(token, bearerScheme) {
		return ""
	}
	prefix := bearerScheme + " "
	if len(token) > len(prefix) && strings.EqualFold(token[:len(prefix)], prefix) {
		return strings.TrimSpace(token[len(prefix):])
	}
	return token
}

// baseTransport returns the shared transport configuration used by Polygon clients.
func baseTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.TLSHandshakeTimeout = 10 * time.Second
	t.ResponseHeaderTimeout = time.Minute
	t.MaxIdleConnsPerHost = 4
	return t
}

// authTransport adds the authorization and client headers to requests for host.
// Requests to other hosts are sent without credentials.
type authTransport struct {
	base          http.RoundTripper
	host          string
	authorization string
	userAgent     string
}

// RoundTrip implements http.RoundTripper
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Accept", "application/json")
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if strings.EqualFold(req.URL.Host, t.host) {
		req.Header.Set("Authorization", t.authorization)
	}
	return t.base.RoundTrip(req)
}
