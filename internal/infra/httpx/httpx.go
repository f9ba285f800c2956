// Package httpx builds the outbound HTTP clients used to talk to upstream sites.
package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DefaultUserAgent is sent when a request carries no User-Agent of its own.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// Transport fills in a browser User-Agent and delegates to Base.
// Requests are never retried; a failed attempt is final.
type Transport struct {
	Base      http.RoundTripper
	UserAgent string
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if req.Header.Get("User-Agent") != "" {
		return base.RoundTrip(req)
	}

	// Clone so the caller's request headers are left untouched.
	r := req.Clone(req.Context())
	ua := t.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	r.Header.Set("User-Agent", ua)
	return base.RoundTrip(r)
}

// NewClient returns a client whose every request is bounded by timeout.
func NewClient(timeout time.Duration) *http.Client {
	base := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		TLSHandshakeTimeout: 10 * time.Second,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
	}
	return &http.Client{
		Transport: &Transport{Base: base, UserAgent: DefaultUserAgent},
		Timeout:   timeout,
	}
}

// StatusError reports a non-2xx response from an upstream.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e == nil {
		return "HTTP status error"
	}
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// CheckStatus returns a *StatusError unless resp has a 2xx status.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	u := ""
	if resp.Request != nil && resp.Request.URL != nil {
		u = resp.Request.URL.String()
	}
	return &StatusError{URL: u, StatusCode: resp.StatusCode}
}
