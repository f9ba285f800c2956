// Package subtitrarinoi resolves IMDb ids to title pages on subtitrari-noi.ro and
// extracts the Romanian subtitle archives listed there.
package subtitrarinoi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"subtitrari-noi-addon/internal/adapter/scrape"
	"subtitrari-noi-addon/internal/infra/httpx"
)

const (
	// DefaultBaseURL is the production site.
	DefaultBaseURL = "https://www.subtitrari-noi.ro"

	// ProviderID namespaces descriptor ids.
	ProviderID = "subtitrari-noi"

	requestTimeout = 15 * time.Second

	paginatedSearchPath = "/paginare_filme.php"
	searchTypeAll       = "0"
)

// Site talks to subtitrari-noi.ro. It implements both domain.SiteSearcher and
// domain.SubtitleExtractor.
type Site struct {
	client     *http.Client
	baseURL    string
	selectors  Selectors
	strategies []SearchStrategy
}

// Option configures a Site.
type Option func(*Site)

// WithHTTPClient replaces the default outbound client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Site) { s.client = c }
}

// WithSelectors overrides DefaultSelectors.
func WithSelectors(sel Selectors) Option {
	return func(s *Site) { s.selectors = sel }
}

// New creates a Site rooted at baseURL (DefaultBaseURL when empty).
func New(baseURL string, opts ...Option) *Site {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	s := &Site{
		client:    httpx.NewClient(requestTimeout),
		baseURL:   strings.TrimRight(baseURL, "/"),
		selectors: DefaultSelectors,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.strategies = []SearchStrategy{
		&directNumericStrategy{site: s},
		&freeTextStrategy{site: s},
	}
	return s
}

// ID returns the unique identifier for this site.
func (s *Site) ID() string {
	return ProviderID
}

// detailURL builds the title page URL for an internal id.
func (s *Site) detailURL(internalID string) string {
	return fmt.Sprintf("%s/index.php?page=movie_details&act=1&id=%s", s.baseURL, url.QueryEscape(internalID))
}

// postPaginatedSearch submits the internal search form for term.
func (s *Site) postPaginatedSearch(ctx context.Context, term string) (*scrape.Document, error) {
	form := url.Values{
		"search_q": {"1"},
		"cautare":  {term},
		"tip":      {searchTypeAll},
		"page_nr":  {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+paginatedSearchPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	return s.fetch(req)
}

// getPublicSearch loads the public ?s= search page for term.
func (s *Site) getPublicSearch(ctx context.Context, term string) (*scrape.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/?s="+url.QueryEscape(term), nil)
	if err != nil {
		return nil, err
	}
	return s.fetch(req)
}

// getDetailPage loads the title page for internalID.
func (s *Site) getDetailPage(ctx context.Context, internalID string) (*scrape.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.detailURL(internalID), nil)
	if err != nil {
		return nil, err
	}
	return s.fetch(req)
}

func (s *Site) fetch(req *http.Request) (*scrape.Document, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := httpx.CheckStatus(resp); err != nil {
		return nil, err
	}

	doc, err := scrape.Parse(resp.Body, resp.Request.URL)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", req.URL.Path, err)
	}
	return doc, nil
}
