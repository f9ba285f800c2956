// Package omdb resolves IMDb ids to canonical titles through the OMDb API.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"subtitrari-noi-addon/internal/domain"
	"subtitrari-noi-addon/internal/infra/httpx"
)

const (
	// DefaultBaseURL is the public OMDb endpoint.
	DefaultBaseURL = "https://www.omdbapi.com/"

	// ProviderID identifies this provider in logs.
	ProviderID = "omdb"

	requestTimeout = 10 * time.Second
)

// ErrNoTitle is returned when OMDb answers without a usable title.
var ErrNoTitle = errors.New("omdb: no title in response")

// titleResponse is the subset of the OMDb payload we read.
type titleResponse struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Type     string `json:"Type"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// Client implements domain.MetadataProvider against OMDb.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default outbound client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Client) { o.client = c }
}

// New creates a Client. An empty baseURL selects DefaultBaseURL.
func New(apiKey, baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		client:  httpx.NewClient(requestTimeout),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the unique identifier for this provider.
func (c *Client) ID() string {
	return ProviderID
}

// Lookup fetches the title record for imdbID.
func (c *Client) Lookup(ctx context.Context, imdbID string) (domain.MediaInfo, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return domain.MediaInfo{}, fmt.Errorf("omdb base url: %w", err)
	}
	q := endpoint.Query()
	q.Set("i", imdbID)
	q.Set("apikey", c.apiKey)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return domain.MediaInfo{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.MediaInfo{}, fmt.Errorf("omdb lookup %s: %w", imdbID, err)
	}
	defer resp.Body.Close()

	if err := httpx.CheckStatus(resp); err != nil {
		return domain.MediaInfo{}, fmt.Errorf("omdb lookup %s: %w", imdbID, err)
	}

	var body titleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.MediaInfo{}, fmt.Errorf("omdb decode %s: %w", imdbID, err)
	}
	if body.Response == "False" || body.Title == "" {
		if body.Error != "" {
			return domain.MediaInfo{}, fmt.Errorf("%w: %s", ErrNoTitle, body.Error)
		}
		return domain.MediaInfo{}, ErrNoTitle
	}

	return domain.MediaInfo{
		Title: body.Title,
		Year:  body.Year,
		Type:  body.Type,
	}, nil
}
