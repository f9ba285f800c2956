package domain

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MediaType is the content kind requested by the plugin host.
type MediaType string

const (
	MediaTypeMovie  MediaType = "movie"
	MediaTypeSeries MediaType = "series"
)

// LanguageCode is the only subtitle language served.
const LanguageCode = "ron"

var (
	ErrInvalidID       = errors.New("invalid media id")
	ErrUnsupportedType = errors.New("unsupported media type")
)

var imdbIDRegex = regexp.MustCompile(`^tt\d+$`)

// MediaRequest is a single subtitle lookup. Season and Episode are set only for series.
type MediaRequest struct {
	Type    MediaType
	IMDbID  string
	Season  int
	Episode int
}

// ParseMediaRequest builds a MediaRequest from the host's type and colon-delimited
// id ("tt1234567" or "tt1234567:season:episode").
func ParseMediaRequest(mediaType, id string) (MediaRequest, error) {
	parts := strings.Split(strings.TrimSpace(id), ":")
	imdbID := parts[0]
	if !imdbIDRegex.MatchString(imdbID) {
		return MediaRequest{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	switch MediaType(mediaType) {
	case MediaTypeMovie:
		return MediaRequest{Type: MediaTypeMovie, IMDbID: imdbID}, nil
	case MediaTypeSeries:
		if len(parts) != 3 {
			return MediaRequest{}, fmt.Errorf("%w: series id needs season and episode: %q", ErrInvalidID, id)
		}
		season, err := parsePositive(parts[1])
		if err != nil {
			return MediaRequest{}, fmt.Errorf("%w: season: %v", ErrInvalidID, err)
		}
		episode, err := parsePositive(parts[2])
		if err != nil {
			return MediaRequest{}, fmt.Errorf("%w: episode: %v", ErrInvalidID, err)
		}
		return MediaRequest{Type: MediaTypeSeries, IMDbID: imdbID, Season: season, Episode: episode}, nil
	default:
		return MediaRequest{}, fmt.Errorf("%w: %q", ErrUnsupportedType, mediaType)
	}
}

func parsePositive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}

// MediaInfo is the canonical title data returned by the metadata service.
type MediaInfo struct {
	Title string
	Year  string
	Type  string
}

// SiteSearchResult is one candidate title page on the subtitle site.
type SiteSearchResult struct {
	InternalID  string
	DisplayText string
	SourceHref  string
}

// SubtitleDescriptor is a single downloadable subtitle in the host's response shape.
type SubtitleDescriptor struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Lang  string `json:"lang"`
	Title string `json:"title"`
}

// SubtitlesResponse is the top-level JSON body returned to the plugin host.
type SubtitlesResponse struct {
	Subtitles []SubtitleDescriptor `json:"subtitles"`
}

// MetadataProvider resolves an IMDb id to canonical title information.
type MetadataProvider interface {
	// ID returns the unique identifier of the provider (e.g., "omdb").
	ID() string

	// Lookup fetches title information for imdbID.
	Lookup(ctx context.Context, imdbID string) (MediaInfo, error)
}

// SiteSearcher locates the subtitle site's internal id for an IMDb id.
type SiteSearcher interface {
	// Search returns the best candidate, or ok=false when nothing matched.
	// info is nil when no canonical title is known.
	Search(ctx context.Context, imdbID string, info *MediaInfo) (SiteSearchResult, bool)
}

// SubtitleExtractor lists the downloadable subtitles on a title page.
type SubtitleExtractor interface {
	Extract(ctx context.Context, internalID string, req MediaRequest, fallbackTitle string) ([]SubtitleDescriptor, error)
}
