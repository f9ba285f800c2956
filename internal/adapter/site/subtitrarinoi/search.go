package subtitrarinoi

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"subtitrari-noi-addon/internal/adapter/scrape"
	"subtitrari-noi-addon/internal/domain"
	"subtitrari-noi-addon/internal/normalize"
)

// minCandidateText is the shortest link text accepted as a search candidate.
const minCandidateText = 3

// SearchStrategy is one way of finding a title on the site. Strategies are tried in
// order and the first hit wins.
type SearchStrategy interface {
	Name() string
	Search(ctx context.Context, imdbID string, info *domain.MediaInfo) (domain.SiteSearchResult, bool)
}

// Search runs every strategy in order and returns the first match.
func (s *Site) Search(ctx context.Context, imdbID string, info *domain.MediaInfo) (domain.SiteSearchResult, bool) {
	for _, strategy := range s.strategies {
		if result, ok := strategy.Search(ctx, imdbID, info); ok {
			slog.Info("Site search matched",
				"imdb_id", imdbID,
				"strategy", strategy.Name(),
				"internal_id", result.InternalID,
				"text", result.DisplayText,
			)
			return result, true
		}
		slog.Debug("Site search strategy found nothing", "imdb_id", imdbID, "strategy", strategy.Name())
	}
	return domain.SiteSearchResult{}, false
}

// directNumericStrategy queries the internal paginated search endpoint with the bare
// numeric IMDb id, zero-stripped form first.
type directNumericStrategy struct {
	site *Site
}

func (d *directNumericStrategy) Name() string { return "direct-numeric" }

func (d *directNumericStrategy) Search(ctx context.Context, imdbID string, info *domain.MediaInfo) (domain.SiteSearchResult, bool) {
	for _, term := range numericForms(imdbID) {
		doc, err := d.site.postPaginatedSearch(ctx, term)
		if err != nil {
			slog.Warn("Paginated search failed", "imdb_id", imdbID, "term", term, "error", err)
			continue
		}

		candidates := searchCandidates(doc, d.site.selectors.SearchResultLink)
		if len(candidates) == 0 {
			slog.Debug("Paginated search returned no candidates", "imdb_id", imdbID, "term", term)
			continue
		}

		expected := ""
		if info != nil {
			expected = info.Title
		}
		return disambiguate(candidates, expected), true
	}
	return domain.SiteSearchResult{}, false
}

// freeTextStrategy queries the public search page with progressively looser terms.
type freeTextStrategy struct {
	site *Site
}

func (f *freeTextStrategy) Name() string { return "free-text" }

func (f *freeTextStrategy) Search(ctx context.Context, imdbID string, info *domain.MediaInfo) (domain.SiteSearchResult, bool) {
	for _, term := range freeTextTerms(imdbID, info) {
		doc, err := f.site.getPublicSearch(ctx, term)
		if err != nil {
			slog.Warn("Public search failed", "imdb_id", imdbID, "term", term, "error", err)
			continue
		}

		for _, a := range doc.FindAnchors(f.site.selectors.DetailLink, idParamRegex) {
			id, ok := internalIDFromHref(a.Href)
			if !ok {
				continue
			}
			return domain.SiteSearchResult{InternalID: id, DisplayText: a.Text, SourceHref: a.URL}, true
		}
		slog.Debug("Public search returned no candidates", "imdb_id", imdbID, "term", term)
	}
	return domain.SiteSearchResult{}, false
}

// searchCandidates collects links in either known detail-link shape whose text is longer
// than minCandidateText, deduplicated by internal id in first-seen order.
func searchCandidates(doc *scrape.Document, selector string) []domain.SiteSearchResult {
	var candidates []domain.SiteSearchResult
	seen := make(map[string]bool)

	for _, a := range doc.FindAnchors(selector, nil) {
		if utf8.RuneCountInString(a.Text) <= minCandidateText {
			continue
		}
		id, ok := internalIDFromHref(a.Href)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		candidates = append(candidates, domain.SiteSearchResult{
			InternalID:  id,
			DisplayText: a.Text,
			SourceHref:  a.URL,
		})
	}
	return candidates
}

// disambiguate picks the first candidate whose normalized text contains, or is contained
// in, the expected title. Without a title or a match the first candidate wins.
func disambiguate(candidates []domain.SiteSearchResult, expectedTitle string) domain.SiteSearchResult {
	if len(candidates) > 1 && expectedTitle != "" {
		for _, c := range candidates {
			if normalize.Matches(expectedTitle, c.DisplayText) {
				return c
			}
		}
	}
	return candidates[0]
}

// numericForms returns the bare numeric id without leading zeros, then the zero-padded
// form when it differs.
func numericForms(imdbID string) []string {
	padded := strings.TrimPrefix(imdbID, "tt")
	stripped := strings.TrimLeft(padded, "0")
	return uniqueNonEmpty(stripped, padded)
}

// freeTextTerms lists the public search terms in the order they are tried.
func freeTextTerms(imdbID string, info *domain.MediaInfo) []string {
	bare := strings.TrimLeft(strings.TrimPrefix(imdbID, "tt"), "0")
	terms := []string{bare, imdbID}
	if info != nil && info.Title != "" {
		if info.Year != "" {
			terms = append(terms, info.Title+" "+info.Year)
		}
		terms = append(terms, info.Title)
	}
	return uniqueNonEmpty(terms...)
}

func uniqueNonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
