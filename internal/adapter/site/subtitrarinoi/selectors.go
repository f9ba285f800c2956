package subtitrarinoi

import "regexp"

// Selectors holds every layout-dependent query for the site, so markup drift is a
// one-place change.
type Selectors struct {
	// SearchResultLink selects candidate links on the paginated search endpoint.
	SearchResultLink string
	// DetailLink selects title links on the public search page.
	DetailLink string
	// Heading selects the title heading on a detail page.
	Heading string
	// CommentItem and CommentLabel locate the free-text release comment.
	CommentItem  string
	CommentLabel string
	// DownloadButton selects subtitle archive links on a detail page.
	DownloadButton string
}

// DefaultSelectors matches the current subtitrari-noi.ro markup.
var DefaultSelectors = Selectors{
	SearchResultLink: "a[href]",
	DetailLink:       `a[href*="movie_details"]`,
	Heading:          "h3",
	CommentItem:      "li",
	CommentLabel:     "Comentariu:",
	DownloadButton:   "a.button.bt1",
}

var (
	// idParamRegex matches detail links addressed as index.php?...&id=12345.
	idParamRegex = regexp.MustCompile(`[?&]id=(\d+)`)

	// slugRegex matches detail links addressed as /some-title-slug-12345.
	slugRegex = regexp.MustCompile(`(?i)/[a-z0-9][a-z0-9-]*-(\d+)/?$`)

	// archiveRegex matches subtitle archive downloads.
	archiveRegex = regexp.MustCompile(`(?i)\.(zip|rar|7z)$`)
)

// internalIDFromHref extracts the site's numeric id from either known link shape.
func internalIDFromHref(href string) (string, bool) {
	if m := idParamRegex.FindStringSubmatch(href); m != nil {
		return m[1], true
	}
	if m := slugRegex.FindStringSubmatch(href); m != nil {
		return m[1], true
	}
	return "", false
}
