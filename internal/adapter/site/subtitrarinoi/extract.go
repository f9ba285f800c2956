package subtitrarinoi

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"subtitrari-noi-addon/internal/domain"
)

// titlePrefix marks every descriptor as a Romanian subtitle in the player menu.
const titlePrefix = "🇷🇴 "

// Extract loads the title page for internalID and returns one descriptor per subtitle
// archive that fits req. Series archives are kept only when both the season and episode
// markers appear in the release comment or page title.
func (s *Site) Extract(ctx context.Context, internalID string, req domain.MediaRequest, fallbackTitle string) ([]domain.SubtitleDescriptor, error) {
	doc, err := s.getDetailPage(ctx, internalID)
	if err != nil {
		return nil, fmt.Errorf("detail page %s: %w", internalID, err)
	}

	pageTitle := doc.FirstText(s.selectors.Heading)
	archives := doc.FindAnchors(s.selectors.DownloadButton, archiveRegex)
	if len(archives) == 0 {
		slog.Info("No download links on detail page", "internal_id", internalID, "page_title", pageTitle)
		return []domain.SubtitleDescriptor{}, nil
	}

	switch req.Type {
	case domain.MediaTypeMovie:
	case domain.MediaTypeSeries:
		// The release comment is page-wide, so every archive on the page shares the verdict.
		blob := doc.TextContaining(s.selectors.CommentItem, s.selectors.CommentLabel) + " " + pageTitle
		if !matchesEpisode(blob, req.Season, req.Episode) {
			slog.Info("Subtitles do not match episode",
				"internal_id", internalID,
				"season", req.Season,
				"episode", req.Episode,
				"candidates", len(archives),
			)
			return []domain.SubtitleDescriptor{}, nil
		}
	default:
		return []domain.SubtitleDescriptor{}, nil
	}

	label := descriptorTitle(fallbackTitle, pageTitle)
	subtitles := make([]domain.SubtitleDescriptor, 0, len(archives))
	for i, a := range archives {
		subtitles = append(subtitles, domain.SubtitleDescriptor{
			ID:    fmt.Sprintf("%s:%s:%d", ProviderID, internalID, i),
			URL:   a.URL,
			Lang:  domain.LanguageCode,
			Title: label,
		})
	}
	return subtitles, nil
}

// matchesEpisode reports whether text carries both an S<season> and an E<episode> marker,
// each with an optional leading zero.
func matchesEpisode(text string, season, episode int) bool {
	if season <= 0 || episode <= 0 {
		return false
	}
	seasonRe := regexp.MustCompile(fmt.Sprintf(`(?i)S0?%d(?:\D|$)`, season))
	episodeRe := regexp.MustCompile(fmt.Sprintf(`(?i)E0?%d(?:\D|$)`, episode))
	return seasonRe.MatchString(text) && episodeRe.MatchString(text)
}

func descriptorTitle(fallbackTitle, pageTitle string) string {
	switch {
	case fallbackTitle != "":
		return titlePrefix + fallbackTitle
	case pageTitle != "":
		return titlePrefix + pageTitle
	default:
		return titlePrefix + "Subtitrari-Noi.ro"
	}
}
