package service

import (
	"context"
	"fmt"
	"log/slog"

	"subtitrari-noi-addon/internal/domain"
	"subtitrari-noi-addon/internal/platform/metrics"
)

// Pipeline turns a media request into subtitle descriptors: metadata lookup
// (best effort), site search (mandatory), then extraction.
type Pipeline struct {
	metadata  domain.MetadataProvider
	searcher  domain.SiteSearcher
	extractor domain.SubtitleExtractor
	cache     Cache
	metrics   *metrics.Metrics
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMetrics records cache and stage counters in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// NewPipeline creates a Pipeline over the given collaborators.
func NewPipeline(metadata domain.MetadataProvider, searcher domain.SiteSearcher, extractor domain.SubtitleExtractor, cache Cache, opts ...Option) *Pipeline {
	p := &Pipeline{
		metadata:  metadata,
		searcher:  searcher,
		extractor: extractor,
		cache:     cache,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FindSubtitles runs the lookup for req. Failures degrade to an empty, non-nil slice.
func (p *Pipeline) FindSubtitles(ctx context.Context, req domain.MediaRequest) []domain.SubtitleDescriptor {
	log := slog.With("imdb_id", req.IMDbID, "type", req.Type)

	info := p.resolveInfo(ctx, req.IMDbID)

	match, err := p.resolveInternalID(ctx, req.IMDbID, info)
	if err != nil {
		log.Info("No title found on subtitle site", "error", err)
		p.metrics.IncLookup(metrics.OutcomeEmpty)
		return []domain.SubtitleDescriptor{}
	}

	fallbackTitle := ""
	if info != nil {
		fallbackTitle = info.Title
	}

	subtitles, err := p.extractor.Extract(ctx, match.InternalID, req, fallbackTitle)
	if err != nil {
		log.Warn("Subtitle extraction failed", "stage", metrics.StageDetail, "internal_id", match.InternalID, "error", err)
		p.metrics.IncStageFailure(metrics.StageDetail)
		p.metrics.IncLookup(metrics.OutcomeEmpty)
		return []domain.SubtitleDescriptor{}
	}
	if len(subtitles) == 0 {
		p.metrics.IncLookup(metrics.OutcomeEmpty)
		return []domain.SubtitleDescriptor{}
	}

	log.Info("Subtitles found", "internal_id", match.InternalID, "count", len(subtitles))
	p.metrics.IncLookup(metrics.OutcomeFound)
	return subtitles
}

// resolveInfo returns the cached or freshly fetched title info, or nil on failure.
func (p *Pipeline) resolveInfo(ctx context.Context, imdbID string) *domain.MediaInfo {
	key := infoKeyPrefix + imdbID

	if v, ok := p.cache.Get(key); ok {
		if info, ok := v.(domain.MediaInfo); ok {
			p.metrics.IncCacheHit(metrics.StageInfo)
			return &info
		}
	}
	p.metrics.IncCacheMiss(metrics.StageInfo)

	info, err := p.metadata.Lookup(ctx, imdbID)
	if err != nil {
		slog.Warn("Metadata lookup failed, continuing without title",
			"stage", metrics.StageInfo,
			"provider", p.metadata.ID(),
			"imdb_id", imdbID,
			"error", err,
		)
		p.metrics.IncStageFailure(metrics.StageInfo)
		return nil
	}

	p.cache.Put(key, info)
	return &info
}

// resolveInternalID returns the cached or freshly searched site match.
func (p *Pipeline) resolveInternalID(ctx context.Context, imdbID string, info *domain.MediaInfo) (domain.SiteSearchResult, error) {
	key := searchKeyPrefix + imdbID

	if v, ok := p.cache.Get(key); ok {
		if match, ok := v.(domain.SiteSearchResult); ok {
			p.metrics.IncCacheHit(metrics.StageSearch)
			return match, nil
		}
	}
	p.metrics.IncCacheMiss(metrics.StageSearch)

	match, ok := p.searcher.Search(ctx, imdbID, info)
	if !ok {
		p.metrics.IncStageFailure(metrics.StageSearch)
		return domain.SiteSearchResult{}, fmt.Errorf("%w: %s", ErrNotFound, imdbID)
	}

	p.cache.Put(key, match)
	return match, nil
}
