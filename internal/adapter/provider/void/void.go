package void

import (
	"context"
	"errors"

	"subtitrari-noi-addon/internal/domain"
)

// ErrDisabled is returned by every lookup.
var ErrDisabled = errors.New("metadata lookups disabled")

// Provider is a fallback metadata provider used when no OMDb key is configured.
// Lookups always fail softly so the pipeline proceeds without a title.
type Provider struct{}

// NewProvider creates a new void provider instance.
func NewProvider() *Provider {
	return &Provider{}
}

// ID returns the unique identifier for this provider.
func (p *Provider) ID() string {
	return "void"
}

// Lookup never resolves a title.
func (p *Provider) Lookup(_ context.Context, _ string) (domain.MediaInfo, error) {
	return domain.MediaInfo{}, ErrDisabled
}
