package provider

import (
	"subtitrari-noi-addon/internal/adapter/provider/omdb"
	"subtitrari-noi-addon/internal/adapter/provider/void"
	"subtitrari-noi-addon/internal/domain"
)

// NewMetadataProvider picks the metadata provider for the given credentials.
// Without an API key every lookup is skipped through the void provider.
func NewMetadataProvider(apiKey, baseURL string) domain.MetadataProvider {
	if apiKey == "" {
		return void.NewProvider()
	}
	return omdb.New(apiKey, baseURL)
}
