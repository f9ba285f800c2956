package service

import (
	"errors"
)

// ErrNotFound is returned when no internal id could be resolved for a request.
var ErrNotFound = errors.New("no matching title on subtitle site")

// Cache memoizes metadata and search results between requests.
type Cache interface {
	Get(key string) (any, bool)
	Put(key string, value any)
}

const (
	infoKeyPrefix   = "info:"
	searchKeyPrefix = "search:"
)
