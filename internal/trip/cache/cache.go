// Package cache stores raw upstream search responses for a short TTL so a
// re-search with identical parameters does not hammer the search service.
// Only the raw response is cached; the pipeline stages always re-run.
package cache

import (
	"context"
	"fmt"

	"github.com/minjae-dev/trips/internal/trip/types"
)

// Cache retrieves a raw search response for a key, fetching it on a miss.
type Cache interface {
	// GetOrFetch returns the cached response for key, or executes fetch and
	// stores its result. The boolean reports a cache hit.
	GetOrFetch(ctx context.Context, key string, fetch func() (*types.SearchResponse, error)) (*types.SearchResponse, bool, error)
	Close() error
}

// Key derives the cache key for a search request.
func Key(req types.SearchRequest) string {
	return fmt.Sprintf("%d:%d:%s:%s:%s",
		req.BudgetWon, req.People, req.DepartDate, req.ReturnDate, req.PreferredRegion)
}
