// Package trip implements the offer normalization and ranking pipeline:
// raw search responses are normalized, deduplicated, enriched with currency
// and lodging data, ranked, and published as one wholesale-replaced result
// set. Pure re-sorts re-run only the ranker and the stability guard.
package trip

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/minjae-dev/trips/internal/obs"
	"github.com/minjae-dev/trips/internal/searchclient"
	"github.com/minjae-dev/trips/internal/trip/cache"
	"github.com/minjae-dev/trips/internal/trip/types"
)

// Searcher issues one search request against the trip-search service.
type Searcher interface {
	Search(ctx context.Context, req types.SearchRequest) (*types.SearchResponse, error)
}

// Pipeline runs the search stages and owns the single published result set.
// Each successful run replaces the published set wholesale; nothing is ever
// patched incrementally. Concurrent searches race and the last one to
// complete wins, which is accepted behavior.
type Pipeline struct {
	client  Searcher
	cache   cache.Cache
	metrics *obs.Metrics
	logger  *slog.Logger

	mu        sync.Mutex
	published *types.Result
	sortBy    types.SortKey
	order     types.SortOrder
}

// New creates a Pipeline.
func New(client Searcher, responseCache cache.Cache, metrics *obs.Metrics, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		client:  client,
		cache:   responseCache,
		metrics: metrics,
		logger:  logger,
		sortBy:  types.SortPrice,
		order:   types.OrderAsc,
	}
}

// Search validates the request, fetches the raw response (through the
// response cache), runs normalize → dedup → enrich → rank in one pass, and
// publishes the result. A failed upstream call publishes an empty result
// carrying the failure category instead of returning an error; only an
// invalid request or a cancelled context errors, and neither touches the
// published list.
func (p *Pipeline) Search(ctx context.Context, req types.SearchRequest, sortBy types.SortKey, order types.SortOrder) (*types.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	raw, hit, err := p.cache.GetOrFetch(ctx, cache.Key(req), func() (*types.SearchResponse, error) {
		return p.client.Search(ctx, req)
	})
	if err != nil {
		// A caller that went away mid-fetch is not an upstream failure;
		// leave whatever is published in place.
		if ctx.Err() != nil {
			return nil, err
		}
		category := types.FailureUpstream
		if errors.Is(err, searchclient.ErrUnavailable) {
			category = types.FailureNetwork
		}
		p.metrics.IncUpstreamError(category)
		p.logger.Error("trip search failed",
			"category", category,
			"budget_won", req.BudgetWon,
			"depart_date", req.DepartDate,
			"error", err,
		)
		result := &types.Result{
			Offers:   []types.Offer{},
			Lodging:  map[string][]types.LodgingQuote{},
			Exchange: map[string]types.ConversionEstimate{},
			Failure:  category,
		}
		p.publish(result, sortBy, order)
		return result, nil
	}
	if hit {
		p.metrics.IncCacheHit()
	}

	normalized := Normalize(raw.Flights)
	unique := Deduplicate(normalized)
	conversions, lodging := Enrich(unique, raw.Exchange, raw.Hotels)
	ranked := Rank(unique, sortBy, order)

	result := &types.Result{
		Offers:            ranked,
		Lodging:           lodging,
		Exchange:          conversions,
		Budget:            raw.Budget,
		RawCount:          len(normalized),
		DuplicatesRemoved: len(normalized) - len(unique),
		CacheHit:          hit,
	}
	p.publish(result, sortBy, order)

	p.logger.Info("trip search completed",
		"offers", len(ranked),
		"duplicates_removed", result.DuplicatesRemoved,
		"cache_hit", hit,
		"sort", string(sortBy),
		"order", string(order),
	)
	return result, nil
}

// Resort re-ranks the published list under a new sort preference. Only the
// ranker and the stability guard run; when the guard sees an unchanged
// ordering the published set is returned as-is, same identity, and the
// second return value is false.
func (p *Pipeline) Resort(sortBy types.SortKey, order types.SortOrder) (*types.Result, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.published == nil {
		return &types.Result{
			Offers:   []types.Offer{},
			Lodging:  map[string][]types.LodgingQuote{},
			Exchange: map[string]types.ConversionEstimate{},
		}, false
	}

	sorted := Rank(p.published.Offers, sortBy, order)
	p.sortBy, p.order = sortBy, order

	if !shouldReplace(p.published.Offers, sorted, sortBy) {
		return p.published, false
	}

	next := *p.published
	next.Offers = sorted
	p.published = &next
	return p.published, true
}

// Published returns the current result set, or nil when no search has
// completed yet.
func (p *Pipeline) Published() *types.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.published
}

func (p *Pipeline) publish(result *types.Result, sortBy types.SortKey, order types.SortOrder) {
	p.mu.Lock()
	p.published = result
	p.sortBy = sortBy
	p.order = order
	p.mu.Unlock()
	p.metrics.SetPublishedOffers(len(result.Offers))
}
