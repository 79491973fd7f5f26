package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/minjae-dev/trips/internal/trip/types"
)

// Memory is an in-process TTL cache. Concurrent fetches for the same key are
// collapsed into one upstream call via singleflight.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	group   singleflight.Group
	done    chan struct{}
}

type memoryEntry struct {
	response  *types.SearchResponse
	expiresAt time.Time
}

// flightValue carries a shared fetch result plus whether it came out of the
// cache rather than the upstream call.
type flightValue struct {
	resp *types.SearchResponse
	hit  bool
}

// NewMemory creates a Memory cache with the given TTL.
func NewMemory(ttl time.Duration) *Memory {
	c := &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// GetOrFetch implements Cache.
func (c *Memory) GetOrFetch(ctx context.Context, key string, fetch func() (*types.SearchResponse, error)) (*types.SearchResponse, bool, error) {
	if resp, ok := c.lookup(key); ok {
		return resp, true, nil
	}

	// fetched is set only when this caller's closure ran the fetch; the
	// closures of callers collapsed onto another flight never execute.
	fetched := false
	ch := c.group.DoChan(key, func() (any, error) {
		// A waiter may have populated the entry while we queued.
		if resp, ok := c.lookup(key); ok {
			return flightValue{resp: resp, hit: true}, nil
		}
		resp, err := fetch()
		if err != nil {
			return nil, err
		}
		fetched = true
		c.store(key, resp)
		return flightValue{resp: resp}, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, false, res.Err
		}
		fv := res.Val.(flightValue)
		// A caller that rode someone else's fetch saw a hit; only the
		// caller that actually fetched reports a miss.
		return fv.resp, fv.hit || !fetched, nil
	case <-ctx.Done():
		return nil, false, context.Cause(ctx)
	}
}

// Close stops the background cleanup goroutine.
func (c *Memory) Close() error {
	close(c.done)
	return nil
}

func (c *Memory) lookup(key string) (*types.SearchResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.response, true
}

func (c *Memory) store(key string, resp *types.SearchResponse) {
	c.mu.Lock()
	c.entries[key] = memoryEntry{
		response:  resp,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

func (c *Memory) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		case <-c.done:
			return
		}
	}
}
