package main

import (
	"math/rand"
	"sync"
	"time"

	"github.com/minjae-dev/trips/internal/trip/types"
)

// Reference mid-market rates, won per unit of the target currency. Each
// refresh jitters around these by up to ±2%.
const (
	baseRateJPY = 9.2
	baseRateUSD = 1390.0
)

// RateBoard holds the current exchange-rate table, refreshed on a schedule.
type RateBoard struct {
	mu        sync.RWMutex
	rates     map[string]float64
	updatedAt time.Time
	rng       *rand.Rand
}

// NewRateBoard creates an empty RateBoard; call Refresh before serving.
func NewRateBoard() *RateBoard {
	return &RateBoard{
		rates: make(map[string]float64),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Refresh replaces the rate table with freshly jittered values.
func (b *RateBoard) Refresh() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rates = map[string]float64{
		"JPY": jitter(b.rng, baseRateJPY),
		"USD": jitter(b.rng, baseRateUSD),
	}
	b.updatedAt = time.Now()
}

// Snapshot returns the current table in wire format.
func (b *RateBoard) Snapshot() types.ExchangeTable {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rates := make(map[string]float64, len(b.rates))
	for cur, rate := range b.rates {
		rates[cur] = rate
	}
	return types.ExchangeTable{
		Base:      "KRW",
		Rates:     rates,
		UpdatedAt: b.updatedAt.UTC().Format(time.RFC3339),
	}
}

func jitter(rng *rand.Rand, base float64) float64 {
	factor := 0.98 + rng.Float64()*0.04
	return float64(int(base*factor*100)) / 100
}
