package trip_test

import (
	"testing"

	"github.com/minjae-dev/trips/internal/trip"
	"github.com/minjae-dev/trips/internal/trip/types"
)

func TestEnrich_ConversionByDestination(t *testing.T) {
	exchange := types.ExchangeTable{
		Base:  "KRW",
		Rates: map[string]float64{"JPY": 9.2, "USD": 1390},
	}

	tests := []struct {
		name         string
		airport      string
		wantCurrency string
		wantRate     float64
	}{
		{name: "Narita converts to yen", airport: "NRT", wantCurrency: "JPY", wantRate: 9.2},
		{name: "Haneda converts to yen", airport: "HND", wantCurrency: "JPY", wantRate: 9.2},
		{name: "Kansai converts to yen", airport: "KIX", wantCurrency: "JPY", wantRate: 9.2},
		{name: "other airports default to dollars", airport: "BKK", wantCurrency: "USD", wantRate: 1390},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offer := types.Offer{
				ID:      "flight-0",
				Arrival: types.Endpoint{Airport: tt.airport},
				Price:   types.Price{Amount: 460000, Currency: "KRW"},
			}

			conversions, _ := trip.Enrich([]types.Offer{offer}, exchange, nil)

			estimate, ok := conversions["flight-0"]
			if !ok {
				t.Fatal("expected a conversion estimate for the offer")
			}
			if estimate.Currency != tt.wantCurrency {
				t.Errorf("currency = %q, want %q", estimate.Currency, tt.wantCurrency)
			}
			if estimate.Rate != tt.wantRate {
				t.Errorf("rate = %v, want %v", estimate.Rate, tt.wantRate)
			}
			wantAmount := 460000 / tt.wantRate
			if estimate.Amount != wantAmount {
				t.Errorf("amount = %v, want %v", estimate.Amount, wantAmount)
			}
		})
	}
}

func TestEnrich_MissingRateDefaultsToOne(t *testing.T) {
	offer := types.Offer{
		ID:      "flight-0",
		Arrival: types.Endpoint{Airport: "NRT"},
		Price:   types.Price{Amount: 250000},
	}

	conversions, _ := trip.Enrich([]types.Offer{offer}, types.ExchangeTable{}, nil)

	estimate := conversions["flight-0"]
	if estimate.Rate != 1 {
		t.Errorf("rate = %v, want 1 when the table has no entry", estimate.Rate)
	}
	if estimate.Amount != 250000 {
		t.Errorf("amount = %v, want 250000", estimate.Amount)
	}
}

func TestEnrich_SharedLodgingList(t *testing.T) {
	offers := []types.Offer{
		{ID: "flight-0", Arrival: types.Endpoint{Airport: "NRT"}},
		{ID: "flight-1", Arrival: types.Endpoint{Airport: "KIX"}},
	}
	hotels := []types.RawLodging{
		{HotelName: "그랜드 시티 호텔", PriceWon: 180000, Currency: "KRW", Rating: 4.5},
		{Name: "스테이 인", Price: 95000},
	}

	_, lodging := trip.Enrich(offers, types.ExchangeTable{}, hotels)

	if len(lodging) != 2 {
		t.Fatalf("expected lodging for both offers, got %d entries", len(lodging))
	}

	// The backend has no per-offer mapping; every offer gets the same list.
	for _, offer := range offers {
		quotes := lodging[offer.ID]
		if len(quotes) != 2 {
			t.Fatalf("offer %s: expected 2 quotes, got %d", offer.ID, len(quotes))
		}
		if quotes[0].Name != "그랜드 시티 호텔" || quotes[0].Price != 180000 {
			t.Errorf("offer %s: unexpected first quote %+v", offer.ID, quotes[0])
		}
		// Alternate field spellings and missing currency are reconciled.
		if quotes[1].Name != "스테이 인" || quotes[1].Price != 95000 || quotes[1].Currency != "KRW" {
			t.Errorf("offer %s: unexpected second quote %+v", offer.ID, quotes[1])
		}
	}
}

func TestEnrich_NoLodgingLeavesMapEmpty(t *testing.T) {
	offers := []types.Offer{{ID: "flight-0"}}

	_, lodging := trip.Enrich(offers, types.ExchangeTable{}, nil)
	if len(lodging) != 0 {
		t.Errorf("expected no lodging entries, got %d", len(lodging))
	}
}

func TestEnrich_NamelessHotelGetsPlaceholder(t *testing.T) {
	offers := []types.Offer{{ID: "flight-0"}}
	hotels := []types.RawLodging{{PriceWon: 80000}}

	_, lodging := trip.Enrich(offers, types.ExchangeTable{}, hotels)
	quotes := lodging["flight-0"]
	if len(quotes) != 1 || quotes[0].Name != "호텔명 없음" {
		t.Errorf("expected placeholder hotel name, got %+v", quotes)
	}
}
