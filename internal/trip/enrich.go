package trip

import (
	"github.com/minjae-dev/trips/internal/trip/lookup"
	"github.com/minjae-dev/trips/internal/trip/types"
)

// Enrich derives the per-offer conversion estimates and lodging quotes for
// one result set, keyed by offer id.
func Enrich(offers []types.Offer, exchange types.ExchangeTable, hotels []types.RawLodging) (map[string]types.ConversionEstimate, map[string][]types.LodgingQuote) {
	conversions := make(map[string]types.ConversionEstimate, len(offers))
	for _, offer := range offers {
		currency := lookup.CurrencyZone(offer.Arrival.Airport)
		rate := exchange.Rates[currency]
		if rate == 0 {
			rate = 1
		}
		conversions[offer.ID] = types.ConversionEstimate{
			Currency: currency,
			Amount:   float64(offer.Price.Amount) / rate,
			Rate:     rate,
		}
	}

	lodging := make(map[string][]types.LodgingQuote, len(offers))
	if len(hotels) > 0 {
		quotes := make([]types.LodgingQuote, 0, len(hotels))
		for _, h := range hotels {
			quotes = append(quotes, normalizeLodging(h))
		}
		// The backend does not yet map hotels to individual flights, so the
		// whole list is attached to every offer. Known upstream limitation;
		// keep until the contract grows a per-offer mapping.
		for _, offer := range offers {
			lodging[offer.ID] = quotes
		}
	}

	return conversions, lodging
}

func normalizeLodging(h types.RawLodging) types.LodgingQuote {
	name := h.HotelName
	if name == "" {
		name = h.Name
	}
	if name == "" {
		name = "호텔명 없음"
	}

	price := h.Price
	if price == 0 {
		price = h.PriceWon
	}

	currency := h.Currency
	if currency == "" {
		currency = "KRW"
	}

	return types.LodgingQuote{
		Name:     name,
		Price:    price,
		Currency: currency,
		Rating:   h.Rating,
	}
}
