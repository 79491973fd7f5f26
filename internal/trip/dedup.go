package trip

import (
	"strconv"
	"strings"

	"github.com/minjae-dev/trips/internal/trip/types"
)

// Deduplicate removes offers that repeat an earlier identity key, keeping
// the first occurrence in original order. The identity key is the business
// notion of "the same offer" and is deliberately coarser than Offer.ID,
// which always differs through its positional index.
func Deduplicate(offers []types.Offer) []types.Offer {
	seen := make(map[string]struct{}, len(offers))
	unique := make([]types.Offer, 0, len(offers))
	for _, offer := range offers {
		key := identityKey(offer)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, offer)
	}
	return unique
}

func identityKey(o types.Offer) string {
	flightNo := ""
	if len(o.Segments) > 0 {
		flightNo = o.Segments[0].FlightNumber
	}
	return strings.Join([]string{
		o.Airline,
		o.Departure.Airport,
		o.Arrival.Airport,
		o.Departure.Time,
		strconv.FormatInt(o.Price.Amount, 10),
		flightNo,
	}, "-")
}
