package trip

import (
	"fmt"

	"github.com/minjae-dev/trips/internal/trip/lookup"
	"github.com/minjae-dev/trips/internal/trip/types"
)

// Normalize converts raw flight records into canonical offers, preserving
// input length and order. Missing optional fields become zero values; a
// record is never dropped or rejected here.
func Normalize(raws []types.RawOffer) []types.Offer {
	offers := make([]types.Offer, 0, len(raws))
	for i, raw := range raws {
		offers = append(offers, normalizeOffer(i, raw))
	}
	return offers
}

func normalizeOffer(index int, raw types.RawOffer) types.Offer {
	segments := make([]types.Segment, 0, len(raw.Segments))
	for _, seg := range raw.Segments {
		segments = append(segments, types.Segment{
			CarrierCode:  carrierPrefix(seg.FlightNo),
			FlightNumber: seg.FlightNo,
			Departure:    types.Endpoint{Airport: seg.From, Time: seg.DepTime},
			Arrival:      types.Endpoint{Airport: seg.To, Time: seg.ArrTime},
		})
	}

	return types.Offer{
		ID:      offerID(index, raw),
		Airline: lookup.AirlineName(raw.Airline),
		Departure: types.Endpoint{
			Airport: raw.DepartureAirport,
			Time:    raw.DepartureTime,
		},
		Arrival: types.Endpoint{
			Airport: raw.ArrivalAirport,
			Time:    raw.ArrivalTime,
			City:    lookup.CityName(raw.ArrivalAirport),
		},
		DurationMinutes: raw.DurationMinutes,
		Duration:        FormatDuration(raw.DurationMinutes),
		Price:           types.Price{Amount: raw.PriceWon, Currency: "KRW"},
		Segments:        segments,
	}
}

// offerID derives a list identity from the positional index plus every
// discriminating field. The index keeps two structurally identical adjacent
// records distinct; the remaining fields make the id stable across runs for
// the same response.
func offerID(index int, raw types.RawOffer) string {
	segInfo := ""
	if len(raw.Segments) > 0 {
		segInfo = raw.Segments[0].FlightNo + "-" + raw.Segments[0].DepTime
	}
	return fmt.Sprintf("flight-%d-%s-%s-%s-%d-%s",
		index,
		raw.DepartureAirport,
		raw.ArrivalAirport,
		raw.DepartureTime,
		raw.PriceWon,
		segInfo,
	)
}

// carrierPrefix slices the 2-character carrier code off a flight number when
// the upstream record carries no explicit carrier field.
func carrierPrefix(flightNo string) string {
	if len(flightNo) < 2 {
		return ""
	}
	return flightNo[:2]
}

// FormatDuration renders total minutes as "H시간 M분", omitting zero-length
// components. Zero minutes render as an empty string.
func FormatDuration(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60

	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%d시간 %d분", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%d시간", hours)
	case mins > 0:
		return fmt.Sprintf("%d분", mins)
	}
	return ""
}
