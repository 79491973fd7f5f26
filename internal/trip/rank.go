package trip

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/minjae-dev/trips/internal/trip/types"
)

// Rank returns a new slice ordered by the given key and direction. The
// input slice is never reordered in place so the stability guard can compare
// the published ordering against the new one.
func Rank(offers []types.Offer, key types.SortKey, order types.SortOrder) []types.Offer {
	sorted := make([]types.Offer, len(offers))
	copy(sorted, offers)

	less := priceLess
	if key == types.SortTime {
		less = timeLess
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if order == types.OrderDesc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

func priceLess(a, b types.Offer) bool {
	return a.Price.Amount < b.Price.Amount
}

// timeLess orders by departure clock time. When either side fails to parse
// the two offers compare equal, so malformed times keep their relative
// position instead of guessing an ordering.
func timeLess(a, b types.Offer) bool {
	am, aok := ClockMinutes(a.Departure.Time)
	bm, bok := ClockMinutes(b.Departure.Time)
	if !aok || !bok {
		return false
	}
	return am < bm
}

var clockMarkers = regexp.MustCompile(`(?i)오전|오후|AM|PM`)

// ClockMinutes parses a localized clock string such as "오전 09:00",
// "오후 01:30", "9:15 PM" or plain "14:05" into minutes since midnight.
// Hour 12 under a morning marker maps to 0; hours other than 12 under an
// afternoon marker gain 12. Strings without exactly an hour and a minute
// component report ok=false. Non-numeric components fall back to zero.
func ClockMinutes(s string) (int, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}

	afternoon := strings.Contains(s, "오후") || strings.Contains(strings.ToUpper(s), "PM")
	morning := strings.Contains(s, "오전") || strings.Contains(strings.ToUpper(s), "AM")

	cleaned := strings.TrimSpace(clockMarkers.ReplaceAllString(s, ""))
	parts := strings.Split(cleaned, ":")
	if len(parts) != 2 {
		return 0, false
	}

	hour, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	minute, _ := strconv.Atoi(strings.TrimSpace(parts[1]))

	switch {
	case afternoon && hour != 12:
		hour += 12
	case morning && hour == 12:
		hour = 0
	}
	return hour*60 + minute, true
}
