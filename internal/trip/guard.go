package trip

import (
	"strconv"

	"github.com/minjae-dev/trips/internal/trip/types"
)

// shouldReplace reports whether a re-sorted list is worth republishing. It
// compares a cheap fingerprint: the head element's active sort field plus
// the list length. Two lists with the same head and length but different
// interior order are indistinguishable here; the short-circuit exists to
// stop a sort-triggered refresh from re-triggering itself, not to detect
// every change.
func shouldReplace(current, sorted []types.Offer, key types.SortKey) bool {
	if len(current) != len(sorted) {
		return true
	}
	return headFingerprint(current, key) != headFingerprint(sorted, key)
}

func headFingerprint(offers []types.Offer, key types.SortKey) string {
	if len(offers) == 0 {
		return ""
	}
	if key == types.SortTime {
		return offers[0].Departure.Time
	}
	return strconv.FormatInt(offers[0].Price.Amount, 10)
}
