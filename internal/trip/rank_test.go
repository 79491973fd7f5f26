package trip_test

import (
	"testing"

	"github.com/minjae-dev/trips/internal/trip"
	"github.com/minjae-dev/trips/internal/trip/types"
)

func TestClockMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantOK  bool
	}{
		{name: "morning marker", input: "오전 09:00", want: 540, wantOK: true},
		{name: "afternoon marker", input: "오후 01:00", want: 780, wantOK: true},
		{name: "afternoon nine", input: "오후 09:00", want: 1260, wantOK: true},
		{name: "noon with afternoon marker", input: "오후 12:00", want: 720, wantOK: true},
		{name: "plain noon", input: "12:00", want: 720, wantOK: true},
		{name: "midnight with morning marker", input: "오전 12:00", want: 0, wantOK: true},
		{name: "plain 24-hour time", input: "14:05", want: 845, wantOK: true},
		{name: "english PM marker", input: "9:15 PM", want: 1275, wantOK: true},
		{name: "english lowercase am", input: "am 7:30", want: 450, wantOK: true},
		{name: "empty string", input: "", wantOK: false},
		{name: "no colon", input: "0900", wantOK: false},
		{name: "too many components", input: "09:00:00", wantOK: false},
		{name: "garbage", input: "soon", wantOK: false},
		// Non-numeric components fall back to zero rather than failing.
		{name: "non-numeric hour", input: "ab:30", want: 30, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := trip.ClockMinutes(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ClockMinutes(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ClockMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func pricedOffers(amounts ...int64) []types.Offer {
	offers := make([]types.Offer, len(amounts))
	for i, amount := range amounts {
		offers[i] = types.Offer{
			ID:    string(rune('a' + i)),
			Price: types.Price{Amount: amount, Currency: "KRW"},
		}
	}
	return offers
}

func TestRank_ByPrice(t *testing.T) {
	offers := pricedOffers(500000, 300000, 450000)

	asc := trip.Rank(offers, types.SortPrice, types.OrderAsc)
	for i, want := range []int64{300000, 450000, 500000} {
		if asc[i].Price.Amount != want {
			t.Errorf("ascending[%d] = %d, want %d", i, asc[i].Price.Amount, want)
		}
	}

	desc := trip.Rank(offers, types.SortPrice, types.OrderDesc)
	for i, want := range []int64{500000, 450000, 300000} {
		if desc[i].Price.Amount != want {
			t.Errorf("descending[%d] = %d, want %d", i, desc[i].Price.Amount, want)
		}
	}

	// Endpoints bound every other element.
	for _, o := range offers {
		if o.Price.Amount < asc[0].Price.Amount || o.Price.Amount > desc[0].Price.Amount {
			t.Errorf("price %d outside [min=%d, max=%d]", o.Price.Amount, asc[0].Price.Amount, desc[0].Price.Amount)
		}
	}
}

func TestRank_ByDepartureTime(t *testing.T) {
	offers := []types.Offer{
		{ID: "late", Departure: types.Endpoint{Time: "오후 01:00"}, Price: types.Price{Amount: 500000}},
		{ID: "early", Departure: types.Endpoint{Time: "오전 09:00"}, Price: types.Price{Amount: 300000}},
	}

	byTime := trip.Rank(offers, types.SortTime, types.OrderAsc)
	if byTime[0].ID != "early" || byTime[1].ID != "late" {
		t.Errorf("time ascending order = [%s %s], want [early late]", byTime[0].ID, byTime[1].ID)
	}

	byPrice := trip.Rank(offers, types.SortPrice, types.OrderAsc)
	if byPrice[0].Price.Amount != 300000 || byPrice[1].Price.Amount != 500000 {
		t.Errorf("price ascending order = [%d %d], want [300000 500000]",
			byPrice[0].Price.Amount, byPrice[1].Price.Amount)
	}
}

func TestRank_UnparsableTimesKeepRelativeOrder(t *testing.T) {
	offers := []types.Offer{
		{ID: "first", Departure: types.Endpoint{Time: "corrupt"}},
		{ID: "second", Departure: types.Endpoint{Time: ""}},
		{ID: "third", Departure: types.Endpoint{Time: "also bad"}},
	}

	for _, order := range []types.SortOrder{types.OrderAsc, types.OrderDesc} {
		sorted := trip.Rank(offers, types.SortTime, order)
		for i, want := range []string{"first", "second", "third"} {
			if sorted[i].ID != want {
				t.Errorf("order %s: position %d = %s, want %s (unparsable times must not reorder)",
					order, i, sorted[i].ID, want)
			}
		}
	}
}

func TestRank_MixedParsableAndUnparsable(t *testing.T) {
	offers := []types.Offer{
		{ID: "bad", Departure: types.Endpoint{Time: "corrupt"}},
		{ID: "morning", Departure: types.Endpoint{Time: "오전 08:00"}},
	}

	// Must not panic; the unparsable entry compares equal to everything.
	sorted := trip.Rank(offers, types.SortTime, types.OrderAsc)
	if len(sorted) != 2 {
		t.Fatalf("expected 2 offers, got %d", len(sorted))
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	offers := pricedOffers(500000, 300000)
	_ = trip.Rank(offers, types.SortPrice, types.OrderAsc)

	if offers[0].Price.Amount != 500000 || offers[1].Price.Amount != 300000 {
		t.Errorf("input mutated: [%d %d]", offers[0].Price.Amount, offers[1].Price.Amount)
	}
}

func TestRank_TiesDoNotCrash(t *testing.T) {
	offers := pricedOffers(100, 100, 100)
	sorted := trip.Rank(offers, types.SortPrice, types.OrderAsc)
	if len(sorted) != 3 {
		t.Fatalf("expected 3 offers, got %d", len(sorted))
	}
	// Stable sort keeps the original relative order for equal keys.
	for i, want := range []string{"a", "b", "c"} {
		if sorted[i].ID != want {
			t.Errorf("position %d = %s, want %s", i, sorted[i].ID, want)
		}
	}
}
