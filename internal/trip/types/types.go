// Package types holds the domain entities shared by the trip pipeline and
// its collaborators: the search request, the raw upstream payload, and the
// canonical offer entities produced by normalization.
package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMissingField marks a request rejected before any upstream call because
// a mandatory field was absent or invalid.
var ErrMissingField = errors.New("missing field")

// Failure categories reported to the caller when a search run publishes an
// empty offer list instead of raising.
const (
	FailureNetwork  = "network"  // the search service could not be reached
	FailureUpstream = "upstream" // non-2xx or malformed upstream response
)

// SortKey selects the ranking key for an offer list.
type SortKey string

// SortOrder selects the ranking direction.
type SortOrder string

const (
	SortPrice SortKey = "price"
	SortTime  SortKey = "time"

	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortKey validates a sort key string; empty defaults to price.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return SortPrice, nil
	case SortPrice, SortTime:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("sort must be %q or %q", SortPrice, SortTime)
}

// ParseSortOrder validates a sort order string; empty defaults to ascending.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "":
		return OrderAsc, nil
	case OrderAsc, OrderDesc:
		return SortOrder(s), nil
	}
	return "", fmt.Errorf("order must be %q or %q", OrderAsc, OrderDesc)
}

// SearchRequest is the outbound request to the trip-search service. Budget
// and both travel dates are mandatory; a request that fails Validate is
// never sent.
type SearchRequest struct {
	BudgetWon       int64  `json:"budgetWon"`
	People          int    `json:"people"`
	DepartDate      string `json:"departDate"`
	ReturnDate      string `json:"returnDate"`
	PreferredRegion string `json:"preferredRegion,omitempty"`
}

// Validate checks the mandatory fields. Violations are reported as
// ErrMissingField so callers can reject the request before any network call.
func (r SearchRequest) Validate() error {
	if r.BudgetWon <= 0 {
		return fmt.Errorf("%w: budgetWon must be a positive amount", ErrMissingField)
	}
	if r.People < 1 {
		return fmt.Errorf("%w: people must be at least 1", ErrMissingField)
	}
	depart, err := parseDate(r.DepartDate)
	if err != nil {
		return fmt.Errorf("%w: departDate must be a YYYY-MM-DD date", ErrMissingField)
	}
	ret, err := parseDate(r.ReturnDate)
	if err != nil {
		return fmt.Errorf("%w: returnDate must be a YYYY-MM-DD date", ErrMissingField)
	}
	if !ret.After(depart) {
		return fmt.Errorf("%w: returnDate must be after departDate", ErrMissingField)
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	return time.Parse("2006-01-02", s)
}

// SearchResponse is the raw JSON document returned by the search service.
type SearchResponse struct {
	Exchange ExchangeTable `json:"exchange"`
	Budget   BudgetSummary `json:"budget"`
	Flights  []RawOffer    `json:"flights"`
	Hotels   []RawLodging  `json:"hotels"`
}

// ExchangeTable is the response-level rate table: base currency plus rates
// expressed as won per unit of the target currency.
type ExchangeTable struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	UpdatedAt string             `json:"updatedAt"`
}

// BudgetSummary is the upstream estimate of how the requested budget is
// consumed; passed through to the caller untouched.
type BudgetSummary struct {
	BudgetWon         int64 `json:"budgetWon"`
	EstimatedTotalWon int64 `json:"estimatedTotalWon"`
	RemainingWon      int64 `json:"remainingWon"`
}

// RawOffer is one loosely-typed flight record from the search service.
// Every field is optional on the wire; normalization fills safe defaults.
type RawOffer struct {
	Airline          string       `json:"airline"`
	PriceWon         int64        `json:"priceWon"`
	DepartureAirport string       `json:"departureAirport"`
	DepartureTime    string       `json:"departureTime"`
	ArrivalAirport   string       `json:"arrivalAirport"`
	ArrivalTime      string       `json:"arrivalTime"`
	DurationMinutes  int          `json:"durationMinutes"`
	Stops            int          `json:"stops"`
	Segments         []RawSegment `json:"segments"`
}

// RawSegment is one leg of a raw flight record.
type RawSegment struct {
	FlightNo string `json:"flightNo"`
	From     string `json:"from"`
	To       string `json:"to"`
	DepTime  string `json:"depTime"`
	ArrTime  string `json:"arrTime"`
}

// RawLodging is one hotel record from the search service. Older backends
// send name/price, newer ones hotelName/priceWon; both spellings are kept
// and reconciled during enrichment.
type RawLodging struct {
	HotelName string  `json:"hotelName"`
	Name      string  `json:"name"`
	Price     int64   `json:"price"`
	PriceWon  int64   `json:"priceWon"`
	Currency  string  `json:"currency"`
	Rating    float64 `json:"rating,omitempty"`
}

// Offer is one normalized, displayable trip offer.
type Offer struct {
	ID              string    `json:"id"`
	Airline         string    `json:"airline"`
	Departure       Endpoint  `json:"departure"`
	Arrival         Endpoint  `json:"arrival"`
	DurationMinutes int       `json:"durationMinutes"`
	Duration        string    `json:"duration"`
	Price           Price     `json:"price"`
	Segments        []Segment `json:"segments"`
}

// Endpoint is one end of a flight: airport code, localized clock string and,
// for arrivals, a resolved city display name.
type Endpoint struct {
	Airport string `json:"airport"`
	Time    string `json:"time"`
	City    string `json:"city,omitempty"`
}

// Price is an amount in minor units of the given currency.
type Price struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Segment is one normalized flight leg.
type Segment struct {
	CarrierCode  string   `json:"carrierCode"`
	FlightNumber string   `json:"flightNumber"`
	Departure    Endpoint `json:"departure"`
	Arrival      Endpoint `json:"arrival"`
}

// LodgingQuote is one hotel price attached to an offer.
type LodgingQuote struct {
	Name     string  `json:"name"`
	Price    int64   `json:"price"`
	Currency string  `json:"currency"`
	Rating   float64 `json:"rating,omitempty"`
}

// ConversionEstimate is the offer price converted into the destination's
// currency using the response-level exchange table.
type ConversionEstimate struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
	Rate     float64 `json:"rate"`
}

// Result is one published result set: the ranked offers plus their derived
// maps, replaced wholesale on every successful search run.
type Result struct {
	Offers   []Offer                       `json:"offers"`
	Lodging  map[string][]LodgingQuote     `json:"lodging"`
	Exchange map[string]ConversionEstimate `json:"exchange"`
	Budget   BudgetSummary                 `json:"budget"`

	Failure           string `json:"-"`
	RawCount          int    `json:"-"`
	DuplicatesRemoved int    `json:"-"`
	CacheHit          bool   `json:"-"`
}
