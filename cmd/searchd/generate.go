package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/minjae-dev/trips/internal/trip/types"
)

// destination is one airport searchd can route offers to.
type destination struct {
	airport  string
	carriers []string
	minWon   int64 // cheapest plausible one-way fare
	maxWon   int64
	flightHr int // rough flight duration in hours
}

var regionDestinations = map[string][]destination{
	"JAPAN": {
		{airport: "NRT", carriers: []string{"KE", "OZ", "7C", "JL"}, minWon: 150000, maxWon: 450000, flightHr: 2},
		{airport: "KIX", carriers: []string{"KE", "TW", "LJ", "NH"}, minWon: 130000, maxWon: 400000, flightHr: 2},
		{airport: "FUK", carriers: []string{"7C", "TW", "BX"}, minWon: 110000, maxWon: 300000, flightHr: 1},
		{airport: "CTS", carriers: []string{"KE", "OZ", "TW"}, minWon: 180000, maxWon: 500000, flightHr: 3},
	},
	"SEA": {
		{airport: "BKK", carriers: []string{"KE", "OZ", "TG"}, minWon: 250000, maxWon: 700000, flightHr: 6},
		{airport: "DAD", carriers: []string{"KE", "7C", "VN"}, minWon: 200000, maxWon: 550000, flightHr: 5},
		{airport: "CEB", carriers: []string{"7C", "5J", "PR"}, minWon: 220000, maxWon: 600000, flightHr: 4},
		{airport: "SIN", carriers: []string{"KE", "SQ"}, minWon: 300000, maxWon: 800000, flightHr: 6},
	},
	// Domestic fallback when no region preference is given.
	"": {
		{airport: "CJU", carriers: []string{"KE", "OZ", "7C", "TW", "LJ"}, minWon: 30000, maxWon: 120000, flightHr: 1},
		{airport: "PUS", carriers: []string{"KE", "BX"}, minWon: 40000, maxWon: 100000, flightHr: 1},
	},
}

// Departure strings some feeds report instead of a clock time. Callers are
// expected to tolerate these without reordering the affected offers.
var oddDepartureTimes = []string{"미정", "새벽 출발", "0930"}

var hotelCatalog = []types.RawLodging{
	{HotelName: "그랜드 시티 호텔", PriceWon: 180000, Currency: "KRW", Rating: 4.5},
	{HotelName: "스테이 인 센트럴", PriceWon: 95000, Currency: "KRW", Rating: 4.0},
	{Name: "비즈니스 호텔 미카도", Price: 120000, Currency: "KRW", Rating: 3.8},
}

// SearchService generates trip-search responses.
type SearchService struct {
	rates  *RateBoard
	rng    *rand.Rand
	logger *slog.Logger
}

// NewSearchService creates a SearchService backed by the given rate board.
func NewSearchService(rates *RateBoard, logger *slog.Logger) *SearchService {
	return &SearchService{
		rates:  rates,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: logger,
	}
}

// ServeHTTP handles POST /api/trips/search.
func (s *SearchService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req types.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.BudgetWon <= 0 {
		http.Error(w, "budgetWon is required", http.StatusBadRequest)
		return
	}
	if req.People < 1 {
		req.People = 1
	}

	resp := s.generate(req)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *SearchService) generate(req types.SearchRequest) *types.SearchResponse {
	region := strings.ToUpper(strings.TrimSpace(req.PreferredRegion))
	destinations, ok := regionDestinations[region]
	if !ok {
		destinations = regionDestinations[""]
	}

	perPerson := req.BudgetWon / int64(req.People)

	var flights []types.RawOffer
	for _, dest := range destinations {
		for i := 0; i < 2+s.rng.Intn(3); i++ {
			offer := s.generateFlight(dest)
			if offer.PriceWon > perPerson {
				continue
			}

			// Occasionally swap in a departure string that is not a clock
			// time; some real feeds do, and callers must cope.
			if s.rng.Float64() < 0.1 {
				offer.DepartureTime = oddDepartureTimes[s.rng.Intn(len(oddDepartureTimes))]
			}
			flights = append(flights, offer)

			// Occasionally repeat a record verbatim; real responses carry
			// exact duplicates and the caller is expected to collapse them.
			if s.rng.Float64() < 0.15 {
				flights = append(flights, offer)
			}
		}
	}

	var cheapest int64
	for _, f := range flights {
		if cheapest == 0 || f.PriceWon < cheapest {
			cheapest = f.PriceWon
		}
	}
	estimated := cheapest * int64(req.People)
	if len(hotelCatalog) > 0 {
		estimated += hotelCatalog[1].PriceWon
	}

	return &types.SearchResponse{
		Exchange: s.rates.Snapshot(),
		Budget: types.BudgetSummary{
			BudgetWon:         req.BudgetWon,
			EstimatedTotalWon: estimated,
			RemainingWon:      req.BudgetWon - estimated,
		},
		Flights: flights,
		Hotels:  hotelCatalog,
	}
}

func (s *SearchService) generateFlight(dest destination) types.RawOffer {
	carrier := dest.carriers[s.rng.Intn(len(dest.carriers))]
	flightNo := fmt.Sprintf("%s%d", carrier, 100+s.rng.Intn(900))
	price := dest.minWon + s.rng.Int63n(dest.maxWon-dest.minWon)

	depHour := 6 + s.rng.Intn(16)
	depMinute := 5 * s.rng.Intn(12)
	duration := dest.flightHr*60 + s.rng.Intn(50)

	arrHour := (depHour + duration/60) % 24
	arrMinute := (depMinute + duration%60) % 60

	depTime := clockString(depHour, depMinute)
	arrTime := clockString(arrHour, arrMinute)

	return types.RawOffer{
		Airline:          carrier,
		PriceWon:         price,
		DepartureAirport: "ICN",
		DepartureTime:    depTime,
		ArrivalAirport:   dest.airport,
		ArrivalTime:      arrTime,
		DurationMinutes:  duration,
		Stops:            0,
		Segments: []types.RawSegment{
			{
				FlightNo: flightNo,
				From:     "ICN",
				To:       dest.airport,
				DepTime:  depTime,
				ArrTime:  arrTime,
			},
		},
	}
}

// clockString renders an hour and minute in the localized 12-hour form the
// real backend emits, e.g. "오전 09:05" or "오후 11:30".
func clockString(hour, minute int) string {
	marker := "오전"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		marker = "오후"
	case hour > 12:
		marker = "오후"
		display = hour - 12
	}
	return fmt.Sprintf("%s %02d:%02d", marker, display, minute)
}
