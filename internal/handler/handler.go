// Package handler is the HTTP layer over the trip pipeline: request
// decoding and validation, the search and re-sort endpoints, and JSON
// encoding. Rendering and persistence stay with the calling UI.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/minjae-dev/trips/internal/middleware"
	"github.com/minjae-dev/trips/internal/obs"
	"github.com/minjae-dev/trips/internal/trip"
	"github.com/minjae-dev/trips/internal/trip/ratelimit"
	"github.com/minjae-dev/trips/internal/trip/types"
)

// Handler handles HTTP requests.
type Handler struct {
	pipeline    *trip.Pipeline
	rateLimiter *ratelimit.Limiter
	metrics     *obs.Metrics
	logger      *slog.Logger
}

// New creates a Handler.
func New(pipeline *trip.Pipeline, rateLimiter *ratelimit.Limiter, metrics *obs.Metrics, logger *slog.Logger) *Handler {
	return &Handler{
		pipeline:    pipeline,
		rateLimiter: rateLimiter,
		metrics:     metrics,
		logger:      logger,
	}
}

// searchRequestBody is the inbound search payload: the upstream request
// fields plus an optional initial sort preference.
type searchRequestBody struct {
	types.SearchRequest
	SortBy string `json:"sortBy,omitempty"`
	Order  string `json:"order,omitempty"`
}

// SearchResponse is the full search API response.
type SearchResponse struct {
	Search   SearchInfo                          `json:"search"`
	Stats    SearchStats                         `json:"stats"`
	Budget   types.BudgetSummary                 `json:"budget"`
	Offers   []types.Offer                       `json:"offers"`
	Lodging  map[string][]types.LodgingQuote     `json:"lodging"`
	Exchange map[string]types.ConversionEstimate `json:"exchange"`
}

// SearchInfo echoes the validated search parameters.
type SearchInfo struct {
	BudgetWon       int64  `json:"budgetWon"`
	People          int    `json:"people"`
	DepartDate      string `json:"departDate"`
	ReturnDate      string `json:"returnDate"`
	PreferredRegion string `json:"preferredRegion,omitempty"`
	Sort            string `json:"sort"`
	Order           string `json:"order"`
}

// SearchStats reports how the result set was produced.
type SearchStats struct {
	OffersTotal       int    `json:"offers_total"`
	DuplicatesRemoved int    `json:"duplicates_removed"`
	Cache             string `json:"cache"`
	DurationMs        int64  `json:"duration_ms"`
	Failure           string `json:"failure,omitempty"`
	Republished       bool   `json:"republished"`
}

// SearchHandler handles POST /api/trips/search: one full pipeline run.
func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := middleware.RequestID(r.Context())

	ip := ExtractIP(r)
	if !h.rateLimiter.Allow(ip) {
		h.logger.Warn("rate limit exceeded", "request_id", requestID, "ip", ip)
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	var body searchRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.metrics.IncSearch("missing_field")
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	sortBy, err := types.ParseSortKey(body.SortBy)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	order, err := types.ParseSortOrder(body.Order)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.pipeline.Search(r.Context(), body.SearchRequest, sortBy, order)
	if err != nil {
		// Only validation fails here; the request was never sent upstream.
		if errors.Is(err, types.ErrMissingField) {
			h.metrics.IncSearch("missing_field")
			h.logger.Debug("search request rejected", "request_id", requestID, "error", err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.metrics.IncSearch("internal")
		h.logger.Error("search failed", "request_id", requestID, "error", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	outcome := "ok"
	if result.Failure != "" {
		outcome = result.Failure
	}
	h.metrics.IncSearch(outcome)
	h.metrics.ObserveSearchDuration(time.Since(startTime))

	cacheStatus := "miss"
	if result.CacheHit {
		cacheStatus = "hit"
	}

	writeJSON(w, h.logger, http.StatusOK, SearchResponse{
		Search: SearchInfo{
			BudgetWon:       body.BudgetWon,
			People:          body.People,
			DepartDate:      body.DepartDate,
			ReturnDate:      body.ReturnDate,
			PreferredRegion: body.PreferredRegion,
			Sort:            string(sortBy),
			Order:           string(order),
		},
		Stats: SearchStats{
			OffersTotal:       len(result.Offers),
			DuplicatesRemoved: result.DuplicatesRemoved,
			Cache:             cacheStatus,
			DurationMs:        time.Since(startTime).Milliseconds(),
			Failure:           result.Failure,
		},
		Budget:   result.Budget,
		Offers:   result.Offers,
		Lodging:  result.Lodging,
		Exchange: result.Exchange,
	})
}

// OffersResponse is the re-sort API response.
type OffersResponse struct {
	Stats    SearchStats                         `json:"stats"`
	Offers   []types.Offer                       `json:"offers"`
	Lodging  map[string][]types.LodgingQuote     `json:"lodging"`
	Exchange map[string]types.ConversionEstimate `json:"exchange"`
}

// OffersHandler handles GET /api/trips/offers: a pure re-sort of the
// published list. Only the ranker and the stability guard run.
func (h *Handler) OffersHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	sortBy, err := types.ParseSortKey(query.Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	order, err := types.ParseSortOrder(query.Get("order"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, republished := h.pipeline.Resort(sortBy, order)
	h.metrics.IncResort(republished)

	writeJSON(w, h.logger, http.StatusOK, OffersResponse{
		Stats: SearchStats{
			OffersTotal: len(result.Offers),
			Failure:     result.Failure,
			Republished: republished,
		},
		Offers:   result.Offers,
		Lodging:  result.Lodging,
		Exchange: result.Exchange,
	})
}

// ExtractIP extracts the client IP from the request.
// Checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr.
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Can't change status after WriteHeader, just log
		logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
