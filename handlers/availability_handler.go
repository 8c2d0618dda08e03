package handlers

import (
	"net/http"

	"github.com/courtside-dev/referee-system/middleware"
	"github.com/courtside-dev/referee-system/models"
	"github.com/courtside-dev/referee-system/services"
)

type AvailabilityHandler struct {
	availabilityService services.AvailabilityService
}

func NewAvailabilityHandler(availabilityService services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: availabilityService}
}

func (h *AvailabilityHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "Unauthorized")
		return
	}

	entries, err := h.availabilityService.ListForUser(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, entries, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Upsert takes {"availabilities": {"2025-01-10": "AVAILABLE", ...}} and
// writes one record per date, overwriting the type of existing records.
func (h *AvailabilityHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "Unauthorized")
		return
	}

	var input struct {
		Availabilities map[string]models.AvailabilityType `json:"availabilities"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entries, err := h.availabilityService.Upsert(r.Context(), userID, input.Availabilities)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, entries, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RefereeAvailability is the admin view: all referees' availability inside
// an inclusive ?startDate=...&endDate=... range.
func (h *AvailabilityHandler) RefereeAvailability(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")

	entries, err := h.availabilityService.RangeQuery(r.Context(), startDate, endDate)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, entries, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
