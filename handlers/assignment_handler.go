package handlers

import (
	"context"
	"net/http"

	"github.com/courtside-dev/referee-system/middleware"
	"github.com/courtside-dev/referee-system/models"
	"github.com/courtside-dev/referee-system/services"
)

type AssignmentHandler struct {
	assignmentService services.AssignmentService
}

func NewAssignmentHandler(assignmentService services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// ListOwn returns the caller's assignments, each joined with its game,
// soonest first.
func (h *AssignmentHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "Unauthorized")
		return
	}

	assignments, err := h.assignmentService.ListForUser(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, assignments, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateAssignmentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	assignment, err := h.assignmentService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, assignment, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AssignmentHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.assignmentService.Accept)
}

func (h *AssignmentHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.assignmentService.Decline)
}

// transition handles accept and decline. The acting identity always comes
// from the authenticated context, never from the request body.
func (h *AssignmentHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, assignmentID, actingUserID int) (*models.Assignment, error),
) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "Unauthorized")
		return
	}

	assignmentID, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	assignment, err := apply(r.Context(), assignmentID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, assignment, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.assignmentService.Delete(r.Context(), assignmentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"message": "Assignment deleted successfully"}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
