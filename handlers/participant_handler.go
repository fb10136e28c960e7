package handlers

import (
	"net/http"

	"github.com/house7784/golf-trip-app/middleware"
	"github.com/house7784/golf-trip-app/services"
)

type ParticipantHandler struct {
	participantService services.ParticipantService
}

func NewParticipantHandler(participantService services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService}
}

// Join godoc
// @Summary Join an event as the authenticated user
// @Tags participants
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 201 {object} map[string]interface{}
// @Security BearerAuth
// @Router /events/{eventID}/participants [post]
func (h *ParticipantHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	eventID, err := idParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participant, err := h.participantService.Join(r.Context(), eventID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListRoster godoc
// @Summary List an event's participants
// @Tags participants
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /events/{eventID}/participants [get]
func (h *ParticipantHandler) ListRoster(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	roster, err := h.participantService.ListRoster(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"participants": roster}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetTeam godoc
// @Summary Move a participant between teams (organizer only)
// @Tags participants
// @Accept json
// @Produce json
// @Param eventID path int true "Event ID"
// @Param participantID path int true "Participant ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /events/{eventID}/participants/{participantID}/team [put]
func (h *ParticipantHandler) SetTeam(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	eventID, err := idParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	participantID, err := idParam(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		TeamID *int `json:"team_id"` // null removes from any team
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participant, err := h.participantService.SetTeam(r.Context(), eventID, participantID, userID, input.TeamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// OverrideHandicap godoc
// @Summary Override a participant's event handicap (organizer only)
// @Tags participants
// @Accept json
// @Produce json
// @Param eventID path int true "Event ID"
// @Param participantID path int true "Participant ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /events/{eventID}/participants/{participantID}/handicap [put]
func (h *ParticipantHandler) OverrideHandicap(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	eventID, err := idParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	participantID, err := idParam(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		EventHandicap *float64 `json:"event_handicap"` // null reverts to the profile handicap
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participant, err := h.participantService.OverrideEventHandicap(r.Context(), eventID, participantID, userID, input.EventHandicap)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Remove godoc
// @Summary Remove a participant (self or organizer)
// @Tags participants
// @Param eventID path int true "Event ID"
// @Param participantID path int true "Participant ID"
// @Success 204
// @Security BearerAuth
// @Router /events/{eventID}/participants/{participantID} [delete]
func (h *ParticipantHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	eventID, err := idParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	participantID, err := idParam(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.participantService.Remove(r.Context(), eventID, participantID, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
