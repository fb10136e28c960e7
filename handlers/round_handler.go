package handlers

import (
	"errors"
	"net/http"

	"github.com/house7784/golf-trip-app/middleware"
	"github.com/house7784/golf-trip-app/services"
)

type RoundHandler struct {
	roundService services.RoundService
}

func NewRoundHandler(roundService services.RoundService) *RoundHandler {
	return &RoundHandler{roundService: roundService}
}

// Upsert godoc
// @Summary Schedule a competition day or switch its game mode (organizer only)
// @Tags rounds
// @Accept json
// @Produce json
// @Param eventID path int true "Event ID"
// @Param input body services.UpsertRoundInput true "Round data"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /events/{eventID}/rounds [put]
func (h *RoundHandler) Upsert(w http.ResponseWriter, r *http.Request) {
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

	var input services.UpsertRoundInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round, err := h.roundService.UpsertByDate(r.Context(), eventID, userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// List godoc
// @Summary List an event's rounds
// @Tags rounds
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /events/{eventID}/rounds [get]
func (h *RoundHandler) List(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rounds, err := h.roundService.ListByEvent(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rounds": rounds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Get godoc
// @Summary Get a round with its course data
// @Tags rounds
// @Produce json
// @Param roundID path int true "Round ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /rounds/{roundID} [get]
func (h *RoundHandler) Get(w http.ResponseWriter, r *http.Request) {
	roundID, err := idParam(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round, err := h.roundService.GetByID(r.Context(), roundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetCourse godoc
// @Summary Configure the course for a round (organizer only)
// @Tags rounds
// @Accept json
// @Produce json
// @Param roundID path int true "Round ID"
// @Param input body services.CourseInput true "Course data"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /rounds/{roundID}/course [put]
func (h *RoundHandler) SetCourse(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	roundID, err := idParam(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CourseInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	round, err := h.roundService.SetCourse(r.Context(), roundID, userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SetScoringLocked godoc
// @Summary Lock or unlock score entry for a round (organizer only)
// @Tags rounds
// @Accept json
// @Produce json
// @Param roundID path int true "Round ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /rounds/{roundID}/scoring-lock [put]
func (h *RoundHandler) SetScoringLocked(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	roundID, err := idParam(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Locked *bool `json:"locked"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Locked == nil {
		badRequestResponse(w, r, errors.New("locked is required"))
		return
	}

	round, err := h.roundService.SetScoringLocked(r.Context(), roundID, userID, *input.Locked)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"round": round}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete godoc
// @Summary Delete a round (organizer only)
// @Tags rounds
// @Param roundID path int true "Round ID"
// @Success 204
// @Security BearerAuth
// @Router /rounds/{roundID} [delete]
func (h *RoundHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	roundID, err := idParam(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.roundService.Delete(r.Context(), roundID, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListGameModes godoc
// @Summary List the game mode catalog
// @Tags rounds
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /game-modes [get]
func (h *RoundHandler) ListGameModes(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"game_modes": h.roundService.ListGameModes()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
