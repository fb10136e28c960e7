package handlers

import (
	"net/http"

	"github.com/house7784/golf-trip-app/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

// EventStandings godoc
// @Summary Get the full standings snapshot for an event
// @Description Returns every round's leaderboard, the overall points race,
// @Description and the highlighted current round (pair-based while the live
// @Description leaderboard is active and a tee sheet has assignments).
// @Tags standings
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} services.EventStandings
// @Security BearerAuth
// @Router /events/{eventID}/standings [get]
func (h *StandingsHandler) EventStandings(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.standingsService.EventStandings(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, standings, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RoundStandings godoc
// @Summary Get the leaderboard of a single round
// @Tags standings
// @Produce json
// @Param roundID path int true "Round ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /rounds/{roundID}/standings [get]
func (h *StandingsHandler) RoundStandings(w http.ResponseWriter, r *http.Request) {
	roundID, err := idParam(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.standingsService.RoundStandings(r.Context(), roundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
