package handlers

import (
	"net/http"

	"github.com/house7784/golf-trip-app/middleware"
	"github.com/house7784/golf-trip-app/services"
)

type ScoreHandler struct {
	scoreService services.ScoreService
}

func NewScoreHandler(scoreService services.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

// Upsert godoc
// @Summary Save a scorecard for a round
// @Description Replaces the target player's hole scores. Players edit their
// @Description own card; organizers may enter scores for anyone. Rejected
// @Description with 409 while the round is scoring-locked.
// @Tags scores
// @Accept json
// @Produce json
// @Param roundID path int true "Round ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /rounds/{roundID}/scores [put]
func (h *ScoreHandler) Upsert(w http.ResponseWriter, r *http.Request) {
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
		UserID     *int        `json:"user_id"` // omitted: the caller's own card
		HoleScores map[int]int `json:"hole_scores"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	targetID := userID
	if input.UserID != nil {
		targetID = *input.UserID
	}

	card, err := h.scoreService.UpsertScores(r.Context(), roundID, userID, targetID, input.HoleScores)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"scorecard": card}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// List godoc
// @Summary List all scorecards of a round
// @Tags scores
// @Produce json
// @Param roundID path int true "Round ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /rounds/{roundID}/scores [get]
func (h *ScoreHandler) List(w http.ResponseWriter, r *http.Request) {
	roundID, err := idParam(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	cards, err := h.scoreService.ListByRound(r.Context(), roundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"scorecards": cards}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Get godoc
// @Summary Get one player's scorecard for a round
// @Tags scores
// @Produce json
// @Param roundID path int true "Round ID"
// @Param userID path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /rounds/{roundID}/scores/{userID} [get]
func (h *ScoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	roundID, err := idParam(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, err := idParam(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	card, err := h.scoreService.GetScoreCard(r.Context(), roundID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"scorecard": card}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
