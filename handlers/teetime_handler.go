package handlers

import (
	"net/http"

	"github.com/house7784/golf-trip-app/middleware"
	"github.com/house7784/golf-trip-app/services"
)

type TeeTimeHandler struct {
	pairingService services.PairingService
}

func NewTeeTimeHandler(pairingService services.PairingService) *TeeTimeHandler {
	return &TeeTimeHandler{pairingService: pairingService}
}

// Create godoc
// @Summary Add a tee time to a round
// @Tags tee-times
// @Accept json
// @Produce json
// @Param roundID path int true "Round ID"
// @Param input body object{time=string} true "Tee time, e.g. 08:30"
// @Success 201 {object} models.TeeTime
// @Security BearerAuth
// @Router /rounds/{roundID}/tee-times [post]
func (h *TeeTimeHandler) Create(w http.ResponseWriter, r *http.Request) {
	roundID, err := idParam(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input struct {
		Time string `json:"time"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teeTime, err := h.pairingService.CreateTeeTime(r.Context(), roundID, userID, input.Time)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tee_time": teeTime}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// List godoc
// @Summary List the tee sheet of a round
// @Tags tee-times
// @Produce json
// @Param roundID path int true "Round ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /rounds/{roundID}/tee-times [get]
func (h *TeeTimeHandler) List(w http.ResponseWriter, r *http.Request) {
	roundID, err := idParam(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teeTimes, err := h.pairingService.ListTeeTimes(r.Context(), roundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tee_times": teeTimes}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete godoc
// @Summary Remove a tee time and its slot assignments
// @Tags tee-times
// @Param teeTimeID path int true "Tee time ID"
// @Success 204
// @Security BearerAuth
// @Router /tee-times/{teeTimeID} [delete]
func (h *TeeTimeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	teeTimeID, err := idParam(r, "teeTimeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	if err := h.pairingService.DeleteTeeTime(r.Context(), teeTimeID, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignSlot godoc
// @Summary Assign or clear a player in a tee-time slot
// @Description A null player_id clears the slot. Assignments that would
// @Description break the pairing fairness rules are refused with 409.
// @Tags tee-times
// @Accept json
// @Produce json
// @Param teeTimeID path int true "Tee time ID"
// @Param slotNumber path int true "Slot number (1-4)"
// @Param input body object{player_id=int} true "Player to seat, null to clear"
// @Success 200 {object} models.TeeTime
// @Security BearerAuth
// @Router /tee-times/{teeTimeID}/slots/{slotNumber} [put]
func (h *TeeTimeHandler) AssignSlot(w http.ResponseWriter, r *http.Request) {
	teeTimeID, err := idParam(r, "teeTimeID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	slotNumber, err := idParam(r, "slotNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input struct {
		PlayerID *int `json:"player_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teeTime, err := h.pairingService.AssignSlot(r.Context(), teeTimeID, slotNumber, input.PlayerID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"tee_time": teeTime}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
