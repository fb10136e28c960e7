package handlers

import (
	"log/slog"
	"net/http"

	"github.com/house7784/golf-trip-app/middleware"
	"github.com/house7784/golf-trip-app/services"
)

type InviteHandler struct {
	inviteService services.InviteService
	eventService  services.EventService
	emailService  *services.EmailService
}

func NewInviteHandler(inviteService services.InviteService, eventService services.EventService, emailService *services.EmailService) *InviteHandler {
	return &InviteHandler{
		inviteService: inviteService,
		eventService:  eventService,
		emailService:  emailService,
	}
}

// Create godoc
// @Summary Create a join link for an event
// @Description Mints a single-use-style token valid for seven days. When an
// @Description email address is supplied the link is also mailed out.
// @Tags invites
// @Accept json
// @Produce json
// @Param eventID path int true "Event ID"
// @Param input body object{email=string} false "Optional recipient"
// @Success 201 {object} map[string]interface{}
// @Security BearerAuth
// @Router /events/{eventID}/invites [post]
func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	eventID, err := idParam(r, "eventID")
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
		Email string `json:"email"`
	}
	if r.ContentLength > 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}

	invite, err := h.inviteService.CreateInvite(r.Context(), eventID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if input.Email != "" {
		event, err := h.eventService.GetByID(r.Context(), eventID)
		if err == nil {
			if err := h.emailService.SendEventInviteEmail(input.Email, event.Name, invite.Token); err != nil {
				slog.Warn("invite email not sent", "event_id", eventID, "error", err)
			}
		}
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"invite": invite, "token": invite.Token}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Accept godoc
// @Summary Join an event with an invite token
// @Tags invites
// @Accept json
// @Produce json
// @Param input body object{token=string} true "Invite token"
// @Success 200 {object} models.EventParticipant
// @Security BearerAuth
// @Router /invites/accept [post]
func (h *InviteHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input struct {
		Token string `json:"token"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Token == "" {
		input.Token = r.URL.Query().Get("token")
	}
	if input.Token == "" {
		errorResponse(w, r, http.StatusBadRequest, "token is required")
		return
	}

	participant, err := h.inviteService.AcceptInvite(r.Context(), input.Token, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
