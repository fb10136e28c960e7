package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/house7784/golf-trip-app/handlers"
	"github.com/house7784/golf-trip-app/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	eventHandler *handlers.EventHandler,
	teamHandler *handlers.TeamHandler,
	participantHandler *handlers.ParticipantHandler,
	roundHandler *handlers.RoundHandler,
	scoreHandler *handlers.ScoreHandler,
	standingsHandler *handlers.StandingsHandler,
	teeTimeHandler *handlers.TeeTimeHandler,
	inviteHandler *handlers.InviteHandler,
	announcementHandler *handlers.AnnouncementHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler())

	// Public routes.
	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)
	router.Get("/game-modes", roundHandler.ListGameModes)

	// The websocket endpoint authenticates via the ?token= fallback inside
	// the same middleware as the REST routes.
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticator(jwtSecret))
		r.Get("/ws/events/{eventID}", webSocketHandler.ServeWs)
	})

	// Authenticated API.
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticator(jwtSecret))

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", userHandler.GetProfile)
			r.Patch("/me", userHandler.UpdateProfile)
			r.Put("/me/handicap", userHandler.UpdateHandicap)
			r.Post("/me/avatar", userHandler.UploadAvatar)
			r.Get("/{userID}", userHandler.GetByID)
		})

		r.Route("/events", func(r chi.Router) {
			r.Post("/", eventHandler.Create)
			r.Get("/", eventHandler.List)

			r.Route("/{eventID}", func(r chi.Router) {
				r.Get("/", eventHandler.Get)
				r.Patch("/", eventHandler.Update)
				r.Delete("/", eventHandler.Delete)
				r.Put("/leaderboard", eventHandler.SetLeaderboardActive)
				r.Put("/handicap-settings", eventHandler.UpdateHandicapSettings)
				r.Post("/logo", eventHandler.UploadLogo)

				r.Post("/teams", teamHandler.Create)
				r.Get("/teams", teamHandler.List)

				r.Post("/participants", participantHandler.Join)
				r.Get("/participants", participantHandler.ListRoster)
				r.Put("/participants/{participantID}/team", participantHandler.SetTeam)
				r.Put("/participants/{participantID}/handicap", participantHandler.OverrideHandicap)
				r.Delete("/participants/{participantID}", participantHandler.Remove)

				r.Put("/rounds", roundHandler.Upsert)
				r.Get("/rounds", roundHandler.List)

				r.Get("/standings", standingsHandler.EventStandings)

				r.Post("/invites", inviteHandler.Create)

				r.Post("/announcements", announcementHandler.Post)
				r.Get("/announcements", announcementHandler.List)
			})
		})

		r.Route("/teams/{teamID}", func(r chi.Router) {
			r.Patch("/", teamHandler.Rename)
			r.Delete("/", teamHandler.Delete)
			r.Put("/captain", teamHandler.SetCaptain)
			r.Post("/logo", teamHandler.UploadLogo)
		})

		r.Route("/rounds/{roundID}", func(r chi.Router) {
			r.Get("/", roundHandler.Get)
			r.Delete("/", roundHandler.Delete)
			r.Put("/course", roundHandler.SetCourse)
			r.Put("/scoring-lock", roundHandler.SetScoringLocked)

			r.Put("/scores", scoreHandler.Upsert)
			r.Get("/scores", scoreHandler.List)
			r.Get("/scores/{userID}", scoreHandler.Get)

			r.Get("/standings", standingsHandler.RoundStandings)

			r.Post("/tee-times", teeTimeHandler.Create)
			r.Get("/tee-times", teeTimeHandler.List)
		})

		r.Route("/tee-times/{teeTimeID}", func(r chi.Router) {
			r.Delete("/", teeTimeHandler.Delete)
			r.Put("/slots/{slotNumber}", teeTimeHandler.AssignSlot)
		})

		r.Delete("/announcements/{announcementID}", announcementHandler.Delete)

		r.Post("/invites/accept", inviteHandler.Accept)
	})
}
