package routes

import (
	"log/slog"
	"net/http"
	"time"

	_ "github.com/Dosada05/torvix-arena/docs"
	"github.com/Dosada05/torvix-arena/handlers"
	"github.com/Dosada05/torvix-arena/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Tournament  *handlers.TournamentHandler
	Participant *handlers.ParticipantHandler
	Team        *handlers.TeamHandler
	Match       *handlers.MatchHandler
	Assist      *handlers.AssistHandler
	WebSocket   *handlers.WebSocketHandler
}

type Options struct {
	AllowedOrigins []string
	Sessions       middleware.SessionResolver
	Logger         *slog.Logger
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.Metrics)
	router.Use(middleware.Authenticate(opts.Sessions, opts.Logger))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Auth.Login)
		r.With(middleware.RequireSession).Post("/logout", h.Auth.Logout)
	})

	router.Route("/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession)
			r.Get("/me", h.User.GetMe)
			r.Patch("/me", h.User.UpdateMe)
			r.Post("/me/avatar", h.User.UploadAvatar)
		})
		r.Get("/{userID}", h.User.GetUserByID)
	})

	router.Route("/tournaments", func(r chi.Router) {
		// Публичные маршруты для просмотра турниров
		r.Get("/", h.Tournament.ListHandler)
		r.Get("/{tournamentID}", h.Tournament.GetByIDHandler)
		r.Get("/{tournamentID}/bracket", h.Match.GetBracket)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession)
			r.Use(chiMiddleware.Timeout(15 * time.Second))

			r.Post("/", h.Tournament.CreateHandler)
			r.Post("/{tournamentID}/join", h.Participant.JoinTournament)
			r.Post("/{tournamentID}/teams", h.Team.CreateTeam)
			r.Post("/{tournamentID}/teams/{teamID}/join", h.Team.JoinTeam)

			// Только организатор
			r.Put("/{tournamentID}/room", h.Tournament.UpdateRoomHandler)
			r.Post("/{tournamentID}/winner", h.Tournament.AnnounceWinnerHandler)
			r.Patch("/{tournamentID}/details", h.Tournament.UpdateDetailsHandler)
			r.Put("/{tournamentID}/matches", h.Match.SetMatches)
			r.Post("/{tournamentID}/bracket/seed", h.Match.SeedBracket)
			r.Post("/{tournamentID}/matches/{matchID}/result", h.Match.ReportResult)
		})
	})

	router.Route("/assist", func(r chi.Router) {
		r.Use(middleware.RequireSession)
		r.Post("/description", h.Assist.Description)
		r.Post("/rules", h.Assist.Rules)
		r.Post("/match-update", h.Assist.MatchUpdate)
	})

	router.Get("/ws/tournaments", h.WebSocket.ServeCollection)
	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeTournament)
}
