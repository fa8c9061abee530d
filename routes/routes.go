package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ligafc/league-admin/handlers"
	"github.com/ligafc/league-admin/middleware"
	"github.com/ligafc/league-admin/models"
)

// SetupRoutes mounts all API routes on the given router.
//
// Reads are public so the league site can render standings and match sheets
// without a session. Writes require authentication: administrators manage the
// league structure and the money, vocales (plus admins) run the live match
// sheet from the pitch.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
	matchHandler *handlers.MatchHandler,
	settlementHandler *handlers.SettlementHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)
	adminOnly := middleware.Authorize(models.RoleAdmin)
	vocalOrAdmin := middleware.Authorize(models.RoleVocal, models.RoleAdmin)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListTournaments)
		r.Get("/{tournamentID}", tournamentHandler.GetTournamentByID)
		r.Get("/{tournamentID}/categories", tournamentHandler.ListCategories)
		r.Get("/{tournamentID}/tariffs", tournamentHandler.ListTariffs)
		r.Get("/{tournamentID}/teams", teamHandler.ListTeamsByTournament)
		r.Get("/{tournamentID}/matches", matchHandler.ListMatches)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Post("/", tournamentHandler.CreateTournament)
			r.Patch("/{tournamentID}/status", tournamentHandler.UpdateStatus)
			r.Delete("/{tournamentID}", tournamentHandler.DeleteTournament)
			r.Post("/{tournamentID}/categories", tournamentHandler.AddCategory)
			r.Put("/{tournamentID}/tariffs", tournamentHandler.SetTariff)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/{teamID}", teamHandler.GetTeamByID)
		r.Get("/{teamID}/players", playerHandler.ListPlayersByTeam)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Post("/", teamHandler.CreateTeam)
			r.Patch("/{teamID}", teamHandler.RenameTeam)
			r.Post("/{teamID}/crest", teamHandler.UploadCrest)
			r.Delete("/{teamID}", teamHandler.DeleteTeam)
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/{playerID}", playerHandler.GetPlayerByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Post("/", playerHandler.CreatePlayer)
			r.Patch("/{playerID}", playerHandler.UpdatePlayer)
			r.Post("/{playerID}/photo", playerHandler.UploadPhoto)
			r.Delete("/{playerID}", playerHandler.DeletePlayer)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.GetMatchSheet)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Post("/", matchHandler.CreateMatch)
			r.Post("/{matchID}/cancel", matchHandler.CancelMatch)
		})

		// Match-sheet operations available to the vocal on duty.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(vocalOrAdmin)

			r.Post("/{matchID}/start", matchHandler.StartMatch)
			r.Post("/{matchID}/close", matchHandler.CloseMatch)

			r.Post("/{matchID}/callups", matchHandler.CallUpPlayer)
			r.Get("/{matchID}/callups", matchHandler.ListCallUps)
			r.Put("/{matchID}/captain", matchHandler.SetCaptain)

			r.Post("/{matchID}/goals", matchHandler.RecordGoal)
			r.Post("/{matchID}/cards", matchHandler.RecordCard)
			r.Post("/{matchID}/substitutions", matchHandler.RecordSubstitution)
			r.Post("/{matchID}/signatures", matchHandler.SignMatch)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(vocalOrAdmin)

		r.Delete("/callups/{callupID}", matchHandler.RemoveCallUp)
		r.Delete("/cards/{cardID}", matchHandler.UndoCard)
	})

	router.Route("/settlement", func(r chi.Router) {
		r.Use(authenticate)

		r.Group(func(r chi.Router) {
			r.Use(vocalOrAdmin)

			r.Get("/balances", settlementHandler.GetBalances)
			r.Get("/breakdown", settlementHandler.GetBreakdown)
			r.Get("/charges", settlementHandler.ListManualCharges)
		})

		// Money mutations stay admin-only.
		r.Group(func(r chi.Router) {
			r.Use(adminOnly)

			r.Post("/payments", settlementHandler.RegisterPayment)
			r.Post("/charges", settlementHandler.AddManualCharge)
		})
	})

	router.Get("/ws/matches/{matchID}", webSocketHandler.ServeWs)
}
