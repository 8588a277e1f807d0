package routes

import (
	"github.com/Dosada05/prediction-league/handlers"
	"github.com/Dosada05/prediction-league/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	actionHandler *handlers.ActionHandler,
	matchHandler *handlers.MatchHandler,
	predictionHandler *handlers.PredictionHandler,
	scoreboardHandler *handlers.ScoreboardHandler,
	authHandler *handlers.AuthHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		// The original deployment answered any origin; the game is a
		// private toy, not a hardened product.
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// Envelope endpoint, compatible with the original web client.
	router.Post("/api", actionHandler.DispatchHandler)

	router.Post("/auth/login", authHandler.OperatorLoginHandler)

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", matchHandler.ListMatchesHandler)
		r.Get("/upcoming", matchHandler.ListUpcomingMatchesHandler)
		r.Get("/{matchID}/predictions", predictionHandler.ListMatchPredictionsHandler)

		// Result entry is for the operator only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireOperator([]byte(jwtSecret)))
			r.Put("/{matchID}/result", matchHandler.RecordResultHandler)
		})
	})

	router.Post("/predictions", predictionHandler.SubmitPredictionHandler)
	router.Get("/predictions", predictionHandler.PredictionOverviewHandler)
	router.Get("/users/{userID}/predictions", predictionHandler.ListUserPredictionsHandler)
	router.Get("/scoreboard", scoreboardHandler.ScoreboardHandler)

	router.Get("/ws", webSocketHandler.ServeWs)
}
