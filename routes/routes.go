package routes

import (
	"net/http"

	"github.com/courtside-dev/referee-system/handlers"
	"github.com/courtside-dev/referee-system/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes mounts the full /api surface. Registration, login, the
// connectivity probe and the websocket endpoint (which authenticates via
// query parameter) are open; everything else sits behind the bearer-token
// gate, with the admin subset additionally behind the role gate.
func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Auth,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	gameHandler *handlers.GameHandler,
	assignmentHandler *handlers.AssignmentHandler,
	availabilityHandler *handlers.AvailabilityHandler,
	notificationHandler *handlers.NotificationHandler,
	dashboardHandler *handlers.DashboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Get("/test", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success": true, "message": "Backend connection successful!"}` + "\n"))
		})

		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Get("/ws", webSocketHandler.ServeWs)

		// Authenticated routes.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser)

			r.Get("/users/profile", userHandler.GetProfile)
			r.Put("/users/profile", userHandler.UpdateProfile)
			r.Post("/users/profile/photo", userHandler.UploadPhoto)

			r.Get("/games", gameHandler.GetAllGames)
			r.Get("/games/{id}", gameHandler.GetGameByID)

			r.Get("/assignments", assignmentHandler.ListOwn)
			r.Put("/assignments/{id}/accept", assignmentHandler.Accept)
			r.Put("/assignments/{id}/decline", assignmentHandler.Decline)

			r.Get("/availability", availabilityHandler.ListOwn)
			r.Put("/availability", availabilityHandler.Upsert)

			r.Get("/notifications", notificationHandler.ListOwn)
			r.Put("/notifications/read-all", notificationHandler.MarkAllRead)
			r.Put("/notifications/{id}/read", notificationHandler.MarkRead)
			r.Delete("/notifications/{id}", notificationHandler.Delete)

			// Admin-only routes.
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)

				r.Post("/games", gameHandler.CreateGame)
				r.Put("/games/{id}", gameHandler.UpdateGame)
				r.Delete("/games/{id}", gameHandler.DeleteGame)

				r.Post("/assignments", assignmentHandler.Create)
				r.Delete("/assignments/{id}", assignmentHandler.Delete)

				r.Get("/availability/referees", availabilityHandler.RefereeAvailability)

				r.Post("/notifications", notificationHandler.Create)

				r.Get("/admin/dashboard", dashboardHandler.GetStats)
			})
		})
	})
}
