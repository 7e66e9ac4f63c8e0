package rest

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/workforce-management/internal/assignment"
	"github.com/frahmantamala/workforce-management/internal/auth"
	"github.com/frahmantamala/workforce-management/internal/event"
	"github.com/frahmantamala/workforce-management/internal/project"
	"github.com/frahmantamala/workforce-management/internal/transport/middleware"
	"github.com/frahmantamala/workforce-management/internal/user"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, projectHandler *project.Handler, assignmentHandler *assignment.Handler, eventHandler *event.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Mount API under /api/v1
	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Public user routes: registration and login
		r.Route("/users/auth", func(sr chi.Router) {
			sr.Post("/sign-up", userHandler.SignUp)
			sr.Post("/login", authHandler.Login)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/me", userHandler.GetCurrentUser)
				ur.Get("/", userHandler.GetUsers)
				ur.Get("/{id}", userHandler.GetUser)
				ur.Get("/{id}/meal-vouchers/{month}", userHandler.GetMealVouchers)
			})

			pr.Route("/projects", func(pjr chi.Router) {
				pjr.Post("/", projectHandler.CreateProject)
				pjr.Get("/", projectHandler.GetProjects)
				pjr.Get("/{id}", projectHandler.GetProject)
			})

			pr.Route("/project-users", func(ar chi.Router) {
				ar.Post("/", assignmentHandler.AssignUser)
				ar.Get("/", assignmentHandler.GetAssignments)
				ar.Get("/{id}", assignmentHandler.GetAssignment)
			})

			pr.Route("/events", func(er chi.Router) {
				er.Post("/", eventHandler.CreateEvent)
				er.Get("/", eventHandler.GetEvents)
				er.Get("/{id}", eventHandler.GetEvent)
				er.Post("/{id}/validate", eventHandler.ValidateEvent)
				er.Post("/{id}/decline", eventHandler.DeclineEvent)
			})
		})
	})
}
