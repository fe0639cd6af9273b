package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/jobly/app"
	"github.com/upb/jobly/middleware"
	"github.com/upb/jobly/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()
	gate := deps.AuthMiddleware

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(deps.Config.Server.RequestTimeout))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Identity is resolved once per request; the logger reads it afterwards
	r.Use(gate.Authenticate)
	r.Use(middleware.RequestLogger(deps.Logger))

	// Health check endpoints
	r.Get("/healthz", deps.HealthHandler.HandleHealth)
	r.Get("/readyz", deps.HealthHandler.HandleReadiness)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/token", deps.AuthHandler.HandleToken)
		r.Post("/register", deps.AuthHandler.HandleRegister)
	})

	r.Route("/companies", func(r chi.Router) {
		r.Get("/", deps.CompanyHandler.HandleList)
		r.Get("/{handle}", deps.CompanyHandler.HandleGet)

		r.Group(func(r chi.Router) {
			r.Use(gate.RequireAdmin)
			r.Post("/", deps.CompanyHandler.HandleCreate)
			r.Patch("/{handle}", deps.CompanyHandler.HandleUpdate)
			r.Delete("/{handle}", deps.CompanyHandler.HandleDelete)
		})
	})

	r.Route("/jobs", func(r chi.Router) {
		r.Get("/", deps.JobHandler.HandleList)
		r.Get("/{id}", deps.JobHandler.HandleGet)

		r.Group(func(r chi.Router) {
			r.Use(gate.RequireAdmin)
			r.Post("/", deps.JobHandler.HandleCreate)
			r.Patch("/{id}", deps.JobHandler.HandleUpdate)
			r.Delete("/{id}", deps.JobHandler.HandleDelete)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(gate.RequireAdmin)
			r.Post("/", deps.UserHandler.HandleCreate)
			r.Get("/", deps.UserHandler.HandleList)
		})

		r.Route("/{username}", func(r chi.Router) {
			r.Use(gate.RequireSelfOrAdmin("username"))
			r.Get("/", deps.UserHandler.HandleGet)
			r.Patch("/", deps.UserHandler.HandleUpdate)
			r.Delete("/", deps.UserHandler.HandleDelete)
			r.Post("/jobs/{id}", deps.UserHandler.HandleApply)
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusNotFound, "Not Found", nil)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed", nil)
	})

	return r
}
