package main

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) routes() http.Handler {
	router := chi.NewRouter()

	// Router
	router.NotFound(app.notFoundResponse)
	router.MethodNotAllowed(app.methodNotAllowedRequest)

	// Middleware
	router.Use(app.metrics)
	router.Use(app.recoverPanic)
	router.Use(app.enableCORS)
	router.Use(app.rateLimit)
	router.Use(app.authenticate)

	// Healthcheck
	router.Get("/v1/healthcheck", app.HealthCheck)
	router.Method(http.MethodGet, "/v1/metrics", expvar.Handler())

	// User Endpoints
	router.Post("/v1/user", app.RegisterUser)
	router.Put("/v1/user/activate", app.ActivateUser)
	router.Post("/v1/user/login", app.LoginUser)

	// Venue Endpoints
	router.Route("/v1/venue", func(router chi.Router) {
		router.Get("/", app.GetAllVenues)
		router.Get("/associations", app.GetVenueAssociations)
		router.Get("/{id}", app.GetVenue)

		router.Group(func(router chi.Router) {
			router.Use(app.requireActivatedUser)
			router.Post("/", app.InsertVenue)
			router.Patch("/{id}", app.UpdateVenue)
			router.Delete("/{id}", app.DeleteVenue)
		})
	})

	// Event Endpoints
	router.Route("/v1/event", func(router chi.Router) {
		router.Get("/", app.GetAllEvents)
		router.Get("/associations", app.GetEventAssociations)
		router.Get("/{id}", app.GetEvent)

		router.Group(func(router chi.Router) {
			router.Use(app.requireActivatedUser)
			router.Post("/", app.InsertEvent)
			router.Patch("/{id}", app.UpdateEvent)
			router.Delete("/{id}", app.DeleteEvent)
		})
	})

	// Change Feed
	router.With(app.requireActivatedUser).Get("/v1/feed", app.ResourceFeed)

	return router
}
