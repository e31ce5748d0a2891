package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-trip-keeper/internal/store"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip, h.withBodyHash)

	router.Get("/api/ping", h.ping)
	router.Get("/api/version", h.getServerVersion)
	router.Get(store.LocalPhotoRoute+"*", h.servePhoto)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/signup", h.signUp)
		r.Post("/api/auth/signin", h.signIn)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/auth/user", h.getUser)
		r.Put("/api/auth/user", h.updateUser)

		r.Route("/api/trips", func(r chi.Router) {
			r.Get("/", h.listTrips)
			r.Post("/", h.createTrip)
			r.Patch("/{id}", h.updateTrip)
			r.Delete("/{id}", h.deleteTrip)

			r.Get("/{id}/vehicles", h.listTripVehicles)
			r.Post("/{id}/vehicles", h.linkVehicle)
			r.Get("/{id}/segments", h.listSegments)
			r.Post("/{id}/segments", h.startSegment)
		})

		r.Route("/api/vehicles", func(r chi.Router) {
			r.Get("/", h.listVehicles)
			r.Post("/", h.createVehicle)
			r.Patch("/{id}", h.updateVehicle)
			r.Delete("/{id}", h.deleteVehicle)

			r.Post("/{id}/photo", h.uploadPhoto)
			r.Get("/{id}/photo", h.getPhotoURL)
			r.Delete("/{id}/photo", h.deletePhoto)
		})

		r.Patch("/api/segments/{id}", h.finishSegment)
		r.Delete("/api/segments/{id}", h.deleteSegment)
	})

	h.functionRoutes(router)
	router.MethodNotAllowed(methodNotFound)

	return router
}

// InitFunctions builds the router of the function endpoints alone. It backs
// the serverless deployment, where the REST API is not exposed.
func (h *Handler) InitFunctions() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip, h.withBodyHash)

	router.Get("/api/ping", h.ping)
	h.functionRoutes(router)
	router.MethodNotAllowed(methodNotFound)

	return router
}

// function endpoints answer with an {"ok": ...} envelope, failures included
func (h *Handler) functionRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Post("/accounts-check-email-exists", h.checkEmailExists)
		r.Post("/accounts-send-welcome", h.sendWelcome)
		r.Post("/accounts-send-password-changed", h.sendPasswordChanged)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.functionAuth)

		r.Post("/accounts-delete-account-immediately", h.deleteAccount)
		r.Post("/accounts-export-user-data", h.exportUserData)
		r.Post("/trip-vehicles-delete", h.tripVehiclesDelete)
		r.Post("/trips-update", h.tripsUpdate)
		r.Post("/vehicles-save", h.vehiclesSave)
	})
}
