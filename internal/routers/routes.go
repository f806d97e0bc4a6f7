package routers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/BoualamHamza/InterviewSim/internal/gateway"
	"github.com/BoualamHamza/InterviewSim/internal/handlers"
	"github.com/BoualamHamza/InterviewSim/internal/metrics"
	"github.com/BoualamHamza/InterviewSim/internal/middleware"
	"github.com/BoualamHamza/InterviewSim/internal/models"
)

// Register wires all routes. The websocket endpoint stays outside the API
// group because a request timeout middleware would kill long-lived channels.
func Register(router *chi.Mux, interviewHandler *handlers.InterviewHandler, jobDescriptionHandler *handlers.JobDescriptionHandler, healthHandler *handlers.HealthHandler, gw *gateway.Gateway) {
	router.Get("/healthz", healthHandler.HealthzHandler)
	router.Get("/readyz", healthHandler.ReadyzHandler)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	router.Route("/api/v1", func(api chi.Router) {
		api.Use(chimiddleware.Timeout(60 * time.Second))
		api.With(middleware.ValidateRequest[*models.SetupRequest]()).
			Post("/interviews", interviewHandler.CreateHandler)
		api.With(middleware.ValidateRequest[*models.JobDescriptionRequest]()).
			Post("/job-description", jobDescriptionHandler.CleanHandler)
	})

	router.Get("/ws/interview/{id}", gw.InterviewWS)
}
