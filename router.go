package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpSwagger "github.com/swaggo/http-swagger"
)

// routes wires middlewares and endpoints. Adjust CORS for your frontend hosts.
func (a *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(a.requestLogger)

	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=60")
		w.Write(openapiYAML)
	})

	r.Mount("/swagger", httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.yaml"),
	))

	r.Route("/api", func(api chi.Router) {
		api.Route("/session", func(sr chi.Router) {
			sr.Get("/", a.handleSessionState)
			sr.Put("/draft", a.handleUpdateDraft)
			sr.Post("/photo", a.handleIngestPhoto)
			sr.Post("/position", a.handleReportPosition)
			sr.Post("/submit", a.handleSubmitBatch)
			sr.Post("/refresh", a.handleRefreshHistory)
		})
		api.Route("/voice", func(vr chi.Router) {
			vr.Post("/start", a.handleVoiceStart)
			vr.Post("/stop", a.handleVoiceStop)
			vr.Post("/transcript", a.handleVoiceTranscript)
		})
	})

	return r
}
