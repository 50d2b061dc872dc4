// Package router wires the JSON API routes and middleware chain onto a
// chi router.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"seowriter/internal/handlers"
	"seowriter/internal/middleware"
)

// New creates the router. limiter guards the endpoints that call the
// language model; it may be nil.
func New(api *handlers.API, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	limited := func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", api.GetStats)

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", api.ListArticles)
			r.Post("/duplicate", api.DuplicateArticle)
			r.Group(func(r chi.Router) {
				limited(r)
				r.Post("/generate", api.GenerateArticle)
				r.Post("/suggest-sources", api.SuggestSources)
				r.Post("/{id}/regenerate", api.RegenerateArticle)
			})
			r.Get("/{id}", api.GetArticle)
			r.Get("/{id}/logs", api.ListArticleLogs)
			r.Put("/{id}", api.UpdateArticle)
			r.Delete("/{id}", api.DeleteArticle)
			r.Post("/{id}/wordpress", api.PublishArticle)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", api.ListCategories)
			r.Post("/", api.CreateCategory)
			r.Get("/{id}", api.GetCategory)
			r.Put("/{id}", api.UpdateCategory)
			r.Delete("/{id}", api.DeleteCategory)
		})

		r.Route("/topics", func(r chi.Router) {
			r.Get("/", api.ListTopics)
			r.Post("/", api.CreateTopic)
			r.Get("/{id}", api.GetTopic)
			r.Put("/{id}", api.UpdateTopic)
			r.Delete("/{id}", api.DeleteTopic)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", api.GetSettings)
			r.Put("/", api.UpdateSettings)
			r.Get("/wp-status", api.WordPressStatus)
			r.Get("/ai-provider", api.GetAIProvider)
			r.Put("/ai-provider", api.SetAIProvider)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
