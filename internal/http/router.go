package httpx

import (
	"net/http"

	"marianails/internal/config"
	"marianails/internal/http/handlers"
	middlewarex "marianails/internal/http/middleware"
	"marianails/internal/services/gallery"
	"marianails/internal/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config         config.Cfg
	GalleryService *gallery.Service
}

// NewRouter creates the HTTP router
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(middlewarex.RequestLogger)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middlewarex.CORS)
	r.Use(middlewarex.Metrics)

	// Diagnostics
	r.Get("/test", handlers.Liveness)
	r.Get("/ping", handlers.Ping(deps.GalleryService))
	r.Handle("/metrics", promhttp.Handler())

	// Gallery API
	r.Get("/api/galeria", handlers.ListGallery(deps.GalleryService))

	// Static images
	images := handlers.Images(deps.Config.ImagesDir())
	r.Get("/img/*", images.ServeHTTP)
	r.Head("/img/*", images.ServeHTTP)

	// Browser client
	r.Handle("/*", web.Handler())

	return r
}
