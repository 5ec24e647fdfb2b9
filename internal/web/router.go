// Package web assembles the HTTP routes.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/welcomedesk/visitors/internal/handlers"
	"github.com/welcomedesk/visitors/internal/uploads"
)

type VisitorStore interface {
	handlers.VisitorLister
	handlers.VisitorGetter
}

type Deps struct {
	Visitors        VisitorStore
	Submissions     handlers.Submitter
	Settings        handlers.SettingsService
	Uploads         *uploads.Store
	MaxUploadBytes  int64
	PublicURL       string
	Location        *time.Location
	StoreConfigured bool
	Log             *zap.Logger
}

func Router(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handlers.Health(d.StoreConfigured))
	r.Get("/qr.png", handlers.FormQR(d.PublicURL))
	r.Get("/uploads/{filename}", handlers.ServeUpload(d.Uploads))

	r.Route("/api", func(api chi.Router) {
		api.Get("/visitors", handlers.ListVisitors(d.Visitors, log))
		api.Post("/visitors", handlers.CreateVisitor(d.Submissions, log))
		api.Get("/visitors/export.csv", handlers.ExportCSV(d.Visitors, d.Location, log))
		api.Get("/visitors/export.xlsx", handlers.ExportXLSX(d.Visitors, d.Location, log))
		api.Get("/visitors/{id}", handlers.GetVisitor(d.Visitors, log))

		api.Get("/church-settings", handlers.GetSettings(d.Settings, log))
		api.Post("/church-settings", handlers.UpdateSettings(d.Settings, log))

		api.Post("/upload-logo", handlers.UploadLogo(d.Uploads, d.MaxUploadBytes, log))
	})

	return r
}
