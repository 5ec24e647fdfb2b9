package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/welcomedesk/visitors/internal/i18n"
	"github.com/welcomedesk/visitors/internal/models"
)

type VisitorLister interface {
	List(ctx context.Context) ([]models.Visitor, error)
}

type VisitorGetter interface {
	GetByID(ctx context.Context, id string) (models.Visitor, error)
}

type Submitter interface {
	Submit(ctx context.Context, in models.VisitorInput, lang string) (models.Visitor, error)
}

// GET /api/visitors
func ListVisitors(vs VisitorLister, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := vs.List(r.Context())
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// POST /api/visitors
func CreateVisitor(sub Submitter, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.VisitorInput
		if !decodeJSON(w, r, log, &in) {
			return
		}
		v, err := sub.Submit(r.Context(), in, i18n.Negotiate(r))
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, v)
	}
}

// GET /api/visitors/{id}
func GetVisitor(vs VisitorGetter, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := vs.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}
