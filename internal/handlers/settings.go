package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/welcomedesk/visitors/internal/models"
)

type SettingsService interface {
	Current(ctx context.Context) (models.ChurchSettings, error)
	Update(ctx context.Context, p models.SettingsPatch) (models.ChurchSettings, error)
}

// GET /api/church-settings
// Before the first save this returns the defaults, never 404.
func GetSettings(svc SettingsService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cs, err := svc.Current(r.Context())
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, cs)
	}
}

// POST /api/church-settings
func UpdateSettings(svc SettingsService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p models.SettingsPatch
		if !decodeJSON(w, r, log, &p) {
			return
		}
		cs, err := svc.Update(r.Context(), p)
		if err != nil {
			writeError(w, log, err)
			return
		}
		log.Info("church settings updated")
		writeJSON(w, http.StatusOK, cs)
	}
}
