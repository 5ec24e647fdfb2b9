package services

import (
	"context"

	"github.com/welcomedesk/visitors/internal/models"
	"github.com/welcomedesk/visitors/internal/validation"
)

type SettingsRepo interface {
	Get(ctx context.Context) (*models.ChurchSettings, error)
	Upsert(ctx context.Context, p models.SettingsPatch) (models.ChurchSettings, error)
}

type Settings struct {
	repo SettingsRepo
}

func NewSettings(repo SettingsRepo) *Settings {
	return &Settings{repo: repo}
}

// Current returns the stored settings, or the defaults when none exist.
func (s *Settings) Current(ctx context.Context) (models.ChurchSettings, error) {
	cs, err := s.repo.Get(ctx)
	if err != nil {
		return models.ChurchSettings{}, err
	}
	if cs == nil {
		def := models.DefaultChurchSettings()
		def.ID = models.SettingsID
		return def, nil
	}
	return *cs, nil
}

// Update validates p and merges it into the stored settings.
func (s *Settings) Update(ctx context.Context, p models.SettingsPatch) (models.ChurchSettings, error) {
	p, err := validation.ValidateSettings(p)
	if err != nil {
		return models.ChurchSettings{}, err
	}
	return s.repo.Upsert(ctx, p)
}
