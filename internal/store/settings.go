package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/welcomedesk/visitors/internal/apperror"
	"github.com/welcomedesk/visitors/internal/models"
)

// SettingsStore holds the single church settings row.
type SettingsStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db, now: time.Now}
}

// WithClock replaces the clock used for updatedAt.
func (s *SettingsStore) WithClock(now func() time.Time) *SettingsStore {
	s.now = now
	return s
}

// Get returns the settings, or nil when nothing has been saved yet.
func (s *SettingsStore) Get(ctx context.Context) (*models.ChurchSettings, error) {
	if s.db == nil {
		return nil, apperror.ErrNotConfigured
	}
	var cs models.ChurchSettings
	err := s.db.WithContext(ctx).Where("id = ?", models.SettingsID).First(&cs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.Storage("get settings", err)
	}
	return &cs, nil
}

// Upsert merges p over the stored settings, or over the defaults when none
// exist, and advances updatedAt.
func (s *SettingsStore) Upsert(ctx context.Context, p models.SettingsPatch) (models.ChurchSettings, error) {
	if s.db == nil {
		return models.ChurchSettings{}, apperror.ErrNotConfigured
	}
	var out models.ChurchSettings
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ChurchSettings
		err := tx.Where("id = ?", models.SettingsID).First(&existing).Error
		switch {
		case err == nil:
			out = p.ApplyTo(existing)
			out.UpdatedAt = s.now().UTC()
			return tx.Save(&out).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			base := models.DefaultChurchSettings()
			base.ID = models.SettingsID
			out = p.ApplyTo(base)
			out.UpdatedAt = s.now().UTC()
			return tx.Create(&out).Error
		default:
			return err
		}
	})
	if err != nil {
		return models.ChurchSettings{}, apperror.Storage("upsert settings", err)
	}
	return out, nil
}
