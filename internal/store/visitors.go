// Package store persists visitors and church settings through gorm.
// A store built with a nil *gorm.DB is "unconfigured": every operation
// returns apperror.ErrNotConfigured.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/welcomedesk/visitors/internal/apperror"
	"github.com/welcomedesk/visitors/internal/models"
)

// VisitorStore is the append-only visitor collection.
type VisitorStore struct {
	db    *gorm.DB
	now   func() time.Time
	newID func() string
}

func NewVisitorStore(db *gorm.DB) *VisitorStore {
	return &VisitorStore{db: db, now: time.Now, newID: newID}
}

// WithClock replaces the clock used for submission dates.
func (s *VisitorStore) WithClock(now func() time.Time) *VisitorStore {
	s.now = now
	return s
}

// newID returns a time-ordered UUIDv7 so ties on submission date still
// list newest first.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Create assigns id and submission date, then persists v.
func (s *VisitorStore) Create(ctx context.Context, v models.Visitor) (models.Visitor, error) {
	if s.db == nil {
		return models.Visitor{}, apperror.ErrNotConfigured
	}
	v.ID = s.newID()
	v.SubmissionDate = s.now().UTC()
	if err := s.db.WithContext(ctx).Create(&v).Error; err != nil {
		return models.Visitor{}, apperror.Storage("create visitor", err)
	}
	return v, nil
}

// List returns every visitor, most recent first.
func (s *VisitorStore) List(ctx context.Context) ([]models.Visitor, error) {
	if s.db == nil {
		return nil, apperror.ErrNotConfigured
	}
	out := []models.Visitor{}
	if err := s.db.WithContext(ctx).
		Order("submission_date DESC").
		Order("id DESC").
		Find(&out).Error; err != nil {
		return nil, apperror.Storage("list visitors", err)
	}
	return out, nil
}

func (s *VisitorStore) GetByID(ctx context.Context, id string) (models.Visitor, error) {
	if s.db == nil {
		return models.Visitor{}, apperror.ErrNotConfigured
	}
	var v models.Visitor
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Visitor{}, apperror.ErrNotFound
	}
	if err != nil {
		return models.Visitor{}, apperror.Storage("get visitor", err)
	}
	return v, nil
}
