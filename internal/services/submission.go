// Package services holds the request-level flows that sit between the HTTP
// handlers and the stores.
package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/welcomedesk/visitors/internal/models"
	"github.com/welcomedesk/visitors/internal/notify"
	"github.com/welcomedesk/visitors/internal/validation"
)

type VisitorCreator interface {
	Create(ctx context.Context, v models.Visitor) (models.Visitor, error)
}

type SettingsGetter interface {
	Get(ctx context.Context) (*models.ChurchSettings, error)
}

type Notifier interface {
	Notify(ctx context.Context, v models.Visitor, settings *models.ChurchSettings) notify.Outcome
}

// Submission runs validate -> persist -> notify for one visitor form.
type Submission struct {
	visitors VisitorCreator
	settings SettingsGetter
	notifier Notifier
	log      *zap.Logger
}

func NewSubmission(visitors VisitorCreator, settings SettingsGetter, notifier Notifier, log *zap.Logger) *Submission {
	return &Submission{visitors: visitors, settings: settings, notifier: notifier, log: log}
}

// Submit validates in, stores it and attempts the leader notification.
// Validation and storage errors are returned; notification never fails the
// submission. lang is the caller's active language.
func (s *Submission) Submit(ctx context.Context, in models.VisitorInput, lang string) (models.Visitor, error) {
	v, err := validation.ValidateVisitor(in, lang)
	if err != nil {
		return models.Visitor{}, err
	}

	created, err := s.visitors.Create(ctx, v)
	if err != nil {
		return models.Visitor{}, err
	}

	// Settings are read after the write and outside any transaction with it.
	cs, err := s.settings.Get(ctx)
	if err != nil {
		s.log.Warn("could not load settings for notification",
			zap.String("visitor_id", created.ID), zap.Error(err))
		cs = nil
	}

	out := s.notifier.Notify(ctx, created, cs)
	s.log.Debug("visitor submitted",
		zap.String("visitor_id", created.ID),
		zap.String("age_group", string(created.AgeGroup)),
		zap.Stringer("notification", out))
	return created, nil
}
