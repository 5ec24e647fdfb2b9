package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/welcomedesk/visitors/internal/apperror"
	"github.com/welcomedesk/visitors/internal/models"
	"github.com/welcomedesk/visitors/internal/notify"
)

type fakeVisitors struct {
	created []models.Visitor
	err     error
}

func (f *fakeVisitors) Create(_ context.Context, v models.Visitor) (models.Visitor, error) {
	if f.err != nil {
		return models.Visitor{}, f.err
	}
	v.ID = "v-1"
	v.SubmissionDate = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.created = append(f.created, v)
	return v, nil
}

type fakeSettings struct {
	cs      *models.ChurchSettings
	getErr  error
	patches []models.SettingsPatch
}

func (f *fakeSettings) Get(context.Context) (*models.ChurchSettings, error) {
	return f.cs, f.getErr
}

func (f *fakeSettings) Upsert(_ context.Context, p models.SettingsPatch) (models.ChurchSettings, error) {
	f.patches = append(f.patches, p)
	base := models.DefaultChurchSettings()
	if f.cs != nil {
		base = *f.cs
	}
	return p.ApplyTo(base), nil
}

type call struct {
	v  models.Visitor
	cs *models.ChurchSettings
}

type fakeNotifier struct {
	calls []call
	out   notify.Outcome
}

func (f *fakeNotifier) Notify(_ context.Context, v models.Visitor, cs *models.ChurchSettings) notify.Outcome {
	f.calls = append(f.calls, call{v, cs})
	return f.out
}

func janeInput() models.VisitorInput {
	return models.VisitorInput{
		FullName: "Jane Doe",
		AgeGroup: models.AgeYouth,
		Email:    "jane@example.com",
		Language: "en",
	}
}

func withYouth() *models.ChurchSettings {
	cs := models.DefaultChurchSettings()
	cs.NotificationEmails.Youth = "youth@church.org"
	return &cs
}

func TestSubmit_PersistsThenNotifies(t *testing.T) {
	vs := &fakeVisitors{}
	ss := &fakeSettings{cs: withYouth()}
	n := &fakeNotifier{out: notify.Sent}

	got, err := NewSubmission(vs, ss, n, zap.NewNop()).Submit(context.Background(), janeInput(), "en")
	require.NoError(t, err)

	assert.Equal(t, "v-1", got.ID)
	assert.False(t, got.SubmissionDate.IsZero())
	require.Len(t, vs.created, 1)
	require.Len(t, n.calls, 1)
	assert.Equal(t, got, n.calls[0].v)
	assert.Equal(t, "youth@church.org", n.calls[0].cs.NotificationEmails.Youth)
}

func TestSubmit_ValidationFailureStopsEarly(t *testing.T) {
	vs := &fakeVisitors{}
	n := &fakeNotifier{}
	in := janeInput()
	in.AgeGroup = ""

	_, err := NewSubmission(vs, &fakeSettings{}, n, zap.NewNop()).Submit(context.Background(), in, "en")

	var ve *apperror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("ageGroup"))
	assert.Empty(t, vs.created)
	assert.Empty(t, n.calls)
}

func TestSubmit_StorageFailureIsReturned(t *testing.T) {
	vs := &fakeVisitors{err: apperror.Storage("create visitor", errors.New("disk I/O error"))}
	n := &fakeNotifier{}

	_, err := NewSubmission(vs, &fakeSettings{}, n, zap.NewNop()).Submit(context.Background(), janeInput(), "en")

	var se *apperror.StorageError
	require.ErrorAs(t, err, &se)
	assert.Empty(t, n.calls)
}

func TestSubmit_UnconfiguredStore(t *testing.T) {
	vs := &fakeVisitors{err: apperror.ErrNotConfigured}
	_, err := NewSubmission(vs, &fakeSettings{}, &fakeNotifier{}, zap.NewNop()).Submit(context.Background(), janeInput(), "en")
	assert.ErrorIs(t, err, apperror.ErrNotConfigured)
}

func TestSubmit_NotificationFailureStillSucceeds(t *testing.T) {
	vs := &fakeVisitors{}
	n := &fakeNotifier{out: notify.Failed}

	got, err := NewSubmission(vs, &fakeSettings{cs: withYouth()}, n, zap.NewNop()).Submit(context.Background(), janeInput(), "en")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.FullName)
	assert.Len(t, n.calls, 1)
}

func TestSubmit_SettingsReadFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	vs := &fakeVisitors{}
	n := &fakeNotifier{out: notify.Skipped}
	ss := &fakeSettings{getErr: apperror.Storage("get settings", errors.New("locked"))}

	got, err := NewSubmission(vs, ss, n, zap.New(core)).Submit(context.Background(), janeInput(), "en")
	require.NoError(t, err)
	assert.Equal(t, "v-1", got.ID)
	require.Len(t, n.calls, 1)
	assert.Nil(t, n.calls[0].cs)
	assert.Equal(t, 1, logs.FilterMessage("could not load settings for notification").Len())
}

func TestSubmit_LanguageDefaultsToCaller(t *testing.T) {
	vs := &fakeVisitors{}
	in := janeInput()
	in.Language = ""

	got, err := NewSubmission(vs, &fakeSettings{}, &fakeNotifier{}, zap.NewNop()).Submit(context.Background(), in, "es")
	require.NoError(t, err)
	assert.Equal(t, "es", got.Language)
}

func TestSettings_CurrentDefaults(t *testing.T) {
	cs, err := NewSettings(&fakeSettings{}).Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SettingsID, cs.ID)
	assert.Equal(t, models.DefaultChurchName, cs.Name)
	assert.Equal(t, models.DefaultPrimaryColor, cs.PrimaryColor)
}

func TestSettings_CurrentPropagatesError(t *testing.T) {
	_, err := NewSettings(&fakeSettings{getErr: apperror.ErrNotConfigured}).Current(context.Background())
	assert.ErrorIs(t, err, apperror.ErrNotConfigured)
}

func TestSettings_UpdateRejectsBadColor(t *testing.T) {
	repo := &fakeSettings{}
	blue := "blue"

	_, err := NewSettings(repo).Update(context.Background(), models.SettingsPatch{PrimaryColor: &blue})

	var ve *apperror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("primaryColor"))
	assert.Empty(t, repo.patches)
}

func TestSettings_UpdateNormalizesEmails(t *testing.T) {
	repo := &fakeSettings{}
	addr := "  Youth@Church.org "

	cs, err := NewSettings(repo).Update(context.Background(), models.SettingsPatch{
		NotificationEmails: &models.NotificationEmailsPatch{Youth: &addr},
	})
	require.NoError(t, err)
	assert.Equal(t, "youth@church.org", cs.NotificationEmails.Youth)
	require.Len(t, repo.patches, 1)
}
