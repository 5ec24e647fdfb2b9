package notify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/welcomedesk/visitors/internal/config"
	"github.com/welcomedesk/visitors/internal/models"
)

type recordingSender struct {
	sent     []Message
	err      error
	deadline bool
}

func (r *recordingSender) Send(ctx context.Context, m Message) error {
	_, r.deadline = ctx.Deadline()
	r.sent = append(r.sent, m)
	return r.err
}

type panickySender struct{}

func (panickySender) Send(context.Context, Message) error { panic("boom") }

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return zap.New(core), logs
}

func jane() models.Visitor {
	return models.Visitor{
		ID:             "v-1",
		FullName:       "Jane Doe",
		Email:          "jane@example.com",
		AgeGroup:       models.AgeYouth,
		Language:       "en",
		SubmissionDate: time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC),
	}
}

func settingsWith(n models.NotificationEmails) *models.ChurchSettings {
	cs := models.DefaultChurchSettings()
	cs.NotificationEmails = n
	return &cs
}

func TestNotify_SendsToAgeGroupLeader(t *testing.T) {
	log, _ := observedLogger()
	s := &recordingSender{}
	d := NewDispatcher(s, Options{From: "desk@church.org", Timeout: time.Second}, log)

	out := d.Notify(context.Background(), jane(), settingsWith(models.NotificationEmails{
		Youth: "youth@church.org", Adult: "adults@church.org",
	}))

	assert.Equal(t, Sent, out)
	require.Len(t, s.sent, 1)
	m := s.sent[0]
	assert.Equal(t, "youth@church.org", m.To)
	assert.Equal(t, "desk@church.org", m.From)
	assert.Equal(t, "New Visitor: Jane Doe", m.Subject)
	assert.Contains(t, m.Text, "Jane Doe")
	assert.True(t, s.deadline, "send runs under the notify timeout")
}

func TestNotify_YoungAdultUsesCamelCaseKey(t *testing.T) {
	log, _ := observedLogger()
	s := &recordingSender{}
	v := jane()
	v.AgeGroup = models.AgeYoungAdult

	out := NewDispatcher(s, Options{}, log).Notify(context.Background(), v,
		settingsWith(models.NotificationEmails{YoungAdult: "ya@church.org"}))

	assert.Equal(t, Sent, out)
	require.Len(t, s.sent, 1)
	assert.Equal(t, "ya@church.org", s.sent[0].To)
}

func TestNotify_SkipsWithoutAddress(t *testing.T) {
	log, logs := observedLogger()
	s := &recordingSender{}
	d := NewDispatcher(s, Options{}, log)

	assert.Equal(t, Skipped, d.Notify(context.Background(), jane(),
		settingsWith(models.NotificationEmails{Children: "kids@church.org"})))
	assert.Equal(t, Skipped, d.Notify(context.Background(), jane(), nil))
	assert.Empty(t, s.sent)
	assert.Equal(t, 2, logs.FilterMessage("no notification email configured for age group").Len())
}

func TestNotify_UnconfiguredTransportIsNoop(t *testing.T) {
	log, logs := observedLogger()
	d := NewDispatcher(nil, Options{}, log)

	out := d.Notify(context.Background(), jane(), settingsWith(models.NotificationEmails{Youth: "youth@church.org"}))
	assert.Equal(t, Unconfigured, out)
	assert.Equal(t, 1, logs.FilterMessage("email not configured, skipping notification").Len())
}

func TestNotify_FailureIsLoggedAndSwallowed(t *testing.T) {
	log, logs := observedLogger()
	s := &recordingSender{err: errors.New("550 mailbox unavailable")}

	out := NewDispatcher(s, Options{}, log).Notify(context.Background(), jane(),
		settingsWith(models.NotificationEmails{Youth: "youth@church.org"}))

	assert.Equal(t, Failed, out)
	entries := logs.FilterMessage("failed to send visitor notification").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "youth@church.org", entries[0].ContextMap()["to"])
}

func TestNotify_SenderPanicIsContained(t *testing.T) {
	log, logs := observedLogger()
	out := NewDispatcher(panickySender{}, Options{}, log).Notify(context.Background(), jane(),
		settingsWith(models.NotificationEmails{Youth: "youth@church.org"}))

	assert.Equal(t, Failed, out)
	assert.Equal(t, 1, logs.FilterMessage("notification sender panicked").Len())
}

func TestCompose(t *testing.T) {
	v := jane()
	v.IsFirstTime = true
	v.Language = "es"
	v.Notes = "Needs <b>parking</b>"
	loc := time.FixedZone("CST", -6*3600)

	m := Compose(v, loc)

	assert.Equal(t, "New Visitor: Jane Doe", m.Subject)
	for _, want := range []string{
		"Name: Jane Doe",
		"Phone: Not provided",
		"Email: jane@example.com",
		"Age Group: youth",
		"City: Not provided",
		"How they heard about us: Not provided",
		"First time visitor: Yes",
		"Language preference: Spanish",
		"Notes: Needs <b>parking</b>",
		"Submitted on: Sun, 01 Mar 2026 09:30 CST",
	} {
		assert.Contains(t, m.Text, want)
	}

	assert.Contains(t, m.HTML, "<strong>Name:</strong> Jane Doe")
	assert.NotContains(t, m.HTML, "<b>parking</b>")
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "sent", Sent.String())
	assert.Equal(t, "skipped", Skipped.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unconfigured", Unconfigured.String())
}

func TestFromConfig(t *testing.T) {
	s, from := FromConfig(config.EmailConfig{})
	assert.Nil(t, s)
	assert.Equal(t, "", from)

	s, from = FromConfig(config.EmailConfig{SMTPHost: "smtp.example.com", SMTPPort: 587, SMTPUser: "desk@church.org", SMTPPass: "x", ResendAPIKey: "re_1"})
	assert.IsType(t, &SMTPSender{}, s)
	assert.Equal(t, "desk@church.org", from)

	s, from = FromConfig(config.EmailConfig{ResendAPIKey: "re_1"})
	assert.IsType(t, &ResendSender{}, s)
	assert.Equal(t, resendDefaultFrom, from)

	_, from = FromConfig(config.EmailConfig{ResendAPIKey: "re_1", From: "hello@church.org"})
	assert.Equal(t, "hello@church.org", from)
}

func TestBuildMsg_RejectsBadAddresses(t *testing.T) {
	_, err := buildMsg(Message{From: "not an address", To: "youth@church.org"})
	assert.Error(t, err)
	_, err = buildMsg(Message{From: "desk@church.org", To: "nope"})
	assert.Error(t, err)

	msg, err := buildMsg(Message{From: "desk@church.org", To: "youth@church.org", Subject: "s", Text: "t", HTML: "<p>t</p>"})
	require.NoError(t, err)
	assert.NotNil(t, msg)
}

func TestResendSender(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_123"}`))
	}))
	defer srv.Close()

	s := NewResendSender("re_test")
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	s.client.BaseURL = base

	err = s.Send(context.Background(), Message{From: "desk@church.org", To: "youth@church.org", Subject: "New Visitor: Jane Doe", Text: "Jane Doe"})
	require.NoError(t, err)
	assert.Equal(t, "/emails", gotPath)
	assert.Equal(t, "Bearer re_test", gotAuth)
	assert.Contains(t, string(gotBody), "youth@church.org")
	assert.Contains(t, string(gotBody), "New Visitor: Jane Doe")
}
