// Package notify routes new-visitor notices to the ministry leader for the
// visitor's age group. Delivery is best-effort: nothing here returns an error
// to the caller.
package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/welcomedesk/visitors/internal/models"
)

type Outcome int

const (
	Unconfigured Outcome = iota // no transport credentials
	Skipped                     // no address for the age group
	Sent
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Unconfigured:
		return "unconfigured"
	case Skipped:
		return "skipped"
	case Sent:
		return "sent"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

type Options struct {
	From     string
	Location *time.Location
	Timeout  time.Duration
}

type Dispatcher struct {
	sender Sender
	opts   Options
	log    *zap.Logger
}

// NewDispatcher returns a dispatcher. A nil sender makes every Notify a
// logged no-op.
func NewDispatcher(sender Sender, opts Options, log *zap.Logger) *Dispatcher {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Dispatcher{sender: sender, opts: opts, log: log}
}

// Notify emails the leader configured for v's age group.
func (d *Dispatcher) Notify(ctx context.Context, v models.Visitor, settings *models.ChurchSettings) (out Outcome) {
	log := d.log.With(zap.String("visitor_id", v.ID), zap.String("age_group", string(v.AgeGroup)))

	if d.sender == nil {
		log.Info("email not configured, skipping notification")
		return Unconfigured
	}

	var to string
	if settings != nil {
		to = settings.NotificationEmails.For(v.AgeGroup)
	}
	if to == "" {
		log.Info("no notification email configured for age group")
		return Skipped
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("notification sender panicked", zap.Any("panic", r))
			out = Failed
		}
	}()

	if d.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.opts.Timeout)
		defer cancel()
	}

	m := Compose(v, d.opts.Location)
	m.From = d.opts.From
	m.To = to
	if err := d.sender.Send(ctx, m); err != nil {
		log.Error("failed to send visitor notification", zap.String("to", to), zap.Error(err))
		return Failed
	}
	log.Info("visitor notification sent", zap.String("to", to))
	return Sent
}
