package mailer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/harpsglobal/harps-portal-backend/internal/templates"
	"github.com/harpsglobal/harps-portal-backend/pkg/config"
	"github.com/harpsglobal/harps-portal-backend/pkg/enums"
	"github.com/harpsglobal/harps-portal-backend/pkg/logger"
	"github.com/harpsglobal/harps-portal-backend/pkg/metrics"
)

const dispatchTimeout = 30 * time.Second

// Notifier is the fire-and-forget notification surface used by the
// domain services. Calls return immediately; delivery failures are
// logged and counted, never surfaced to the caller.
type Notifier interface {
	NewOrder(customerEmail string, data map[string]string)
	OrderStatus(customerEmail string, data map[string]string)
	NewTicket(data map[string]string)
}

// Dispatcher resolves templates, renders them, and hands messages to the
// sender in background goroutines.
type Dispatcher struct {
	sender    Sender
	templates templates.Repository
	metrics   *metrics.MailerMetrics
	log       *logger.Logger
	cfg       config.MailerConfig

	wg sync.WaitGroup
}

// NewDispatcher builds a notification dispatcher with the required dependencies.
func NewDispatcher(sender Sender, repo templates.Repository, m *metrics.MailerMetrics, log *logger.Logger, cfg config.MailerConfig) (*Dispatcher, error) {
	if sender == nil {
		return nil, fmt.Errorf("mail sender required")
	}
	if repo == nil {
		return nil, fmt.Errorf("templates repository required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Dispatcher{
		sender:    sender,
		templates: repo,
		metrics:   m,
		log:       log,
		cfg:       cfg,
	}, nil
}

// NewOrder notifies the office and the buyer about a submitted order.
func (d *Dispatcher) NewOrder(customerEmail string, data map[string]string) {
	d.dispatchAsync(enums.EmailKindNewOrder, recipients(d.cfg.OfficeEmail, customerEmail), data)
}

// OrderStatus notifies the buyer about an admin status change.
func (d *Dispatcher) OrderStatus(customerEmail string, data map[string]string) {
	d.dispatchAsync(enums.EmailKindOrderStatus, recipients(customerEmail), data)
}

// NewTicket notifies the office about a fresh support ticket.
func (d *Dispatcher) NewTicket(data map[string]string) {
	d.dispatchAsync(enums.EmailKindNewTicket, recipients(d.cfg.OfficeEmail), data)
}

// Wait blocks until in-flight dispatches finish. Used on shutdown and in
// tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) dispatchAsync(kind enums.EmailKind, to []string, data map[string]string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		d.dispatch(ctx, kind, to, data)
	}()
}

func (d *Dispatcher) dispatch(ctx context.Context, kind enums.EmailKind, to []string, data map[string]string) {
	ctx = d.log.WithField(ctx, "mail_kind", kind.String())

	if !d.cfg.Enabled() {
		d.metrics.IncSkipped(kind.String())
		d.log.Info(ctx, "mailer disabled, notification skipped")
		return
	}
	if len(to) == 0 {
		d.metrics.IncSkipped(kind.String())
		d.log.Warn(ctx, "notification has no recipients")
		return
	}

	tpl, err := d.templates.FindBySlug(ctx, kind.String())
	if err != nil {
		d.metrics.IncFailed(kind.String())
		d.log.Error(ctx, "loading mail template failed", err)
		return
	}
	if !tpl.IsActive {
		d.metrics.IncSkipped(kind.String())
		d.log.Info(ctx, "mail template inactive, notification suppressed")
		return
	}

	msg := Message{
		To:      to,
		Subject: templates.Render(tpl.Subject, data),
		Body:    templates.Render(tpl.Body, data),
	}

	started := time.Now()
	err = d.sender.Send(ctx, msg)
	d.metrics.ObserveDuration(kind.String(), time.Since(started))
	if err != nil {
		d.metrics.IncFailed(kind.String())
		d.log.Error(ctx, "sending notification failed", err)
		return
	}
	d.metrics.IncSent(kind.String())
}

func recipients(addresses ...string) []string {
	out := make([]string, 0, len(addresses))
	for _, a := range addresses {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}
