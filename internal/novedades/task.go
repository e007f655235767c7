// Package novedades implements the scheduled new-arrivals digest: products
// created since the last run are mailed to the configured recipients.
package novedades

import (
	"time"

	"github.com/tienda-store/fulfillment/internal/dispatch"
	"github.com/tienda-store/fulfillment/internal/domain"
	"github.com/tienda-store/fulfillment/internal/mail"
	"go.uber.org/zap"
)

// WatermarkStore hands out the next time window exactly once: the watermark
// is advanced atomically, so restarts neither repeat nor skip a window.
type WatermarkStore interface {
	NextWindow() (from, to time.Time, err error)
}

type Task struct {
	products   domain.ProductStore
	watermarks WatermarkStore
	dispatcher *dispatch.Dispatcher
	mailer     mail.Mailer
	recipients []string
	log        *zap.Logger
}

func NewTask(
	products domain.ProductStore,
	watermarks WatermarkStore,
	dispatcher *dispatch.Dispatcher,
	mailer mail.Mailer,
	recipients []string,
	log *zap.Logger,
) *Task {
	return &Task{
		products:   products,
		watermarks: watermarks,
		dispatcher: dispatcher,
		mailer:     mailer,
		recipients: recipients,
		log:        log,
	}
}

// Run executes one digest cycle. The watermark advances even when there is
// nothing to send, keeping the windows contiguous.
func (t *Task) Run() {
	from, to, err := t.watermarks.NextWindow()
	if err != nil {
		t.log.Error("new arrivals watermark error", zap.Error(err))
		return
	}

	products, err := t.products.FindByCreatedAtBetween(from, to)
	if err != nil {
		t.log.Error("new arrivals query error", zap.Error(err))
		return
	}
	if len(products) == 0 {
		t.log.Info("no new arrivals in window",
			zap.Time("from", from), zap.Time("to", to))
		return
	}

	html, err := mail.RenderNewArrivalsHTML(products)
	if err != nil {
		t.log.Error("new arrivals render error", zap.Error(err))
		return
	}

	t.log.Info("sending new arrivals digest",
		zap.Int("products", len(products)),
		zap.Int("recipients", len(t.recipients)))

	for _, recipient := range t.recipients {
		if recipient == "" {
			continue
		}
		to := recipient
		t.dispatcher.Submit(dispatch.Job{
			Name: "new-arrivals-mail",
			Run: func() error {
				return t.mailer.SendRich(to, "Novedades de productos en la tienda", html)
			},
		})
	}
}
