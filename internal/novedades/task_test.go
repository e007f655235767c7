package novedades

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tienda-store/fulfillment/internal/dispatch"
	"github.com/tienda-store/fulfillment/internal/domain"
	"go.uber.org/zap"
)

type fixedWatermarks struct {
	from, to time.Time
	err      error
	calls    int
}

func (w *fixedWatermarks) NextWindow() (time.Time, time.Time, error) {
	w.calls++
	return w.from, w.to, w.err
}

type windowProductStore struct {
	products []domain.Product
	err      error
}

func (s *windowProductStore) FindByCreatedAtBetween(from, to time.Time) ([]domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	var matched []domain.Product
	for _, p := range s.products {
		if p.CreatedAt.After(from) && !p.CreatedAt.After(to) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *windowProductStore) Find(domain.ProductFilter, domain.Pageable) (domain.Page[domain.Product], error) {
	return domain.Page[domain.Product]{}, nil
}
func (s *windowProductStore) FindByID(int64) (*domain.Product, error)       { return nil, nil }
func (s *windowProductStore) FindByUUID(uuid.UUID) (*domain.Product, error) { return nil, nil }
func (s *windowProductStore) ExistsByCategoryID(uuid.UUID) (bool, error)    { return false, nil }
func (s *windowProductStore) Save(*domain.Product) error                    { return nil }
func (s *windowProductStore) Update(*domain.Product) error                  { return nil }
func (s *windowProductStore) Delete(int64) error                            { return nil }
func (s *windowProductStore) SoftDelete(int64) error                        { return nil }
func (s *windowProductStore) InTx(func(tx domain.ProductTx) error) error    { return nil }

type recordingMailer struct {
	mu   sync.Mutex
	rich map[string]string
}

func (m *recordingMailer) SendPlain(to, subject, body string) error { return nil }

func (m *recordingMailer) SendRich(to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rich == nil {
		m.rich = make(map[string]string)
	}
	m.rich[to] = htmlBody
	return nil
}

func (m *recordingMailer) sent() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make(map[string]string, len(m.rich))
	for k, v := range m.rich {
		copied[k] = v
	}
	return copied
}

func arrival(brand string, createdAt time.Time) domain.Product {
	return domain.Product{
		Brand:     brand,
		Model:     "M1",
		Price:     decimal.RequireFromString("9.99"),
		CreatedAt: createdAt,
	}
}

func TestTaskRun(t *testing.T) {
	now := time.Now()
	window := &fixedWatermarks{from: now.Add(-24 * time.Hour), to: now}

	t.Run("mails the digest to every recipient", func(t *testing.T) {
		dispatcher := dispatch.New(2, 16, zap.NewNop())
		mailer := &recordingMailer{}
		store := &windowProductStore{products: []domain.Product{
			arrival("Lenovo", now.Add(-time.Hour)),
			arrival("Dell", now.Add(-2*time.Hour)),
		}}

		task := NewTask(store, window, dispatcher, mailer,
			[]string{"ana@example.com", "", "luis@example.com"}, zap.NewNop())
		task.Run()
		dispatcher.Stop()

		sent := mailer.sent()
		require.Len(t, sent, 2)
		assert.Contains(t, sent["ana@example.com"], "Lenovo")
		assert.Contains(t, sent["luis@example.com"], "Dell")
	})

	t.Run("empty window advances the watermark without mailing", func(t *testing.T) {
		dispatcher := dispatch.New(2, 16, zap.NewNop())
		mailer := &recordingMailer{}
		store := &windowProductStore{products: []domain.Product{
			arrival("Lenovo", now.Add(-48 * time.Hour)),
		}}
		marks := &fixedWatermarks{from: now.Add(-24 * time.Hour), to: now}

		task := NewTask(store, marks, dispatcher, mailer,
			[]string{"ana@example.com"}, zap.NewNop())
		task.Run()
		dispatcher.Stop()

		assert.Equal(t, 1, marks.calls)
		assert.Empty(t, mailer.sent())
	})

	t.Run("watermark failure skips the cycle", func(t *testing.T) {
		dispatcher := dispatch.New(2, 16, zap.NewNop())
		mailer := &recordingMailer{}
		store := &windowProductStore{products: []domain.Product{
			arrival("Lenovo", now.Add(-time.Hour)),
		}}
		marks := &fixedWatermarks{err: errors.New("catalog database down")}

		task := NewTask(store, marks, dispatcher, mailer,
			[]string{"ana@example.com"}, zap.NewNop())
		task.Run()
		dispatcher.Stop()

		assert.Empty(t, mailer.sent())
	})

	t.Run("query failure skips the cycle", func(t *testing.T) {
		dispatcher := dispatch.New(2, 16, zap.NewNop())
		mailer := &recordingMailer{}
		store := &windowProductStore{err: errors.New("catalog database down")}

		task := NewTask(store, window, dispatcher, mailer,
			[]string{"ana@example.com"}, zap.NewNop())
		task.Run()
		dispatcher.Stop()

		assert.Empty(t, mailer.sent())
	})
}
