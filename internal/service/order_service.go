package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/tienda-store/fulfillment/internal/dispatch"
	"github.com/tienda-store/fulfillment/internal/domain"
	"github.com/tienda-store/fulfillment/internal/mail"
	"github.com/tienda-store/fulfillment/internal/stock"
	"go.uber.org/zap"
)

// ChangePublisher is the real-time subscriber channel.
type ChangePublisher interface {
	PublishChange(event domain.ChangeEvent) error
}

// OrderService orchestrates the order lifecycle: it is the only component
// that opens a catalog transaction, and reservation, totals and order
// persistence share that single atomic unit. The catalog and order stores
// themselves are not jointly transactional.
type OrderService struct {
	orders     domain.OrderStore
	products   domain.ProductStore
	engine     *stock.Engine
	dispatcher *dispatch.Dispatcher
	mailer     mail.Mailer
	publisher  ChangePublisher
	log        *zap.Logger
}

func NewOrderService(
	orders domain.OrderStore,
	products domain.ProductStore,
	engine *stock.Engine,
	dispatcher *dispatch.Dispatcher,
	mailer mail.Mailer,
	publisher ChangePublisher,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:     orders,
		products:   products,
		engine:     engine,
		dispatcher: dispatcher,
		mailer:     mailer,
		publisher:  publisher,
		log:        log,
	}
}

// Create validates the order, reserves stock and persists the order. When
// validation or reservation fails nothing is persisted and nothing is
// dispatched.
func (s *OrderService) Create(o *domain.Order) (*domain.Order, error) {
	err := s.products.InTx(func(tx domain.ProductTx) error {
		if err := s.engine.Validate(tx, o); err != nil {
			return err
		}
		if err := s.engine.Reserve(tx, o); err != nil {
			return err
		}

		now := time.Now()
		o.CreatedAt = now
		o.UpdatedAt = now

		return s.orders.Save(o)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.String("user_id", o.UserID.String()),
		zap.String("total", o.Total.String()))

	s.submitConfirmationMail(*o)
	s.submitChangeEvent(domain.ChangeCreate, *o)

	return o, nil
}

// Update replaces the order's lines, reconciling stock: the previous
// reservation is released and the new one taken inside one catalog
// transaction, so a validation failure leaves stock exactly as it was.
func (s *OrderService) Update(id uuid.UUID, o *domain.Order) (*domain.Order, error) {
	existing, err := s.orders.FindByID(id)
	if err != nil {
		return nil, err
	}

	err = s.products.InTx(func(tx domain.ProductTx) error {
		if err := s.engine.Release(tx, existing); err != nil {
			return err
		}
		if err := s.engine.Validate(tx, o); err != nil {
			return err
		}
		if err := s.engine.Reserve(tx, o); err != nil {
			return err
		}

		o.ID = existing.ID
		o.CreatedAt = existing.CreatedAt
		o.Touch()

		return s.orders.Save(o)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order updated", zap.String("order_id", o.ID.String()))

	s.submitChangeEvent(domain.ChangeUpdate, *o)

	return o, nil
}

// Delete releases the order's stock and removes the row.
func (s *OrderService) Delete(id uuid.UUID) error {
	existing, err := s.orders.FindByID(id)
	if err != nil {
		return err
	}

	err = s.products.InTx(func(tx domain.ProductTx) error {
		if err := s.engine.Release(tx, existing); err != nil {
			return err
		}
		return s.orders.Delete(id)
	})
	if err != nil {
		return err
	}

	s.log.Info("order deleted", zap.String("order_id", id.String()))

	s.submitChangeEvent(domain.ChangeDelete, *existing)

	return nil
}

func (s *OrderService) FindByID(id uuid.UUID) (*domain.Order, error) {
	return s.orders.FindByID(id)
}

func (s *OrderService) FindByUserID(userID uuid.UUID, pageable domain.Pageable) (domain.Page[domain.Order], error) {
	return s.orders.FindByUserID(userID, pageable)
}

// submitConfirmationMail queues the confirmation message. The snapshot is
// taken before queueing so later mutations cannot leak into the document.
func (s *OrderService) submitConfirmationMail(snapshot domain.Order) {
	if snapshot.Customer.Email == "" {
		return
	}

	s.dispatcher.Submit(dispatch.Job{
		Name: "order-confirmation-mail",
		Run: func() error {
			subject := "Confirmación de pedido " + snapshot.ID.String()
			html, err := mail.RenderOrderConfirmationHTML(&snapshot)
			if err != nil {
				return s.mailer.SendPlain(snapshot.Customer.Email, subject,
					mail.RenderOrderConfirmationPlain(&snapshot))
			}
			return s.mailer.SendRich(snapshot.Customer.Email, subject, html)
		},
	})
}

func (s *OrderService) submitChangeEvent(kind domain.ChangeKind, snapshot domain.Order) {
	s.dispatcher.Submit(dispatch.Job{
		Name: "order-change-event",
		Run: func() error {
			return s.publisher.PublishChange(domain.NewChangeEvent("ORDERS", kind, snapshot))
		},
	})
}
