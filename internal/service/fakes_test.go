package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tienda-store/fulfillment/internal/domain"
	"github.com/tienda-store/fulfillment/internal/stock"
	"go.uber.org/zap"
)

func stockEngine() *stock.Engine {
	return stock.NewEngine(zap.NewNop())
}

// fakeProductStore is an in-memory catalog with transactional rollback:
// InTx snapshots the products and restores them when fn fails, mirroring
// the behavior of the real store.
type fakeProductStore struct {
	mu       sync.Mutex
	products map[int64]*domain.Product
	nextID   int64

	categoryNames map[uuid.UUID]string
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{
		products:      make(map[int64]*domain.Product),
		nextID:        1,
		categoryNames: make(map[uuid.UUID]string),
	}
}

func (s *fakeProductStore) add(p domain.Product) *domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextID
		s.nextID++
	}
	if p.UUID == uuid.Nil {
		p.UUID = uuid.New()
	}
	stored := p
	s.products[stored.ID] = &stored
	return &stored
}

func (s *fakeProductStore) stockOf(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Stock
}

func (s *fakeProductStore) FindByID(id int64) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, &domain.NotFoundError{Entity: "product", ID: fmt.Sprintf("%d", id)}
	}
	copied := *p
	return &copied, nil
}

func (s *fakeProductStore) FindByUUID(id uuid.UUID) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.UUID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, &domain.NotFoundError{Entity: "product", ID: id.String()}
}

func (s *fakeProductStore) Find(filter domain.ProductFilter, pageable domain.Pageable) (domain.Page[domain.Product], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []domain.Product
	for _, p := range s.products {
		if filter.Matches(*p, s.categoryNames[p.CategoryID]) {
			matched = append(matched, *p)
		}
	}
	return domain.NewPage(matched, pageable, int64(len(matched))), nil
}

func (s *fakeProductStore) FindByCreatedAtBetween(from, to time.Time) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []domain.Product
	for _, p := range s.products {
		if p.CreatedAt.After(from) && !p.CreatedAt.After(to) {
			matched = append(matched, *p)
		}
	}
	return matched, nil
}

func (s *fakeProductStore) ExistsByCategoryID(categoryID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.CategoryID == categoryID && !p.IsDeleted {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeProductStore) Save(p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextID
	s.nextID++
	stored := *p
	s.products[stored.ID] = &stored
	return nil
}

func (s *fakeProductStore) Update(p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return &domain.NotFoundError{Entity: "product", ID: fmt.Sprintf("%d", p.ID)}
	}
	stored := *p
	s.products[stored.ID] = &stored
	return nil
}

func (s *fakeProductStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return &domain.NotFoundError{Entity: "product", ID: fmt.Sprintf("%d", id)}
	}
	delete(s.products, id)
	return nil
}

func (s *fakeProductStore) SoftDelete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return &domain.NotFoundError{Entity: "product", ID: fmt.Sprintf("%d", id)}
	}
	p.IsDeleted = true
	return nil
}

func (s *fakeProductStore) InTx(fn func(tx domain.ProductTx) error) error {
	s.mu.Lock()
	snapshot := make(map[int64]*domain.Product, len(s.products))
	for id, p := range s.products {
		copied := *p
		snapshot[id] = &copied
	}
	s.mu.Unlock()

	if err := fn(&fakeProductTx{store: s}); err != nil {
		s.mu.Lock()
		s.products = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

type fakeProductTx struct {
	store *fakeProductStore
}

func (t *fakeProductTx) GetByID(id int64) (*domain.Product, error) {
	return t.store.FindByID(id)
}

func (t *fakeProductTx) DecrementStock(id int64, quantity int) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	p, ok := t.store.products[id]
	if !ok {
		return &domain.NotFoundError{Entity: "product", ID: fmt.Sprintf("%d", id)}
	}
	if p.Stock < quantity {
		return &domain.InsufficientStockError{ProductID: id}
	}
	p.Stock -= quantity
	return nil
}

func (t *fakeProductTx) IncrementStock(id int64, quantity int) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	p, ok := t.store.products[id]
	if !ok {
		return &domain.NotFoundError{Entity: "product", ID: fmt.Sprintf("%d", id)}
	}
	p.Stock += quantity
	return nil
}

type fakeOrderStore struct {
	mu      sync.Mutex
	orders  map[uuid.UUID]*domain.Order
	saveErr error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[uuid.UUID]*domain.Order)}
}

func (s *fakeOrderStore) FindByID(id uuid.UUID) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, &domain.NotFoundError{Entity: "order", ID: id.String()}
	}
	copied := *o
	copied.Lines = append([]domain.OrderLine(nil), o.Lines...)
	return &copied, nil
}

func (s *fakeOrderStore) FindByUserID(userID uuid.UUID, pageable domain.Pageable) (domain.Page[domain.Order], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			matched = append(matched, *o)
		}
	}
	return domain.NewPage(matched, pageable, int64(len(matched))), nil
}

func (s *fakeOrderStore) Save(o *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	stored := *o
	stored.Lines = append([]domain.OrderLine(nil), o.Lines...)
	s.orders[stored.ID] = &stored
	return nil
}

func (s *fakeOrderStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return &domain.NotFoundError{Entity: "order", ID: id.String()}
	}
	delete(s.orders, id)
	return nil
}

func (s *fakeOrderStore) ExistsByProductID(productID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		for _, line := range o.Lines {
			if line.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

type fakeCategoryStore struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*domain.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: make(map[uuid.UUID]*domain.Category)}
}

func (s *fakeCategoryStore) add(c domain.Category) *domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := c
	s.categories[stored.ID] = &stored
	return &stored
}

func (s *fakeCategoryStore) Find(name *string, pageable domain.Pageable) (domain.Page[domain.Category], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []domain.Category
	for _, c := range s.categories {
		matched = append(matched, *c)
	}
	return domain.NewPage(matched, pageable, int64(len(matched))), nil
}

func (s *fakeCategoryStore) FindByID(id uuid.UUID) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, &domain.NotFoundError{Entity: "category", ID: id.String()}
	}
	copied := *c
	return &copied, nil
}

func (s *fakeCategoryStore) FindByNameIgnoreCase(name string) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if strings.EqualFold(c.Name, name) {
			copied := *c
			return &copied, nil
		}
	}
	return nil, &domain.NotFoundError{Entity: "category", ID: name}
}

func (s *fakeCategoryStore) Save(c *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *c
	s.categories[stored.ID] = &stored
	return nil
}

func (s *fakeCategoryStore) Update(c *domain.Category) error {
	return s.Save(c)
}

func (s *fakeCategoryStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return &domain.NotFoundError{Entity: "category", ID: id.String()}
	}
	delete(s.categories, id)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.ChangeEvent
}

func (p *fakePublisher) PublishChange(event domain.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) published() []domain.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.ChangeEvent(nil), p.events...)
}

type sentMail struct {
	To      string
	Subject string
	Body    string
	Rich    bool
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) SendPlain(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *fakeMailer) SendRich(to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: htmlBody, Rich: true})
	return nil
}

func (m *fakeMailer) deliveries() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}
