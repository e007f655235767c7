package cache

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tienda-store/fulfillment/internal/domain"
)

// CachedProductStore decorates a ProductStore with read-through and
// write-through caching. Entries are keyed by the result's identity, under
// both the internal id and the external UUID, so either lookup path hits the
// same entry regardless of which one populated it.
type CachedProductStore struct {
	inner domain.ProductStore
	cache Store
	ttl   time.Duration
}

func NewCachedProductStore(inner domain.ProductStore, cache Store, ttl time.Duration) *CachedProductStore {
	return &CachedProductStore{inner: inner, cache: cache, ttl: ttl}
}

func (s *CachedProductStore) FindByID(id int64) (*domain.Product, error) {
	if value, ok := s.cache.Get(productIDKey(id)); ok {
		var p domain.Product
		if err := json.Unmarshal(value, &p); err == nil {
			return &p, nil
		}
		s.cache.Evict(productIDKey(id))
	}

	p, err := s.inner.FindByID(id)
	if err != nil {
		return nil, err
	}
	s.put(p)
	return p, nil
}

func (s *CachedProductStore) FindByUUID(id uuid.UUID) (*domain.Product, error) {
	if value, ok := s.cache.Get(productUUIDKey(id)); ok {
		var p domain.Product
		if err := json.Unmarshal(value, &p); err == nil {
			return &p, nil
		}
		s.cache.Evict(productUUIDKey(id))
	}

	p, err := s.inner.FindByUUID(id)
	if err != nil {
		return nil, err
	}
	s.put(p)
	return p, nil
}

func (s *CachedProductStore) Save(p *domain.Product) error {
	if err := s.inner.Save(p); err != nil {
		return err
	}
	s.put(p)
	return nil
}

func (s *CachedProductStore) Update(p *domain.Product) error {
	if err := s.inner.Update(p); err != nil {
		return err
	}
	s.put(p)
	return nil
}

func (s *CachedProductStore) Delete(id int64) error {
	s.evictByID(id)
	if err := s.inner.Delete(id); err != nil {
		return err
	}
	s.cache.Evict(productIDKey(id))
	return nil
}

func (s *CachedProductStore) SoftDelete(id int64) error {
	s.evictByID(id)
	if err := s.inner.SoftDelete(id); err != nil {
		return err
	}
	s.cache.Evict(productIDKey(id))
	return nil
}

// InTx wraps the transaction so that every product touched through it is
// evicted once the transaction commits. Stock mutations would otherwise sit
// stale in the cache for a full TTL.
func (s *CachedProductStore) InTx(fn func(tx domain.ProductTx) error) error {
	recorder := &recordingTx{}
	err := s.inner.InTx(func(tx domain.ProductTx) error {
		recorder.inner = tx
		return fn(recorder)
	})
	if err != nil {
		return err
	}

	for _, id := range recorder.touched {
		s.evictByID(id)
		s.cache.Evict(productIDKey(id))
	}
	return nil
}

func (s *CachedProductStore) Find(filter domain.ProductFilter, pageable domain.Pageable) (domain.Page[domain.Product], error) {
	return s.inner.Find(filter, pageable)
}

func (s *CachedProductStore) FindByCreatedAtBetween(from, to time.Time) ([]domain.Product, error) {
	return s.inner.FindByCreatedAtBetween(from, to)
}

func (s *CachedProductStore) ExistsByCategoryID(categoryID uuid.UUID) (bool, error) {
	return s.inner.ExistsByCategoryID(categoryID)
}

func (s *CachedProductStore) put(p *domain.Product) {
	value, err := json.Marshal(p)
	if err != nil {
		return
	}
	s.cache.Put(productIDKey(p.ID), value, s.ttl)
	s.cache.Put(productUUIDKey(p.UUID), value, s.ttl)
}

// evictByID drops the UUID-keyed twin of an id-keyed entry. The UUID is only
// known if the entry is still cached.
func (s *CachedProductStore) evictByID(id int64) {
	value, ok := s.cache.Get(productIDKey(id))
	if !ok {
		return
	}
	var p domain.Product
	if err := json.Unmarshal(value, &p); err == nil {
		s.cache.Evict(productUUIDKey(p.UUID))
	}
}

// recordingTx forwards to the real transaction and records every product id
// whose stock was mutated.
type recordingTx struct {
	inner   domain.ProductTx
	touched []int64
}

func (t *recordingTx) GetByID(id int64) (*domain.Product, error) {
	return t.inner.GetByID(id)
}

func (t *recordingTx) DecrementStock(id int64, quantity int) error {
	t.touched = append(t.touched, id)
	return t.inner.DecrementStock(id, quantity)
}

func (t *recordingTx) IncrementStock(id int64, quantity int) error {
	t.touched = append(t.touched, id)
	return t.inner.IncrementStock(id, quantity)
}
