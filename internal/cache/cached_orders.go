package cache

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tienda-store/fulfillment/internal/domain"
)

// CachedOrderStore decorates an OrderStore with read-through and
// write-through caching keyed by the order id.
type CachedOrderStore struct {
	inner domain.OrderStore
	cache Store
	ttl   time.Duration
}

func NewCachedOrderStore(inner domain.OrderStore, cache Store, ttl time.Duration) *CachedOrderStore {
	return &CachedOrderStore{inner: inner, cache: cache, ttl: ttl}
}

func (s *CachedOrderStore) FindByID(id uuid.UUID) (*domain.Order, error) {
	if value, ok := s.cache.Get(orderKey(id)); ok {
		var o domain.Order
		if err := json.Unmarshal(value, &o); err == nil {
			return &o, nil
		}
		s.cache.Evict(orderKey(id))
	}

	o, err := s.inner.FindByID(id)
	if err != nil {
		return nil, err
	}
	s.put(o)
	return o, nil
}

func (s *CachedOrderStore) Save(o *domain.Order) error {
	if err := s.inner.Save(o); err != nil {
		return err
	}
	s.put(o)
	return nil
}

func (s *CachedOrderStore) Delete(id uuid.UUID) error {
	if err := s.inner.Delete(id); err != nil {
		return err
	}
	s.cache.Evict(orderKey(id))
	return nil
}

func (s *CachedOrderStore) FindByUserID(userID uuid.UUID, pageable domain.Pageable) (domain.Page[domain.Order], error) {
	return s.inner.FindByUserID(userID, pageable)
}

func (s *CachedOrderStore) ExistsByProductID(productID int64) (bool, error) {
	return s.inner.ExistsByProductID(productID)
}

func (s *CachedOrderStore) put(o *domain.Order) {
	value, err := json.Marshal(o)
	if err != nil {
		return
	}
	s.cache.Put(orderKey(o.ID), value, s.ttl)
}
