package cache

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tienda-store/fulfillment/internal/domain"
)

// CachedCategoryStore decorates a CategoryStore. Lookups by name populate
// the same id-keyed entry as lookups by id.
type CachedCategoryStore struct {
	inner domain.CategoryStore
	cache Store
	ttl   time.Duration
}

func NewCachedCategoryStore(inner domain.CategoryStore, cache Store, ttl time.Duration) *CachedCategoryStore {
	return &CachedCategoryStore{inner: inner, cache: cache, ttl: ttl}
}

func (s *CachedCategoryStore) FindByID(id uuid.UUID) (*domain.Category, error) {
	if value, ok := s.cache.Get(categoryKey(id)); ok {
		var c domain.Category
		if err := json.Unmarshal(value, &c); err == nil {
			return &c, nil
		}
		s.cache.Evict(categoryKey(id))
	}

	c, err := s.inner.FindByID(id)
	if err != nil {
		return nil, err
	}
	s.put(c)
	return c, nil
}

func (s *CachedCategoryStore) FindByNameIgnoreCase(name string) (*domain.Category, error) {
	c, err := s.inner.FindByNameIgnoreCase(name)
	if err != nil {
		return nil, err
	}
	s.put(c)
	return c, nil
}

func (s *CachedCategoryStore) Save(c *domain.Category) error {
	if err := s.inner.Save(c); err != nil {
		return err
	}
	s.put(c)
	return nil
}

func (s *CachedCategoryStore) Update(c *domain.Category) error {
	if err := s.inner.Update(c); err != nil {
		return err
	}
	s.put(c)
	return nil
}

func (s *CachedCategoryStore) Delete(id uuid.UUID) error {
	if err := s.inner.Delete(id); err != nil {
		return err
	}
	s.cache.Evict(categoryKey(id))
	return nil
}

func (s *CachedCategoryStore) Find(name *string, pageable domain.Pageable) (domain.Page[domain.Category], error) {
	return s.inner.Find(name, pageable)
}

func (s *CachedCategoryStore) put(c *domain.Category) {
	value, err := json.Marshal(c)
	if err != nil {
		return
	}
	s.cache.Put(categoryKey(c.ID), value, s.ttl)
}
