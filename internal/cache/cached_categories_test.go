package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tienda-store/fulfillment/internal/domain"
)

type countingCategoryStore struct {
	categories    map[uuid.UUID]*domain.Category
	findByIDCalls int
}

func newCountingCategoryStore() *countingCategoryStore {
	return &countingCategoryStore{categories: make(map[uuid.UUID]*domain.Category)}
}

func (s *countingCategoryStore) add(c domain.Category) *domain.Category {
	stored := c
	s.categories[stored.ID] = &stored
	return &stored
}

func (s *countingCategoryStore) Find(*string, domain.Pageable) (domain.Page[domain.Category], error) {
	return domain.Page[domain.Category]{}, nil
}

func (s *countingCategoryStore) FindByID(id uuid.UUID) (*domain.Category, error) {
	s.findByIDCalls++
	c, ok := s.categories[id]
	if !ok {
		return nil, &domain.NotFoundError{Entity: "category", ID: id.String()}
	}
	copied := *c
	return &copied, nil
}

func (s *countingCategoryStore) FindByNameIgnoreCase(name string) (*domain.Category, error) {
	for _, c := range s.categories {
		if strings.EqualFold(c.Name, name) {
			copied := *c
			return &copied, nil
		}
	}
	return nil, &domain.NotFoundError{Entity: "category", ID: name}
}

func (s *countingCategoryStore) Save(c *domain.Category) error {
	stored := *c
	s.categories[stored.ID] = &stored
	return nil
}

func (s *countingCategoryStore) Update(c *domain.Category) error {
	return s.Save(c)
}

func (s *countingCategoryStore) Delete(id uuid.UUID) error {
	delete(s.categories, id)
	return nil
}

func TestCachedCategoryStore(t *testing.T) {
	t.Run("name lookup primes the id key", func(t *testing.T) {
		inner := newCountingCategoryStore()
		category := inner.add(*domain.NewCategory("Monitores"))
		store := NewCachedCategoryStore(inner, NewMemoryStore(), 24*time.Hour)

		_, err := store.FindByNameIgnoreCase("monitores")
		require.NoError(t, err)

		_, err = store.FindByID(category.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, inner.findByIDCalls)
	})

	t.Run("update replaces the cached entry", func(t *testing.T) {
		inner := newCountingCategoryStore()
		category := inner.add(*domain.NewCategory("Monitores"))
		store := NewCachedCategoryStore(inner, NewMemoryStore(), 24*time.Hour)

		_, err := store.FindByID(category.ID)
		require.NoError(t, err)

		category.Name = "Pantallas"
		require.NoError(t, store.Update(category))

		cached, err := store.FindByID(category.ID)
		require.NoError(t, err)
		assert.Equal(t, "Pantallas", cached.Name)
		assert.Equal(t, 1, inner.findByIDCalls)
	})

	t.Run("delete evicts the entry", func(t *testing.T) {
		inner := newCountingCategoryStore()
		category := inner.add(*domain.NewCategory("Monitores"))
		store := NewCachedCategoryStore(inner, NewMemoryStore(), 24*time.Hour)

		_, err := store.FindByID(category.ID)
		require.NoError(t, err)

		require.NoError(t, store.Delete(category.ID))

		_, err = store.FindByID(category.ID)
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}
