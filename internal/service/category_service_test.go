package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tienda-store/fulfillment/internal/domain"
	"go.uber.org/zap"
)

func newCategoryService() (*CategoryService, *fakeCategoryStore, *fakeProductStore) {
	categories := newFakeCategoryStore()
	products := newFakeProductStore()
	return NewCategoryService(categories, products, zap.NewNop()), categories, products
}

func TestCategorySave(t *testing.T) {
	t.Run("creates a new category", func(t *testing.T) {
		service, categories, _ := newCategoryService()

		created, err := service.Save(domain.CategoryRequest{Name: "Monitores"})
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, created.ID)
		stored, err := categories.FindByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Monitores", stored.Name)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		service, _, _ := newCategoryService()

		_, err := service.Save(domain.CategoryRequest{})

		var badRequest *domain.BadRequestError
		require.ErrorAs(t, err, &badRequest)
	})

	t.Run("rejects a duplicate name regardless of case", func(t *testing.T) {
		service, categories, _ := newCategoryService()
		categories.add(*domain.NewCategory("Monitores"))

		_, err := service.Save(domain.CategoryRequest{Name: "monitores"})

		var badRequest *domain.BadRequestError
		require.ErrorAs(t, err, &badRequest)
	})
}

func TestCategoryUpdate(t *testing.T) {
	t.Run("renames the category", func(t *testing.T) {
		service, categories, _ := newCategoryService()
		category := categories.add(*domain.NewCategory("Monitores"))

		updated, err := service.Update(category.ID, domain.CategoryRequest{Name: "Pantallas"})
		require.NoError(t, err)

		assert.Equal(t, "Pantallas", updated.Name)
	})

	t.Run("unknown category id", func(t *testing.T) {
		service, _, _ := newCategoryService()

		_, err := service.Update(uuid.New(), domain.CategoryRequest{Name: "Pantallas"})

		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}

func TestCategoryDelete(t *testing.T) {
	t.Run("deletes an unreferenced category", func(t *testing.T) {
		service, categories, _ := newCategoryService()
		category := categories.add(*domain.NewCategory("Monitores"))

		require.NoError(t, service.Delete(category.ID))

		_, err := categories.FindByID(category.ID)
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("refuses while live products reference it", func(t *testing.T) {
		service, categories, products := newCategoryService()
		category := categories.add(*domain.NewCategory("Monitores"))
		products.add(domain.Product{
			Brand:      "Dell",
			Price:      decimal.Zero,
			CategoryID: category.ID,
		})

		err := service.Delete(category.ID)

		var conflict *domain.ConflictError
		require.ErrorAs(t, err, &conflict)
	})

	t.Run("allows delete once referencing products are soft-deleted", func(t *testing.T) {
		service, categories, products := newCategoryService()
		category := categories.add(*domain.NewCategory("Monitores"))
		product := products.add(domain.Product{
			Brand:      "Dell",
			Price:      decimal.Zero,
			CategoryID: category.ID,
		})
		require.NoError(t, products.SoftDelete(product.ID))

		require.NoError(t, service.Delete(category.ID))
	})
}
