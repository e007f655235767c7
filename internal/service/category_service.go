package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tienda-store/fulfillment/internal/domain"
	"go.uber.org/zap"
)

type CategoryService struct {
	categories domain.CategoryStore
	products   domain.ProductStore
	log        *zap.Logger
}

func NewCategoryService(categories domain.CategoryStore, products domain.ProductStore, log *zap.Logger) *CategoryService {
	return &CategoryService{categories: categories, products: products, log: log}
}

func (s *CategoryService) Find(name *string, pageable domain.Pageable) (domain.Page[domain.Category], error) {
	return s.categories.Find(name, pageable)
}

func (s *CategoryService) FindByID(id uuid.UUID) (*domain.Category, error) {
	return s.categories.FindByID(id)
}

func (s *CategoryService) Save(request domain.CategoryRequest) (*domain.Category, error) {
	if request.Name == "" {
		return nil, &domain.BadRequestError{Reason: "category name is required"}
	}

	existing, err := s.categories.FindByNameIgnoreCase(request.Name)
	if err == nil && existing != nil {
		return nil, &domain.BadRequestError{Reason: fmt.Sprintf("category %s already exists", request.Name)}
	}
	var notFound *domain.NotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return nil, err
	}

	category := domain.NewCategory(request.Name)
	if err := s.categories.Save(category); err != nil {
		return nil, err
	}

	s.log.Info("category created", zap.String("id", category.ID.String()), zap.String("name", category.Name))
	return category, nil
}

func (s *CategoryService) Update(id uuid.UUID, request domain.CategoryRequest) (*domain.Category, error) {
	if request.Name == "" {
		return nil, &domain.BadRequestError{Reason: "category name is required"}
	}

	category, err := s.categories.FindByID(id)
	if err != nil {
		return nil, err
	}

	category.Name = request.Name
	category.UpdatedAt = time.Now()

	if err := s.categories.Update(category); err != nil {
		return nil, err
	}

	s.log.Info("category updated", zap.String("id", category.ID.String()))
	return category, nil
}

// Delete refuses while any live product still references the category.
func (s *CategoryService) Delete(id uuid.UUID) error {
	if _, err := s.categories.FindByID(id); err != nil {
		return err
	}

	referenced, err := s.products.ExistsByCategoryID(id)
	if err != nil {
		return err
	}
	if referenced {
		return &domain.ConflictError{Reason: fmt.Sprintf("category %s is referenced by products", id)}
	}

	if err := s.categories.Delete(id); err != nil {
		return err
	}

	s.log.Info("category deleted", zap.String("id", id.String()))
	return nil
}
