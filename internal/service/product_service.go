package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tienda-store/fulfillment/internal/dispatch"
	"github.com/tienda-store/fulfillment/internal/domain"
	"go.uber.org/zap"
)

// ProductService owns the catalog operations. Every successful write pushes
// a change event to the real-time channel off the request path.
type ProductService struct {
	products   domain.ProductStore
	categories domain.CategoryStore
	orders     domain.OrderStore
	dispatcher *dispatch.Dispatcher
	publisher  ChangePublisher
	log        *zap.Logger
}

func NewProductService(
	products domain.ProductStore,
	categories domain.CategoryStore,
	orders domain.OrderStore,
	dispatcher *dispatch.Dispatcher,
	publisher ChangePublisher,
	log *zap.Logger,
) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		orders:     orders,
		dispatcher: dispatcher,
		publisher:  publisher,
		log:        log,
	}
}

func (s *ProductService) Find(filter domain.ProductFilter, pageable domain.Pageable) (domain.Page[domain.Product], error) {
	return s.products.Find(filter, pageable)
}

func (s *ProductService) FindByID(id int64) (*domain.Product, error) {
	return s.products.FindByID(id)
}

// FindByUUID looks up a product by its externally-exposed identifier.
func (s *ProductService) FindByUUID(raw string) (*domain.Product, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, &domain.BadUUIDError{Raw: raw}
	}
	return s.products.FindByUUID(id)
}

func (s *ProductService) FindByCreatedAtBetween(from, to time.Time) ([]domain.Product, error) {
	return s.products.FindByCreatedAtBetween(from, to)
}

func (s *ProductService) Save(request domain.ProductCreateRequest) (*domain.Product, error) {
	category, err := s.checkCategory(request.Category)
	if err != nil {
		return nil, err
	}
	if request.Price.IsNegative() {
		return nil, &domain.BadRequestError{Reason: "price must not be negative"}
	}
	if request.Stock < 0 {
		return nil, &domain.BadRequestError{Reason: "stock must not be negative"}
	}

	product := domain.NewProduct(request.Brand, request.Model, request.Description,
		request.Price, request.Stock, request.Image, category.ID)

	if err := s.products.Save(product); err != nil {
		return nil, err
	}

	s.log.Info("product created",
		zap.Int64("id", product.ID),
		zap.String("uuid", product.UUID.String()))

	s.submitChangeEvent(domain.ChangeCreate, *product)
	return product, nil
}

func (s *ProductService) Update(id int64, request domain.ProductUpdateRequest) (*domain.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		return nil, err
	}

	categoryID := product.CategoryID
	if request.Category != "" {
		category, err := s.checkCategory(request.Category)
		if err != nil {
			return nil, err
		}
		categoryID = category.ID
	}
	if request.Price.IsNegative() {
		return nil, &domain.BadRequestError{Reason: "price must not be negative"}
	}
	if request.Stock < 0 {
		return nil, &domain.BadRequestError{Reason: "stock must not be negative"}
	}

	product.Brand = request.Brand
	product.Model = request.Model
	product.Description = request.Description
	product.Price = request.Price
	product.Stock = request.Stock
	if request.Image != "" {
		product.Image = request.Image
	}
	product.CategoryID = categoryID
	product.UpdatedAt = time.Now()

	if err := s.products.Update(product); err != nil {
		return nil, err
	}

	s.log.Info("product updated", zap.Int64("id", product.ID))

	s.submitChangeEvent(domain.ChangeUpdate, *product)
	return product, nil
}

// Delete removes a product from the catalog. A product referenced by any
// order is soft-deleted so its historical lines stay resolvable; an
// unreferenced one is hard-deleted.
func (s *ProductService) Delete(id int64) error {
	product, err := s.products.FindByID(id)
	if err != nil {
		return err
	}

	referenced, err := s.orders.ExistsByProductID(id)
	if err != nil {
		return err
	}

	if referenced {
		if err := s.products.SoftDelete(id); err != nil {
			return err
		}
		product.IsDeleted = true
		s.log.Info("product soft-deleted, referenced by orders", zap.Int64("id", id))
	} else {
		if err := s.products.Delete(id); err != nil {
			return err
		}
		s.log.Info("product deleted", zap.Int64("id", id))
	}

	s.submitChangeEvent(domain.ChangeDelete, *product)
	return nil
}

// checkCategory resolves the category by name; it must exist and not be
// soft-deleted.
func (s *ProductService) checkCategory(name string) (*domain.Category, error) {
	if name == "" {
		return nil, &domain.BadRequestError{Reason: "category is required"}
	}

	category, err := s.categories.FindByNameIgnoreCase(name)
	if err != nil {
		return nil, &domain.BadRequestError{Reason: fmt.Sprintf("category %s does not exist", name)}
	}
	if category.IsDeleted {
		return nil, &domain.BadRequestError{Reason: fmt.Sprintf("category %s is deleted", name)}
	}
	return category, nil
}

func (s *ProductService) submitChangeEvent(kind domain.ChangeKind, snapshot domain.Product) {
	s.dispatcher.Submit(dispatch.Job{
		Name: "product-change-event",
		Run: func() error {
			return s.publisher.PublishChange(domain.NewChangeEvent("PRODUCTS", kind, snapshot))
		},
	})
}
