package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tienda-store/fulfillment/internal/domain"
	"github.com/tienda-store/fulfillment/internal/service"
)

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) Find(c *fiber.Ctx) error {
	page, err := h.productService.Find(parseProductFilter(c), parsePageable(c))
	if err != nil {
		return ErrorResponse(c, err)
	}
	return SuccessResponse(c, "Products retrieved successfully", page)
}

func (h *ProductHandler) FindByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return ErrorResponse(c, &domain.BadRequestError{Reason: "invalid product id"})
	}

	product, err := h.productService.FindByID(id)
	if err != nil {
		return ErrorResponse(c, err)
	}
	return SuccessResponse(c, "Product retrieved successfully", product)
}

func (h *ProductHandler) FindByUUID(c *fiber.Ctx) error {
	product, err := h.productService.FindByUUID(c.Params("uuid"))
	if err != nil {
		return ErrorResponse(c, err)
	}
	return SuccessResponse(c, "Product retrieved successfully", product)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var request domain.ProductCreateRequest
	if err := c.BodyParser(&request); err != nil {
		return ErrorResponse(c, &domain.BadRequestError{Reason: "invalid request body"})
	}

	product, err := h.productService.Save(request)
	if err != nil {
		return ErrorResponse(c, err)
	}
	return CreatedResponse(c, "Product created successfully", product)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return ErrorResponse(c, &domain.BadRequestError{Reason: "invalid product id"})
	}

	var request domain.ProductUpdateRequest
	if err := c.BodyParser(&request); err != nil {
		return ErrorResponse(c, &domain.BadRequestError{Reason: "invalid request body"})
	}

	product, err := h.productService.Update(id, request)
	if err != nil {
		return ErrorResponse(c, err)
	}
	return SuccessResponse(c, "Product updated successfully", product)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return ErrorResponse(c, &domain.BadRequestError{Reason: "invalid product id"})
	}

	if err := h.productService.Delete(id); err != nil {
		return ErrorResponse(c, err)
	}
	return SuccessResponse(c, "Product deleted successfully", nil)
}
