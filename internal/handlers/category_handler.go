package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tienda-store/fulfillment/internal/domain"
	"github.com/tienda-store/fulfillment/internal/service"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) Find(c *fiber.Ctx) error {
	var name *string
	if raw := c.Query("name"); raw != "" {
		name = &raw
	}

	page, err := h.categoryService.Find(name, parsePageable(c))
	if err != nil {
		return ErrorResponse(c, err)
	}
	return SuccessResponse(c, "Categories retrieved successfully", page)
}

func (h *CategoryHandler) FindByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return ErrorResponse(c, &domain.BadUUIDError{Raw: c.Params("id")})
	}

	category, err := h.categoryService.FindByID(id)
	if err != nil {
		return ErrorResponse(c, err)
	}
	return SuccessResponse(c, "Category retrieved successfully", category)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var request domain.CategoryRequest
	if err := c.BodyParser(&request); err != nil {
		return ErrorResponse(c, &domain.BadRequestError{Reason: "invalid request body"})
	}

	category, err := h.categoryService.Save(request)
	if err != nil {
		return ErrorResponse(c, err)
	}
	return CreatedResponse(c, "Category created successfully", category)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return ErrorResponse(c, &domain.BadUUIDError{Raw: c.Params("id")})
	}

	var request domain.CategoryRequest
	if err := c.BodyParser(&request); err != nil {
		return ErrorResponse(c, &domain.BadRequestError{Reason: "invalid request body"})
	}

	category, err := h.categoryService.Update(id, request)
	if err != nil {
		return ErrorResponse(c, err)
	}
	return SuccessResponse(c, "Category updated successfully", category)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return ErrorResponse(c, &domain.BadUUIDError{Raw: c.Params("id")})
	}

	if err := h.categoryService.Delete(id); err != nil {
		return ErrorResponse(c, err)
	}
	return SuccessResponse(c, "Category deleted successfully", nil)
}
