package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tienda-store/fulfillment/internal/domain"
	"github.com/tienda-store/fulfillment/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	request, err := parseOrderRequest(c)
	if err != nil {
		return ErrorResponse(c, err)
	}

	order, err := h.orderService.Create(request.ToOrder())
	if err != nil {
		return ErrorResponse(c, err)
	}
	return CreatedResponse(c, "Order created successfully", order)
}

func (h *OrderHandler) FindByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return ErrorResponse(c, &domain.BadUUIDError{Raw: c.Params("id")})
	}

	order, err := h.orderService.FindByID(id)
	if err != nil {
		return ErrorResponse(c, err)
	}
	return SuccessResponse(c, "Order retrieved successfully", order)
}

func (h *OrderHandler) FindByUserID(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return ErrorResponse(c, &domain.BadUUIDError{Raw: c.Params("user_id")})
	}

	page, err := h.orderService.FindByUserID(userID, parsePageable(c))
	if err != nil {
		return ErrorResponse(c, err)
	}
	return SuccessResponse(c, "Orders retrieved successfully", page)
}

func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return ErrorResponse(c, &domain.BadUUIDError{Raw: c.Params("id")})
	}

	request, err := parseOrderRequest(c)
	if err != nil {
		return ErrorResponse(c, err)
	}

	order, err := h.orderService.Update(id, request.ToOrder())
	if err != nil {
		return ErrorResponse(c, err)
	}
	return SuccessResponse(c, "Order updated successfully", order)
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return ErrorResponse(c, &domain.BadUUIDError{Raw: c.Params("id")})
	}

	if err := h.orderService.Delete(id); err != nil {
		return ErrorResponse(c, err)
	}
	return SuccessResponse(c, "Order deleted successfully", nil)
}

func parseOrderRequest(c *fiber.Ctx) (*domain.CreateOrderRequest, error) {
	var request domain.CreateOrderRequest
	if err := c.BodyParser(&request); err != nil {
		return nil, &domain.BadRequestError{Reason: "invalid request body"}
	}

	if request.UserID == uuid.Nil {
		return nil, &domain.BadRequestError{Reason: "user id is required"}
	}
	if len(request.Lines) == 0 {
		return nil, &domain.BadRequestError{Reason: "at least one line is required"}
	}
	for _, line := range request.Lines {
		if line.ProductID <= 0 {
			return nil, &domain.BadRequestError{Reason: "invalid product id"}
		}
		if line.Quantity <= 0 {
			return nil, &domain.BadRequestError{Reason: "invalid quantity"}
		}
		if line.ProductPrice.IsNegative() {
			return nil, &domain.BadRequestError{Reason: "invalid price"}
		}
	}

	return &request, nil
}
