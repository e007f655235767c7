package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tienda-store/fulfillment/internal/domain"
)

type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func SuccessResponse(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: getRequestID(c),
	})
}

func CreatedResponse(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
		RequestID: getRequestID(c),
	})
}

func errorResponse(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now(),
		RequestID: getRequestID(c),
	})
}

// ErrorResponse maps a domain error to its HTTP status.
func ErrorResponse(c *fiber.Ctx, err error) error {
	var (
		notFound   *domain.NotFoundError
		badRequest *domain.BadRequestError
		badUUID    *domain.BadUUIDError
		noStock    *domain.InsufficientStockError
		badPrice   *domain.PriceMismatchError
		conflict   *domain.ConflictError
	)

	switch {
	case errors.As(err, &notFound):
		return errorResponse(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.As(err, &badRequest):
		return errorResponse(c, fiber.StatusBadRequest, "BAD_REQUEST", err.Error())
	case errors.As(err, &badUUID):
		return errorResponse(c, fiber.StatusBadRequest, "BAD_UUID", err.Error())
	case errors.As(err, &noStock):
		return errorResponse(c, fiber.StatusConflict, "INSUFFICIENT_STOCK", err.Error())
	case errors.As(err, &badPrice):
		return errorResponse(c, fiber.StatusConflict, "PRICE_MISMATCH", err.Error())
	case errors.As(err, &conflict):
		return errorResponse(c, fiber.StatusConflict, "CONFLICT", err.Error())
	default:
		return errorResponse(c, fiber.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error")
	}
}

func getRequestID(c *fiber.Ctx) string {
	requestID := c.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Set("X-Request-ID", requestID)
	}
	return requestID
}
