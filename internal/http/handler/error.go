package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"ambientefest/internal/baas"
	"ambientefest/internal/http/middleware"
	"ambientefest/internal/service"
)

// writeError writes the standard error envelope without leaking internals.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return middleware.WriteError(c, status, code, message)
}

// respondError maps a service or BaaS error onto the error envelope.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrImageTooLarge):
		return writeError(c, fiber.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE", "image exceeds the size limit")
	case errors.Is(err, service.ErrNoImages):
		return writeError(c, fiber.StatusBadRequest, "IMAGES_REQUIRED", "at least one image is required")
	case errors.Is(err, service.ErrInvalidImage):
		return writeError(c, fiber.StatusBadRequest, "INVALID_IMAGE", "only image files are accepted")
	case errors.Is(err, service.ErrInvalidTimeRange):
		return writeError(c, fiber.StatusBadRequest, "INVALID_TIME_RANGE", "start time must be before end time")
	case errors.Is(err, service.ErrInvalidID):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	case errors.Is(err, service.ErrInvalidInput):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", validationMessage(err))
	case errors.Is(err, service.ErrInvalidPaymentMethod):
		return writeError(c, fiber.StatusBadRequest, "INVALID_PAYMENT_METHOD", "payment method must be transferencia, tarjeta or efectivo")
	case errors.Is(err, service.ErrInvalidPaymentStatus):
		return writeError(c, fiber.StatusBadRequest, "INVALID_STATUS", "unknown payment status")
	case errors.Is(err, service.ErrEmptyCart):
		return writeError(c, fiber.StatusBadRequest, "EMPTY_CART", "cart is empty")
	case errors.Is(err, service.ErrInvalidCredentials):
		return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	case errors.Is(err, service.ErrUserBlocked):
		return writeError(c, fiber.StatusForbidden, "USER_BLOCKED", "your account is blocked")
	case errors.Is(err, service.ErrCommentForbidden):
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "only clients can comment")
	case errors.Is(err, service.ErrNotFound), baas.IsNotFound(err):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrEmailTaken):
		return writeError(c, fiber.StatusConflict, "EMAIL_TAKEN", "email already registered")
	case errors.Is(err, service.ErrSlotUnavailable):
		return writeError(c, fiber.StatusConflict, "SLOT_UNAVAILABLE", "time slot is not available")
	case baas.IsUnauthorized(err):
		return writeError(c, fiber.StatusUnauthorized, "SESSION_EXPIRED", "session expired, please log in again")
	}

	c.Locals(middleware.ErrorLocalKey, err)
	switch {
	case errors.Is(err, service.ErrSignupUnverified):
		return writeError(c, fiber.StatusBadGateway, "SIGNUP_UNVERIFIED", "account could not be verified, try logging in")
	case errors.Is(err, context.DeadlineExceeded):
		return writeError(c, fiber.StatusGatewayTimeout, "UPSTREAM_TIMEOUT", "backend did not answer in time")
	}
	if _, ok := baas.AsAPIError(err); ok {
		return writeError(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", "backend request failed")
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// validationMessage strips the sentinel prefix from validation errors; their
// detail is written for end users.
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, service.ErrInvalidInput.Error()+": "); i >= 0 {
		return msg[i+len(service.ErrInvalidInput.Error())+2:]
	}
	return "invalid input"
}

// ErrorHandler returns the fiber global error handler.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
