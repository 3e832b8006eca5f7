package handler

import (
	"github.com/gofiber/fiber/v2"

	"ambientefest/internal/service"
)

type addCartItemRequest struct {
	ServiceID int64 `json:"service_id"`
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// ViewCart returns the caller's draft cart with totals.
func ViewCart(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := currentSession(c)
		if err != nil {
			return respondError(c, err)
		}
		res, err := svc.View(c.UserContext(), sess.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func AddCartItem(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := currentSession(c)
		if err != nil {
			return respondError(c, err)
		}
		var req addCartItemRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if req.ServiceID <= 0 {
			return respondError(c, service.ErrInvalidID)
		}
		res, err := svc.Add(c.UserContext(), sess.UserID, req.ServiceID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func RemoveCartItem(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := currentSession(c)
		if err != nil {
			return respondError(c, err)
		}
		serviceID, err := paramID(c, "serviceId")
		if err != nil {
			return respondError(c, err)
		}
		res, err := svc.Remove(c.UserContext(), sess.UserID, serviceID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// ClearCart empties the draft cart and deletes the server cart.
func ClearCart(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := currentSession(c)
		if err != nil {
			return respondError(c, err)
		}
		if err := svc.Clear(c.UserContext(), sess.UserID); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Checkout records a pending payment for the draft cart.
func Checkout(svc service.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := currentSession(c)
		if err != nil {
			return respondError(c, err)
		}
		var req checkoutRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := svc.Checkout(c.UserContext(), sess.UserID, req.PaymentMethod)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}
