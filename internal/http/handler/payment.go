package handler

import (
	"github.com/gofiber/fiber/v2"

	"ambientefest/internal/service"
)

type paymentStatusRequest struct {
	Status string `json:"status"`
	Estado string `json:"estado"`
}

// ListPayments returns every payment with its payer resolved.
func ListPayments(svc service.PaymentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func MyPayments(svc service.PaymentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := currentSession(c)
		if err != nil {
			return respondError(c, err)
		}
		res, err := svc.ListMine(c.UserContext(), sess.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// UpdatePaymentStatus accepts the status under "status" or "estado".
func UpdatePaymentStatus(svc service.PaymentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req paymentStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		status := req.Status
		if status == "" {
			status = req.Estado
		}
		res, err := svc.UpdateStatus(c.UserContext(), id, status)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}
