package handler

import (
	"github.com/gofiber/fiber/v2"

	"ambientefest/internal/model"
	"ambientefest/internal/service"
	"ambientefest/internal/session"
)

type reserveRequest struct {
	Notes string `json:"notes"`
}

// AvailableSlots lists the bookable slots of a service.
func AvailableSlots(svc service.ScheduleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		res, err := svc.AvailableSlots(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

// ReserveSlot books a slot for the caller. A taken slot answers 409.
func ReserveSlot(svc service.ScheduleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, serviceID, slotID, notes, err := reserveParams(c)
		if err != nil {
			return respondError(c, err)
		}
		res, err := svc.Reserve(c.UserContext(), sess, serviceID, slotID, notes)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// ReserveSlotToCart books a slot and puts it in the caller's cart.
func ReserveSlotToCart(svc service.ScheduleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, serviceID, slotID, notes, err := reserveParams(c)
		if err != nil {
			return respondError(c, err)
		}
		res, err := svc.ReserveToCart(c.UserContext(), sess, serviceID, slotID, notes)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

func reserveParams(c *fiber.Ctx) (sess *session.Session, serviceID, slotID int64, notes string, err error) {
	if sess, err = currentSession(c); err != nil {
		return
	}
	if serviceID, err = paramID(c, "id"); err != nil {
		return
	}
	if slotID, err = paramID(c, "slotId"); err != nil {
		return
	}
	var req reserveRequest
	if len(c.Body()) > 0 {
		if perr := c.BodyParser(&req); perr != nil {
			err = service.ErrInvalidInput
			return
		}
	}
	notes = req.Notes
	return
}

func ListSlots(svc service.ScheduleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var serviceID int64
		if raw := c.Query("service_id"); raw != "" {
			id, err := parseID(raw)
			if err != nil {
				return respondError(c, err)
			}
			serviceID = id
		}
		res, err := svc.ListSlots(c.UserContext(), serviceID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func CreateSlot(svc service.ScheduleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.TimeSlotInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if sess, err := currentSession(c); err == nil && in.CreatedBy == 0 {
			in.CreatedBy = sess.UserID
		}
		res, err := svc.CreateSlot(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

func UpdateSlot(svc service.ScheduleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var in model.TimeSlotInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := svc.UpdateSlot(c.UserContext(), id, in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func DeleteSlot(svc service.ScheduleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		if err := svc.DeleteSlot(c.UserContext(), id); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
