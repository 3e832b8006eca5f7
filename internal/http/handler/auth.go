package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ambientefest/internal/http/middleware"
	"ambientefest/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session token. Blocked accounts get 403
// with the blocked flags in the error details.
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if errors.Is(err, service.ErrUserBlocked) && res != nil {
			return blockedResponse(c, res)
		}
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	}
}

func blockedResponse(c *fiber.Ctx, res *service.LoginResult) error {
	return middleware.WriteErrorDetails(c, fiber.StatusForbidden, "USER_BLOCKED", "your account is blocked", map[string]any{
		"blocked":       true,
		"can_interact":  false,
		"redirect_path": res.RedirectPath,
		"user":          res.User,
	})
}

// Register creates a client account and logs it in when possible.
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.RegisterInput
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		res, err := svc.Register(c.UserContext(), req)
		if errors.Is(err, service.ErrUserBlocked) && res != nil {
			return blockedResponse(c, res)
		}
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

func Logout(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := currentSession(c)
		if err != nil {
			return respondError(c, err)
		}
		if err := svc.Logout(c.UserContext(), sess); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Me returns the caller's account as the BaaS currently sees it.
func Me(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := currentSession(c)
		if err != nil {
			return respondError(c, err)
		}
		user, err := svc.Me(c.UserContext(), sess)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(user)
	}
}

func UpdateProfile(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := currentSession(c)
		if err != nil {
			return respondError(c, err)
		}
		var req service.ProfileInput
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		user, err := svc.UpdateProfile(c.UserContext(), sess, req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(user)
	}
}
