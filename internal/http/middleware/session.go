package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"ambientefest/internal/baas"
	"ambientefest/internal/model"
	"ambientefest/internal/session"
)

// SessionLocalKey is the fiber locals key holding the *session.Session.
const SessionLocalKey = "session"

// TokenParser verifies bearer tokens.
type TokenParser interface {
	Parse(raw string) (*session.Claims, error)
}

// SessionLoader resolves the server side of a token.
type SessionLoader interface {
	Get(ctx context.Context, id string) (*session.Session, error)
	IsBlocked(ctx context.Context, userID int64) (bool, error)
}

// RequireSession accepts "Authorization: Bearer <jwt>", loads the session
// and refuses blocked users. The session lands in locals and its BaaS token
// in the user context.
func RequireSession(tokens TokenParser, sessions SessionLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return WriteError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			return WriteError(c, fiber.StatusUnauthorized, "SESSION_EXPIRED", "session expired, please log in again")
		}

		ctx := c.UserContext()
		sess, err := sessions.Get(ctx, claims.SessionID)
		switch {
		case errors.Is(err, session.ErrNotFound):
			return WriteError(c, fiber.StatusUnauthorized, "SESSION_EXPIRED", "session expired, please log in again")
		case err != nil:
			return WriteError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if sess.UserID != claims.UserID {
			return WriteError(c, fiber.StatusUnauthorized, "SESSION_EXPIRED", "session expired, please log in again")
		}

		blocked, err := sessions.IsBlocked(ctx, sess.UserID)
		if err != nil {
			return WriteError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if blocked {
			return WriteError(c, fiber.StatusForbidden, "USER_BLOCKED", "your account is blocked")
		}

		c.Locals(SessionLocalKey, sess)
		c.SetUserContext(baas.WithToken(ctx, sess.BaaSToken))
		return c.Next()
	}
}

// RequireAdmin must run after RequireSession.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := SessionFrom(c)
		if sess == nil {
			return WriteError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}
		if sess.Role != model.RoleNameAdmin {
			return WriteError(c, fiber.StatusForbidden, "FORBIDDEN", "admin role required")
		}
		return c.Next()
	}
}

// SessionFrom returns the session stored by RequireSession, or nil.
func SessionFrom(c *fiber.Ctx) *session.Session {
	s, _ := c.Locals(SessionLocalKey).(*session.Session)
	return s
}

func bearerToken(header string) (string, bool) {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}

// SessionRevoker deletes sessions.
type SessionRevoker interface {
	Delete(ctx context.Context, id string) error
}

// RevokeOnUnauthorized deletes the caller's session when the handler
// answered 401, i.e. the BaaS refused the token stored in it.
func RevokeOnUnauthorized(sessions SessionRevoker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if c.Response().StatusCode() != fiber.StatusUnauthorized {
			return err
		}
		if sess := SessionFrom(c); sess != nil {
			_ = sessions.Delete(context.WithoutCancel(c.UserContext()), sess.ID)
		}
		return err
	}
}
