package middleware

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ambientefest/internal/baas"
	"ambientefest/internal/cache"
	"ambientefest/internal/model"
	"ambientefest/internal/session"
)

func TestRequireSession(t *testing.T) {
	ctx := context.Background()
	tokens := session.NewManager("secret", time.Hour)
	store := session.NewStore(cache.NewMemory(), time.Hour)

	client, err := store.Create(ctx, session.Session{UserID: 4, Role: model.RoleNameClient, BaaSToken: "baas-4"})
	require.NoError(t, err)
	blocked, err := store.Create(ctx, session.Session{UserID: 7, Role: model.RoleNameClient, BaaSToken: "baas-7"})
	require.NoError(t, err)
	require.NoError(t, store.SetBlocked(ctx, 7, true))
	admin, err := store.Create(ctx, session.Session{UserID: 1, Role: model.RoleNameAdmin, BaaSToken: "baas-1"})
	require.NoError(t, err)

	issue := func(s session.Session) string {
		tok, err := tokens.Issue(s)
		require.NoError(t, err)
		return tok
	}
	revoked := issue(session.Session{ID: "gone", UserID: 4})

	app := fiber.New()
	app.Use(RequestID())
	api := app.Group("/api", RequireSession(tokens, store))
	api.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": SessionFrom(c).UserID,
			"baas":    baas.TokenFrom(c.UserContext()),
		})
	})
	api.Get("/admin", RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{name: "valid session", path: "/api/me", header: "Bearer " + issue(*client), wantStatus: fiber.StatusOK},
		{name: "missing header", path: "/api/me", wantStatus: fiber.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "wrong scheme", path: "/api/me", header: "Basic abc", wantStatus: fiber.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "forged token", path: "/api/me", header: "Bearer not.a.jwt", wantStatus: fiber.StatusUnauthorized, wantCode: "SESSION_EXPIRED"},
		{name: "revoked session", path: "/api/me", header: "Bearer " + revoked, wantStatus: fiber.StatusUnauthorized, wantCode: "SESSION_EXPIRED"},
		{name: "blocked user", path: "/api/me", header: "Bearer " + issue(*blocked), wantStatus: fiber.StatusForbidden, wantCode: "USER_BLOCKED"},
		{name: "client on admin route", path: "/api/admin", header: "Bearer " + issue(*client), wantStatus: fiber.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "admin on admin route", path: "/api/admin", header: "Bearer " + issue(*admin), wantStatus: fiber.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantCode != "" {
				var body ErrorPayload
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.wantCode, body.Error.Code)
				assert.NotEmpty(t, body.RequestID)
			}
			if tt.name == "valid session" {
				var body map[string]any
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, float64(4), body["user_id"])
				assert.Equal(t, "baas-4", body["baas"])
			}
		})
	}
}

func TestRevokeOnUnauthorized(t *testing.T) {
	ctx := context.Background()
	tokens := session.NewManager("secret", time.Hour)
	store := session.NewStore(cache.NewMemory(), time.Hour)

	tests := []struct {
		name        string
		status      int
		wantRevoked bool
	}{
		{name: "backend refused the token", status: fiber.StatusUnauthorized, wantRevoked: true},
		{name: "other failure", status: fiber.StatusBadGateway, wantRevoked: false},
		{name: "success", status: fiber.StatusOK, wantRevoked: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := store.Create(ctx, session.Session{UserID: 4, Role: model.RoleNameClient})
			require.NoError(t, err)
			tok, err := tokens.Issue(*sess)
			require.NoError(t, err)

			app := fiber.New()
			app.Get("/", RequireSession(tokens, store), RevokeOnUnauthorized(store), func(c *fiber.Ctx) error {
				return c.SendStatus(tt.status)
			})

			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tok)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			_, err = store.Get(ctx, sess.ID)
			if tt.wantRevoked {
				assert.ErrorIs(t, err, session.ErrNotFound)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
