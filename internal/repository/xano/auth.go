package xano

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ambientefest/internal/baas"
	"ambientefest/internal/model"
	"ambientefest/internal/normalize"
	"ambientefest/internal/repository"
)

// ErrNoToken is returned by Login when the answer carries no token.
var ErrNoToken = errors.New("login response carries no token")

// tokenPaths lists where the BaaS may put the auth token, in priority order.
var tokenPaths = [][]string{
	{"authToken"}, {"token"}, {"accessToken"}, {"access_token"},
	{"data", "authToken"}, {"data", "token"},
	{"0", "authToken"}, {"0", "token"},
}

// AuthRepo implements repository.AuthRepository over the auth API group.
type AuthRepo struct {
	client *baas.Client
}

func NewAuthRepo(c *baas.Client) *AuthRepo {
	return &AuthRepo{client: c}
}

var _ repository.AuthRepository = (*AuthRepo)(nil)

func (r *AuthRepo) Login(ctx context.Context, email, password string) (string, error) {
	raw, err := r.client.Post(ctx, "/auth/login", map[string]string{
		"email":    strings.TrimSpace(email),
		"password": password,
	})
	if err != nil {
		return "", err
	}
	tok := extractToken(raw)
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// Signup returns an empty token when the BaaS created the account without
// issuing one.
func (r *AuthRepo) Signup(ctx context.Context, in model.SignupInput) (string, error) {
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	roleID := in.RoleID
	if roleID < 1 {
		roleID = model.RoleClient
	}
	raw, err := r.client.Post(ctx, "/auth/signup", map[string]any{
		"name":      name,
		"last_name": strings.TrimSpace(in.LastName),
		"email":     email,
		"password":  in.Password,
		"role_id":   roleID,
		"state":     in.State,
	})
	if err != nil {
		if isDuplicateSignup(err) {
			return "", fmt.Errorf("%w: %v", repository.ErrEmailTaken, err)
		}
		return "", err
	}
	return extractToken(raw), nil
}

func (r *AuthRepo) Me(ctx context.Context, token string) (*model.User, error) {
	raw, err := r.client.Get(baas.WithToken(ctx, token), "/auth/me")
	if err != nil {
		return nil, err
	}
	rec, ok := normalize.Object(raw)
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := mapUser(rec)
	return &u, nil
}

func extractToken(raw []byte) string {
	v, err := normalize.Decode(raw)
	if err != nil {
		return ""
	}
	for _, p := range tokenPaths {
		if t, ok := normalize.Lookup(v, p...); ok {
			if s := normalize.ToString(t); s != "" {
				return s
			}
		}
	}
	return ""
}

func isDuplicateSignup(err error) bool {
	e, ok := baas.AsAPIError(err)
	if !ok {
		return false
	}
	switch e.Status {
	case http.StatusForbidden:
		return e.MessageContains("already in use") || e.Code == baas.CodeAccessDenied
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return true
	}
	return e.MessageContains("duplicate")
}
