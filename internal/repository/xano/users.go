package xano

import (
	"context"
	"strings"

	"ambientefest/internal/baas"
	"ambientefest/internal/model"
	"ambientefest/internal/normalize"
	"ambientefest/internal/repository"
)

// UserRepo implements repository.UserRepository over /user.
type UserRepo struct {
	client *baas.Client
}

func NewUserRepo(c *baas.Client) *UserRepo {
	return &UserRepo{client: c}
}

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	raw, err := r.client.Get(ctx, pathUsers)
	if err != nil {
		return nil, err
	}
	return list(raw, mapUser), nil
}

func (r *UserRepo) Get(ctx context.Context, id int64) (*model.User, error) {
	raw, err := r.client.Get(ctx, itemPath(pathUsers, id))
	if err != nil {
		return nil, notFound(err)
	}
	rec, ok := normalize.Object(raw)
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := mapUser(rec)
	return &u, nil
}

// FindByEmail scans the user list; the BaaS exposes no lookup by email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepo) Create(ctx context.Context, in model.UserInput) (*model.User, error) {
	raw, err := r.client.Post(ctx, pathUsers, userCreatePayload(in))
	if err != nil {
		return nil, err
	}
	r.client.Invalidate(ctx, pathUsers)
	u := mapUser(object(raw))
	return &u, nil
}

// Update sends only the fields set in in.
func (r *UserRepo) Update(ctx context.Context, id int64, in model.UserInput) (*model.User, error) {
	raw, err := r.client.Patch(ctx, itemPath(pathUsers, id), userPatchPayload(in))
	if err != nil {
		return nil, notFound(err)
	}
	r.client.Invalidate(ctx, pathUsers)
	u := mapUser(object(raw))
	if u.ID == 0 {
		u.ID = id
	}
	return &u, nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.client.Delete(ctx, itemPath(pathUsers, id)); err != nil {
		return notFound(err)
	}
	r.client.Invalidate(ctx, pathUsers)
	return nil
}

func mapUser(rec normalize.Record) model.User {
	roleID := rec.Int("role_id", "rol_id")
	if roleID == 0 {
		roleID = model.RoleClient
	}
	return model.User{
		ID:          rec.Int("id"),
		Name:        rec.Str("name", "nombre"),
		LastName:    rec.Str("last_name", "apellidos"),
		Email:       rec.Str("email"),
		RoleID:      roleID,
		Role:        model.RoleName(roleID),
		State:       normalize.UserState(rec),
		CreatedAt:   rec.Str("created_at", "creado_en"),
		HasPassword: rec.Str("password_hash") != "",
	}
}

func userCreatePayload(in model.UserInput) map[string]any {
	roleID := in.ResolvedRoleID()
	if roleID != model.RoleAdmin {
		roleID = model.RoleClient
	}
	p := map[string]any{
		"name":      strings.TrimSpace(in.Name),
		"last_name": strings.TrimSpace(in.LastName),
		"email":     strings.TrimSpace(in.Email),
		"password":  in.Password,
		"role_id":   roleID,
	}
	if in.State != nil {
		p["state"] = *in.State
	}
	return p
}

func userPatchPayload(in model.UserInput) map[string]any {
	p := map[string]any{}
	if s := strings.TrimSpace(in.Name); s != "" {
		p["name"] = s
	}
	if s := strings.TrimSpace(in.LastName); s != "" {
		p["last_name"] = s
	}
	if s := strings.TrimSpace(in.Email); s != "" {
		p["email"] = s
	}
	if in.Password != "" {
		p["password"] = in.Password
	}
	if id := in.ResolvedRoleID(); id != 0 {
		if id != model.RoleAdmin {
			id = model.RoleClient
		}
		p["role_id"] = id
	}
	if in.State != nil {
		p["state"] = *in.State
	}
	return p
}

// RoleRepo implements repository.RoleRepository over /role.
type RoleRepo struct {
	client *baas.Client
}

func NewRoleRepo(c *baas.Client) *RoleRepo {
	return &RoleRepo{client: c}
}

var _ repository.RoleRepository = (*RoleRepo)(nil)

// List falls back to the built-in roles when the BaaS has none.
func (r *RoleRepo) List(ctx context.Context) ([]model.Role, error) {
	raw, err := r.client.CachedGet(ctx, pathRoles, categoriesTTL)
	if err != nil {
		return model.DefaultRoles(), nil
	}
	roles := make([]model.Role, 0)
	for _, rec := range normalize.Records(raw) {
		name := rec.Str("nombre", "name", "role")
		if name == "" {
			continue
		}
		roles = append(roles, model.Role{ID: rec.Int("id"), Name: name})
	}
	if len(roles) == 0 {
		return model.DefaultRoles(), nil
	}
	return roles, nil
}
