package xano

import (
	"context"

	"ambientefest/internal/baas"
	"ambientefest/internal/model"
	"ambientefest/internal/normalize"
	"ambientefest/internal/repository"
)

// ContactRepo implements repository.ContactRepository over /contact.
type ContactRepo struct {
	client *baas.Client
}

func NewContactRepo(c *baas.Client) *ContactRepo {
	return &ContactRepo{client: c}
}

var _ repository.ContactRepository = (*ContactRepo)(nil)

func (r *ContactRepo) List(ctx context.Context) ([]model.ContactMessage, error) {
	raw, err := r.client.Get(ctx, pathContacts)
	if err != nil {
		return nil, err
	}
	return list(raw, mapContact), nil
}

func (r *ContactRepo) Get(ctx context.Context, id int64) (*model.ContactMessage, error) {
	raw, err := r.client.Get(ctx, itemPath(pathContacts, id))
	if err != nil {
		return nil, notFound(err)
	}
	rec, ok := normalize.Object(raw)
	if !ok {
		return nil, repository.ErrNotFound
	}
	m := mapContact(rec)
	return &m, nil
}

func (r *ContactRepo) Create(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error) {
	raw, err := r.client.Post(ctx, pathContacts, in)
	if err != nil {
		return nil, err
	}
	return r.written(ctx, raw, 0, in), nil
}

func (r *ContactRepo) Replace(ctx context.Context, id int64, in model.ContactInput) (*model.ContactMessage, error) {
	raw, err := r.client.Put(ctx, itemPath(pathContacts, id), in)
	if err != nil {
		return nil, notFound(err)
	}
	return r.written(ctx, raw, id, in), nil
}

func (r *ContactRepo) Patch(ctx context.Context, id int64, in model.ContactPatch) (*model.ContactMessage, error) {
	raw, err := r.client.Patch(ctx, itemPath(pathContacts, id), in)
	if err != nil {
		return nil, notFound(err)
	}
	r.client.Invalidate(ctx, pathContacts)
	m := mapContact(object(raw))
	if m.ID == 0 {
		m.ID = id
	}
	return &m, nil
}

func (r *ContactRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.client.Delete(ctx, itemPath(pathContacts, id)); err != nil {
		return notFound(err)
	}
	r.client.Invalidate(ctx, pathContacts)
	return nil
}

// written maps a write answer, filling gaps from the submitted input.
func (r *ContactRepo) written(ctx context.Context, raw []byte, id int64, in model.ContactInput) *model.ContactMessage {
	r.client.Invalidate(ctx, pathContacts)
	m := mapContact(object(raw))
	if m.ID == 0 {
		m.ID = id
	}
	if m.Name == "" && m.Email == "" && m.Message == "" {
		m.Name, m.Email, m.Message = in.Name, in.Email, in.Message
	}
	return &m
}

func mapContact(rec normalize.Record) model.ContactMessage {
	return model.ContactMessage{
		ID:        rec.Int("id"),
		Name:      rec.Str("name", "nombre"),
		Email:     rec.Str("email", "correo"),
		Message:   rec.Str("message", "mensaje"),
		CreatedAt: rec.Str("created_at", "creado_en"),
	}
}
