package xano

import (
	"context"
	"time"

	"ambientefest/internal/baas"
	"ambientefest/internal/model"
	"ambientefest/internal/normalize"
	"ambientefest/internal/repository"
)

var (
	serviceImageKeys        = []string{"imagen", "image", "image_file", "imagen_data", "images"}
	serviceAvailabilityKeys = []string{"availability", "disponibilidad", "availability_text", "available", "disponible"}
)

// ServiceRepo implements repository.ServiceRepository over /service.
type ServiceRepo struct {
	client   *baas.Client
	fileBase string
}

func NewServiceRepo(c *baas.Client, fileBase string) *ServiceRepo {
	return &ServiceRepo{client: c, fileBase: fileBase}
}

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

// List reads through the response cache when ttl is positive.
func (r *ServiceRepo) List(ctx context.Context, ttl time.Duration) ([]model.Service, error) {
	raw, err := r.client.CachedGet(ctx, pathServices, ttl)
	if err != nil {
		return nil, err
	}
	return list(raw, r.mapService), nil
}

func (r *ServiceRepo) Get(ctx context.Context, id int64) (*model.Service, error) {
	raw, err := r.client.Get(ctx, itemPath(pathServices, id))
	if err != nil {
		return nil, notFound(err)
	}
	rec, ok := normalize.Object(raw)
	if !ok {
		return nil, repository.ErrNotFound
	}
	s := r.mapService(rec)
	return &s, nil
}

func (r *ServiceRepo) Create(ctx context.Context, in model.ServiceInput) (*model.Service, error) {
	raw, err := r.client.Post(ctx, pathServices, servicePayload(in))
	if err != nil {
		return nil, err
	}
	r.client.Invalidate(ctx, pathServices)
	s := r.mapService(object(raw))
	return &s, nil
}

func (r *ServiceRepo) Update(ctx context.Context, id int64, in model.ServiceInput) (*model.Service, error) {
	raw, err := r.client.Patch(ctx, itemPath(pathServices, id), servicePayload(in))
	if err != nil {
		return nil, notFound(err)
	}
	r.client.Invalidate(ctx, pathServices)
	s := r.mapService(object(raw))
	if s.ID == 0 {
		s.ID = id
	}
	return &s, nil
}

func (r *ServiceRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.client.Delete(ctx, itemPath(pathServices, id)); err != nil {
		return notFound(err)
	}
	r.client.Invalidate(ctx, pathServices)
	return nil
}

func (r *ServiceRepo) mapService(rec normalize.Record) model.Service {
	var imageField any
	if v, ok := rec.Value(serviceImageKeys...); ok {
		imageField = v
	}
	images := normalize.ImageURLs(imageField, r.fileBase)
	first := ""
	if len(images) > 0 {
		first = images[0]
	}

	var availability any
	if v, ok := rec.Value(serviceAvailabilityKeys...); ok {
		availability = v
	}
	label, available := normalize.Availability(availability)

	return model.Service{
		ID:           rec.Int("id", "service_id", "ID"),
		CreatedAt:    rec.Str("created_at", "creado_en", "createdAt"),
		Name:         rec.Str("name", "nombre", "title", "service_name"),
		Description:  rec.Str("description", "descripcion", "content"),
		Price:        rec.Float("price", "precio"),
		Provider:     rec.Str("provider", "proveedor", "user", "user_id"),
		Availability: label,
		Available:    available,
		Rating:       rec.Float("rating", "valoracion"),
		NumRatings:   rec.Int("num_ratings", "num_valoraciones", "numValoraciones"),
		State:        rec.Str("state", "estado"),
		UserID:       rec.Int("user_id", "userId", "provider_id"),
		CategoryID:   rec.Int("service_category_id", "category_id", "serviceCategoryId"),
		Image:        first,
		Images:       images,
	}
}

// servicePayload carries both English and Spanish keys so either naming of
// the BaaS table accepts it.
func servicePayload(in model.ServiceInput) map[string]any {
	p := map[string]any{}
	if in.Name != nil {
		p["name"] = *in.Name
		p["nombre"] = *in.Name
	}
	if in.Description != nil {
		p["description"] = *in.Description
		p["descripcion"] = *in.Description
	}
	if in.Price != nil {
		p["price"] = *in.Price
		p["precio"] = *in.Price
	}
	if in.Provider != nil {
		p["provider"] = *in.Provider
	}
	if in.Availability != nil {
		label, available := normalize.Availability(in.Availability)
		if label != "" {
			p["availability"] = label
		}
		if available != nil {
			p["available"] = *available
		}
	}
	if in.Rating != nil {
		p["rating"] = *in.Rating
	}
	if in.NumRatings != nil {
		p["num_ratings"] = *in.NumRatings
	}
	if in.UserID != nil {
		p["user_id"] = *in.UserID
	}
	if in.CategoryID != nil {
		p["service_category_id"] = *in.CategoryID
	}
	if len(in.Images) > 0 {
		imgs := make([]map[string]any, 0, len(in.Images))
		for _, img := range in.Images {
			imgs = append(imgs, img.Payload())
		}
		p["imagen"] = imgs
	}
	return p
}
