package xano

import (
	"context"

	"ambientefest/internal/baas"
	"ambientefest/internal/model"
	"ambientefest/internal/normalize"
	"ambientefest/internal/repository"
)

// CategoryRepo implements repository.CategoryRepository. Both lists are
// cached and degrade to empty when the BaaS fails.
type CategoryRepo struct {
	client *baas.Client
}

func NewCategoryRepo(c *baas.Client) *CategoryRepo {
	return &CategoryRepo{client: c}
}

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

func (r *CategoryRepo) ServiceCategories(ctx context.Context) ([]model.ServiceCategory, error) {
	out := make([]model.ServiceCategory, 0)
	raw, err := r.client.CachedGet(ctx, pathServiceCategories, categoriesTTL)
	if err != nil {
		return out, nil
	}
	for i, rec := range normalize.Records(raw) {
		id := rec.Int("id", "service_category_id")
		if id == 0 {
			id = int64(i + 1)
		}
		out = append(out, model.ServiceCategory{ID: id, Name: rec.Str("nombre", "name", "category")})
	}
	return out, nil
}

// BlogCategories drops entries without a name.
func (r *CategoryRepo) BlogCategories(ctx context.Context) ([]model.BlogCategory, error) {
	out := make([]model.BlogCategory, 0)
	raw, err := r.client.CachedGet(ctx, pathBlogCategories, categoriesTTL)
	if err != nil {
		return out, nil
	}
	for i, rec := range normalize.Records(raw) {
		name := rec.Str("name", "nombre", "category")
		if name == "" {
			continue
		}
		id := rec.Int("id", "blog_category_id")
		if id == 0 {
			id = int64(i + 1)
		}
		out = append(out, model.BlogCategory{ID: id, Name: name})
	}
	return out, nil
}
