package service

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"ambientefest/internal/model"
	"ambientefest/internal/repository"
	"ambientefest/internal/storage"
)

// Orderings accepted by ServiceFilter.Order.
const (
	OrderRatingDesc = "rating_desc"
	OrderPriceAsc   = "price_asc"
	OrderPriceDesc  = "price_desc"
)

// AllCategories disables the category filter.
const AllCategories = "Todos"

const defaultFeatured = 4

// ServiceFilter narrows the catalogue. Nil bounds are not applied.
type ServiceFilter struct {
	// Category is a category id or name.
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Order     string
	Limit     int
}

// CatalogService exposes the service catalogue.
type CatalogService interface {
	ListServices(ctx context.Context, f ServiceFilter) ([]model.Service, error)
	// Featured returns the first n services; n <= 0 means 4.
	Featured(ctx context.Context, n int) ([]model.Service, error)
	GetService(ctx context.Context, id int64) (*model.Service, error)
	Categories(ctx context.Context) ([]model.ServiceCategory, error)

	// CreateService uploads images first and stores them in the new record.
	CreateService(ctx context.Context, in model.ServiceInput, images []storage.Upload) (*model.Service, error)
	UpdateService(ctx context.Context, id int64, in model.ServiceInput, images []storage.Upload) (*model.Service, error)
	DeleteService(ctx context.Context, id int64) error
}

type catalogService struct {
	services   repository.ServiceRepository
	categories repository.CategoryRepository
	images     ImageService
	listTTL    time.Duration
}

// NewCatalogService constructs a CatalogService. listTTL bounds how stale a
// cached catalogue may be.
func NewCatalogService(services repository.ServiceRepository, categories repository.CategoryRepository, images ImageService, listTTL time.Duration) CatalogService {
	return &catalogService{services: services, categories: categories, images: images, listTTL: listTTL}
}

func (s *catalogService) ListServices(ctx context.Context, f ServiceFilter) ([]model.Service, error) {
	all, err := s.services.List(ctx, s.listTTL)
	if err != nil {
		return nil, err
	}

	categoryID, filterCategory := s.resolveCategory(ctx, f.Category)

	out := make([]model.Service, 0, len(all))
	for _, svc := range all {
		if filterCategory && svc.CategoryID != categoryID {
			continue
		}
		if f.MinPrice != nil && svc.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && svc.Price > *f.MaxPrice {
			continue
		}
		if f.MinRating != nil && svc.Rating < *f.MinRating {
			continue
		}
		out = append(out, svc)
	}

	switch f.Order {
	case OrderRatingDesc:
		slices.SortStableFunc(out, func(a, b model.Service) int { return cmp.Compare(b.Rating, a.Rating) })
	case OrderPriceAsc:
		slices.SortStableFunc(out, func(a, b model.Service) int { return cmp.Compare(a.Price, b.Price) })
	case OrderPriceDesc:
		slices.SortStableFunc(out, func(a, b model.Service) int { return cmp.Compare(b.Price, a.Price) })
	}

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// resolveCategory returns the category id to filter by. An unknown name
// matches nothing.
func (s *catalogService) resolveCategory(ctx context.Context, category string) (int64, bool) {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, AllCategories) {
		return 0, false
	}
	if id, err := strconv.ParseInt(category, 10, 64); err == nil {
		return id, true
	}
	cats, _ := s.categories.ServiceCategories(ctx)
	for _, c := range cats {
		if strings.EqualFold(c.Name, category) {
			return c.ID, true
		}
	}
	return -1, true
}

func (s *catalogService) Featured(ctx context.Context, n int) ([]model.Service, error) {
	if n <= 0 {
		n = defaultFeatured
	}
	return s.ListServices(ctx, ServiceFilter{Limit: n})
}

func (s *catalogService) GetService(ctx context.Context, id int64) (*model.Service, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	svc, err := s.services.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return svc, nil
}

func (s *catalogService) Categories(ctx context.Context) ([]model.ServiceCategory, error) {
	return s.categories.ServiceCategories(ctx)
}

func (s *catalogService) CreateService(ctx context.Context, in model.ServiceInput, images []storage.Upload) (*model.Service, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, invalid("nombre is required")
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, invalid("precio must not be negative")
	}
	if err := s.attachImages(ctx, &in, images); err != nil {
		return nil, err
	}
	return s.services.Create(ctx, in)
}

func (s *catalogService) UpdateService(ctx context.Context, id int64, in model.ServiceInput, images []storage.Upload) (*model.Service, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, invalid("nombre must not be empty")
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, invalid("precio must not be negative")
	}
	if err := s.attachImages(ctx, &in, images); err != nil {
		return nil, err
	}
	svc, err := s.services.Update(ctx, id, in)
	if err != nil {
		return nil, translate(err)
	}
	return svc, nil
}

func (s *catalogService) DeleteService(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrIDRequired
	}
	return translate(s.services.Delete(ctx, id))
}

func (s *catalogService) attachImages(ctx context.Context, in *model.ServiceInput, images []storage.Upload) error {
	if len(images) == 0 {
		return nil
	}
	uploaded, err := s.images.Upload(ctx, images)
	if err != nil {
		return err
	}
	in.Images = uploaded
	return nil
}
