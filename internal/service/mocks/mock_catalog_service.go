package mocks

import (
	"context"

	"ambientefest/internal/model"
	"ambientefest/internal/service"
	"ambientefest/internal/storage"
	"github.com/stretchr/testify/mock"
)

type MockCatalogService struct {
	mock.Mock
}

var _ service.CatalogService = (*MockCatalogService)(nil)

func (m *MockCatalogService) ListServices(ctx context.Context, f service.ServiceFilter) ([]model.Service, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Service), args.Error(1)
}

func (m *MockCatalogService) Featured(ctx context.Context, n int) ([]model.Service, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Service), args.Error(1)
}

func (m *MockCatalogService) GetService(ctx context.Context, id int64) (*model.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *MockCatalogService) Categories(ctx context.Context) ([]model.ServiceCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ServiceCategory), args.Error(1)
}

func (m *MockCatalogService) CreateService(ctx context.Context, in model.ServiceInput, images []storage.Upload) (*model.Service, error) {
	args := m.Called(ctx, in, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *MockCatalogService) UpdateService(ctx context.Context, id int64, in model.ServiceInput, images []storage.Upload) (*model.Service, error) {
	args := m.Called(ctx, id, in, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Service), args.Error(1)
}

func (m *MockCatalogService) DeleteService(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
