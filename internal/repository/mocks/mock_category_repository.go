package mocks

import (
	"context"

	"ambientefest/internal/model"
	"ambientefest/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockCategoryRepository struct {
	mock.Mock
}

var _ repository.CategoryRepository = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) ServiceCategories(ctx context.Context) ([]model.ServiceCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ServiceCategory), args.Error(1)
}

func (m *MockCategoryRepository) BlogCategories(ctx context.Context) ([]model.BlogCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BlogCategory), args.Error(1)
}
