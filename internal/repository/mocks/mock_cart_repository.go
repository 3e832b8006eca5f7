package mocks

import (
	"context"

	"ambientefest/internal/model"
	"ambientefest/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockCartRepository struct {
	mock.Mock
}

var _ repository.CartRepository = (*MockCartRepository)(nil)

func (m *MockCartRepository) FindActive(ctx context.Context, userID int64) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartRepository) Get(ctx context.Context, id int64) (*model.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartRepository) Create(ctx context.Context, userID int64) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartRepository) Clear(ctx context.Context, cartID, userID int64) error {
	args := m.Called(ctx, cartID, userID)
	return args.Error(0)
}

func (m *MockCartRepository) AddDetail(ctx context.Context, d model.CartDetail) (*model.CartDetail, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartDetail), args.Error(1)
}

func (m *MockCartRepository) Details(ctx context.Context, cartID int64) ([]model.CartDetail, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartDetail), args.Error(1)
}
