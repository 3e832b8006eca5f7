package mocks

import (
	"context"

	"ambientefest/internal/model"
	"ambientefest/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockCartService struct {
	mock.Mock
}

var _ service.CartService = (*MockCartService)(nil)

func (m *MockCartService) View(ctx context.Context, userID int64) (*model.CartView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *MockCartService) Add(ctx context.Context, userID, serviceID int64) (*model.CartView, error) {
	args := m.Called(ctx, userID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *MockCartService) Remove(ctx context.Context, userID, serviceID int64) (*model.CartView, error) {
	args := m.Called(ctx, userID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCartService) Checkout(ctx context.Context, userID int64, paymentMethod string) (*service.CheckoutResult, error) {
	args := m.Called(ctx, userID, paymentMethod)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CheckoutResult), args.Error(1)
}

func (m *MockCartService) AddReservation(ctx context.Context, userID int64, svc model.Service, slot model.TimeSlot) (*model.CartDetail, error) {
	args := m.Called(ctx, userID, svc, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartDetail), args.Error(1)
}
