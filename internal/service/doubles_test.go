package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ambientefest/internal/model"
	"ambientefest/internal/storage"
)

// In-package doubles for the service interfaces other services depend on.
// The generated ones under mocks/ import this package and cannot be used here.

type mockCartService struct {
	mock.Mock
}

var _ CartService = (*mockCartService)(nil)

func (m *mockCartService) View(ctx context.Context, userID int64) (*model.CartView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *mockCartService) Add(ctx context.Context, userID, serviceID int64) (*model.CartView, error) {
	args := m.Called(ctx, userID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *mockCartService) Remove(ctx context.Context, userID, serviceID int64) (*model.CartView, error) {
	args := m.Called(ctx, userID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *mockCartService) Clear(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockCartService) Checkout(ctx context.Context, userID int64, paymentMethod string) (*CheckoutResult, error) {
	args := m.Called(ctx, userID, paymentMethod)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CheckoutResult), args.Error(1)
}

func (m *mockCartService) AddReservation(ctx context.Context, userID int64, svc model.Service, slot model.TimeSlot) (*model.CartDetail, error) {
	args := m.Called(ctx, userID, svc, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartDetail), args.Error(1)
}

type mockImageService struct {
	mock.Mock
}

var _ ImageService = (*mockImageService)(nil)

func (m *mockImageService) Upload(ctx context.Context, files []storage.Upload) ([]model.UploadedImage, error) {
	args := m.Called(ctx, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UploadedImage), args.Error(1)
}
