package mocks

import (
	"context"

	"ambientefest/internal/model"
	"ambientefest/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockPaymentService struct {
	mock.Mock
}

var _ service.PaymentService = (*MockPaymentService)(nil)

func (m *MockPaymentService) List(ctx context.Context) ([]model.PaymentView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PaymentView), args.Error(1)
}

func (m *MockPaymentService) ListMine(ctx context.Context, userID int64) ([]model.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockPaymentService) UpdateStatus(ctx context.Context, id int64, status string) (*model.Payment, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}
