package mocks

import (
	"context"

	"ambientefest/internal/model"
	"ambientefest/internal/service"
	"ambientefest/internal/session"
	"github.com/stretchr/testify/mock"
)

type MockScheduleService struct {
	mock.Mock
}

var _ service.ScheduleService = (*MockScheduleService)(nil)

func (m *MockScheduleService) AvailableSlots(ctx context.Context, serviceID int64) ([]model.TimeSlot, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TimeSlot), args.Error(1)
}

func (m *MockScheduleService) Reserve(ctx context.Context, sess *session.Session, serviceID, slotID int64, notes string) (*model.Reservation, error) {
	args := m.Called(ctx, sess, serviceID, slotID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockScheduleService) ReserveToCart(ctx context.Context, sess *session.Session, serviceID, slotID int64, notes string) (*service.ReserveToCartResult, error) {
	args := m.Called(ctx, sess, serviceID, slotID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReserveToCartResult), args.Error(1)
}

func (m *MockScheduleService) ListSlots(ctx context.Context, serviceID int64) ([]model.TimeSlot, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TimeSlot), args.Error(1)
}

func (m *MockScheduleService) CreateSlot(ctx context.Context, in model.TimeSlotInput) (*model.TimeSlot, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TimeSlot), args.Error(1)
}

func (m *MockScheduleService) UpdateSlot(ctx context.Context, id int64, in model.TimeSlotInput) (*model.TimeSlot, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TimeSlot), args.Error(1)
}

func (m *MockScheduleService) DeleteSlot(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
