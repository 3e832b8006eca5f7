package mocks

import (
	"context"

	"ambientefest/internal/model"
	"ambientefest/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockTimeSlotRepository struct {
	mock.Mock
}

var _ repository.TimeSlotRepository = (*MockTimeSlotRepository)(nil)

func (m *MockTimeSlotRepository) List(ctx context.Context, serviceID int64) ([]model.TimeSlot, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TimeSlot), args.Error(1)
}

func (m *MockTimeSlotRepository) Create(ctx context.Context, in model.TimeSlotInput) (*model.TimeSlot, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TimeSlot), args.Error(1)
}

func (m *MockTimeSlotRepository) Update(ctx context.Context, id int64, in model.TimeSlotInput) (*model.TimeSlot, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TimeSlot), args.Error(1)
}

func (m *MockTimeSlotRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
