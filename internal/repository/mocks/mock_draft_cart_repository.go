package mocks

import (
	"context"

	"ambientefest/internal/model"
	"ambientefest/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockDraftCartRepository struct {
	mock.Mock
}

var _ repository.DraftCartRepository = (*MockDraftCartRepository)(nil)

func (m *MockDraftCartRepository) Load(ctx context.Context, userID int64) (*model.DraftCart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DraftCart), args.Error(1)
}

// Update hands the cart registered with Return(cart, nil) to fn, so tests
// observe the same mutation the real store would persist.
func (m *MockDraftCartRepository) Update(ctx context.Context, userID int64, fn func(*model.DraftCart) error) (*model.DraftCart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	cart := args.Get(0).(*model.DraftCart)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	cart.UserID = userID
	return cart, nil
}

func (m *MockDraftCartRepository) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
