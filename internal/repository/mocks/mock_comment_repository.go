package mocks

import (
	"context"

	"ambientefest/internal/model"
	"ambientefest/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockCommentRepository struct {
	mock.Mock
}

var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func (m *MockCommentRepository) ListByBlog(ctx context.Context, blogID int64) ([]model.BlogComment, error) {
	args := m.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BlogComment), args.Error(1)
}

func (m *MockCommentRepository) Create(ctx context.Context, c model.BlogComment) (*model.BlogComment, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogComment), args.Error(1)
}
