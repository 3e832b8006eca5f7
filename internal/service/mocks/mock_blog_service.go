package mocks

import (
	"context"

	"ambientefest/internal/model"
	"ambientefest/internal/service"
	"ambientefest/internal/session"
	"ambientefest/internal/storage"
	"github.com/stretchr/testify/mock"
)

type MockBlogService struct {
	mock.Mock
}

var _ service.BlogService = (*MockBlogService)(nil)

func (m *MockBlogService) List(ctx context.Context, includeAll bool) ([]model.Blog, error) {
	args := m.Called(ctx, includeAll)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Blog), args.Error(1)
}

func (m *MockBlogService) Get(ctx context.Context, id string) (*model.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Blog), args.Error(1)
}

func (m *MockBlogService) Create(ctx context.Context, authorID int64, in model.BlogInput, images []storage.Upload) (*model.Blog, error) {
	args := m.Called(ctx, authorID, in, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Blog), args.Error(1)
}

func (m *MockBlogService) Update(ctx context.Context, id int64, in model.BlogInput, images []storage.Upload) (*model.Blog, error) {
	args := m.Called(ctx, id, in, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Blog), args.Error(1)
}

func (m *MockBlogService) UpdateStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBlogService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlogService) Categories(ctx context.Context) ([]model.BlogCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BlogCategory), args.Error(1)
}

func (m *MockBlogService) Comments(ctx context.Context, blogID int64) ([]model.BlogComment, error) {
	args := m.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BlogComment), args.Error(1)
}

func (m *MockBlogService) AddComment(ctx context.Context, sess *session.Session, blogID int64, content string) (*model.BlogComment, error) {
	args := m.Called(ctx, sess, blogID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogComment), args.Error(1)
}
