package mocks

import (
	"context"

	"ambientefest/internal/model"
	"ambientefest/internal/service"
	"ambientefest/internal/storage"
	"github.com/stretchr/testify/mock"
)

type MockImageService struct {
	mock.Mock
}

var _ service.ImageService = (*MockImageService)(nil)

func (m *MockImageService) Upload(ctx context.Context, files []storage.Upload) ([]model.UploadedImage, error) {
	args := m.Called(ctx, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UploadedImage), args.Error(1)
}
