package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ambientefest/internal/model"
	"ambientefest/internal/normalize"
	"ambientefest/internal/storage"
)

// ImageService validates and stores uploaded images.
type ImageService interface {
	// Upload checks every file before storing any of them.
	Upload(ctx context.Context, files []storage.Upload) ([]model.UploadedImage, error)
}

type imageService struct {
	store    storage.ImageStore
	maxBytes int64
}

// NewImageService constructs an ImageService. maxBytes <= 0 means 10MB.
func NewImageService(store storage.ImageStore, maxBytes int64) ImageService {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &imageService{store: store, maxBytes: maxBytes}
}

func (s *imageService) Upload(ctx context.Context, files []storage.Upload) ([]model.UploadedImage, error) {
	if len(files) == 0 {
		return nil, ErrNoImages
	}
	checked := make([]storage.Upload, 0, len(files))
	for _, f := range files {
		if f.Reader == nil {
			return nil, ErrNoImages
		}
		ct := strings.ToLower(strings.TrimSpace(f.ContentType))
		if ct == "" {
			ct = normalize.GuessImageMime(f.Name)
		}
		if !strings.HasPrefix(ct, "image/") {
			return nil, fmt.Errorf("%w: %s", ErrInvalidImage, f.Name)
		}
		if f.Size > s.maxBytes {
			return nil, fmt.Errorf("%w: %s", ErrImageTooLarge, f.Name)
		}
		f.ContentType = ct
		checked = append(checked, f)
	}

	imgs, err := s.store.Save(ctx, checked)
	switch {
	case errors.Is(err, storage.ErrImageTooLarge):
		return nil, fmt.Errorf("%w: %w", ErrImageTooLarge, err)
	case errors.Is(err, storage.ErrImageRejected):
		return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	case err != nil:
		return nil, fmt.Errorf("store images: %w", err)
	}
	return imgs, nil
}
