// Package storage contains the image stores. Uploaded images end up either
// in the BaaS file vault or in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"ambientefest/internal/model"
)

var (
	// ErrImageTooLarge is returned when the backend refuses the payload size.
	ErrImageTooLarge = errors.New("image too large")
	// ErrImageRejected is returned when the backend refuses the upload request.
	ErrImageRejected = errors.New("image rejected by storage backend")
	// ErrNoImages is returned when the backend answers without any usable image.
	ErrNoImages = errors.New("upload response carries no images")
)

// Upload is one image to store. Size is -1 when unknown.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// ImageStore persists images and reports where they can be fetched.
type ImageStore interface {
	Save(ctx context.Context, files []Upload) ([]model.UploadedImage, error)
}

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known, otherwise -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
}

// ObjectStore is an S3-compatible object storage client.
// Methods use context and streaming readers; no local disk is used.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
