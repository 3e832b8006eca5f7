package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"ambientefest/internal/model"
	"ambientefest/internal/normalize"
)

const presignExpiry = 7 * 24 * time.Hour

// ObjectImageStore keeps images in an object store under images/<uuid><ext>.
type ObjectImageStore struct {
	objects   ObjectStore
	publicURL string
	newKey    func(name string) string
}

// NewObjectImageStore serves images from publicURL when set, otherwise via
// presigned GET URLs valid for seven days.
func NewObjectImageStore(objects ObjectStore, publicURL string) *ObjectImageStore {
	return &ObjectImageStore{
		objects:   objects,
		publicURL: strings.TrimRight(publicURL, "/"),
		newKey: func(name string) string {
			return "images/" + uuid.NewString() + strings.ToLower(filepath.Ext(name))
		},
	}
}

var _ ImageStore = (*ObjectImageStore)(nil)

// Save stores every file or none: objects already written are removed when a
// later one fails.
func (s *ObjectImageStore) Save(ctx context.Context, files []Upload) ([]model.UploadedImage, error) {
	out := make([]model.UploadedImage, 0, len(files))
	written := make([]string, 0, len(files))
	rollback := func() {
		for _, k := range written {
			_ = s.objects.Delete(ctx, k)
		}
	}

	for _, f := range files {
		key := s.newKey(f.Name)
		ct := f.ContentType
		if ct == "" {
			ct = normalize.GuessImageMime(f.Name)
		}
		info, err := s.objects.Put(ctx, key, f.Reader, PutObjectOptions{
			Size:        f.Size,
			ContentType: ct,
			Metadata:    map[string]string{"original-name": f.Name},
		})
		if err != nil {
			rollback()
			return nil, fmt.Errorf("put %s: %w", f.Name, err)
		}
		written = append(written, key)

		u, err := s.url(ctx, key)
		if err != nil {
			rollback()
			return nil, fmt.Errorf("presign %s: %w", key, err)
		}
		out = append(out, model.UploadedImage{
			Path: "/" + key,
			URL:  u,
			Name: f.Name,
			Mime: ct,
			Size: info.Size,
		})
	}
	return out, nil
}

func (s *ObjectImageStore) url(ctx context.Context, key string) (string, error) {
	if s.publicURL != "" {
		return s.publicURL + "/" + key, nil
	}
	return s.objects.PresignGet(ctx, key, presignExpiry)
}
