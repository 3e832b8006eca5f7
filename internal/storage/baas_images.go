package storage

import (
	"context"
	"fmt"
	"net/http"

	"ambientefest/internal/baas"
	"ambientefest/internal/model"
	"ambientefest/internal/normalize"
)

const uploadPath = "/upload/image"

// BaaSImageStore posts images to the BaaS file vault in one multipart request.
type BaaSImageStore struct {
	client   *baas.Client
	field    string
	fileBase string
}

func NewBaaSImageStore(c *baas.Client, field, fileBase string) *BaaSImageStore {
	if field == "" {
		field = "content[]"
	}
	return &BaaSImageStore{client: c, field: field, fileBase: fileBase}
}

var _ ImageStore = (*BaaSImageStore)(nil)

func (s *BaaSImageStore) Save(ctx context.Context, files []Upload) ([]model.UploadedImage, error) {
	parts := make([]baas.File, 0, len(files))
	for _, f := range files {
		parts = append(parts, baas.File{Name: f.Name, ContentType: f.ContentType, Reader: f.Reader})
	}
	raw, err := s.client.Upload(ctx, uploadPath, s.field, parts)
	if err != nil {
		switch {
		case baas.IsStatus(err, http.StatusRequestEntityTooLarge):
			return nil, fmt.Errorf("%w: %v", ErrImageTooLarge, err)
		case baas.IsStatus(err, http.StatusBadRequest):
			return nil, fmt.Errorf("%w: check the %q upload field: %v", ErrImageRejected, s.field, err)
		}
		return nil, err
	}

	images := parseUploadResponse(raw, s.fileBase)
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	return images, nil
}

// parseUploadResponse accepts a bare array, {files|data|result: [...]} or a
// single object. Entries without a path are skipped.
func parseUploadResponse(raw []byte, fileBase string) []model.UploadedImage {
	v, err := normalize.Decode(raw)
	if err != nil {
		return nil
	}
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case map[string]any:
		rec := normalize.Record(t)
		for _, k := range []string{"files", "data", "result"} {
			if arr, ok := rec[k].([]any); ok {
				items = arr
				break
			}
		}
		if items == nil {
			items = []any{t}
		}
	}

	out := make([]model.UploadedImage, 0, len(items))
	for _, it := range items {
		rec, ok := normalize.AsRecord(it)
		if !ok {
			continue
		}
		p := rec.Str("path", "url", "file_path", "src")
		if p == "" {
			continue
		}
		name := rec.Str("name")
		mime := rec.Str("mime", "type")
		if mime == "" {
			mime = normalize.GuessImageMime(name)
		}
		out = append(out, model.UploadedImage{
			Path: p,
			URL:  normalize.AbsoluteURL(p, fileBase),
			Name: name,
			Mime: mime,
			Size: rec.Int("size"),
			Raw:  map[string]any(rec),
		})
	}
	return out
}
