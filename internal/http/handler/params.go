package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"ambientefest/internal/http/middleware"
	"ambientefest/internal/service"
	"ambientefest/internal/session"
	"ambientefest/internal/storage"
)

var errNoSession = errors.New("no session on a protected route")

// paramID parses a positive numeric path parameter.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	return parseID(c.Params(name))
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.ErrInvalidID
	}
	return id, nil
}

// queryFloat returns nil for an absent parameter.
func queryFloat(c *fiber.Ctx, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func currentSession(c *fiber.Ctx) (*session.Session, error) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		return nil, errNoSession
	}
	return sess, nil
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm)
}

// formImages opens the files posted under any of fields. The returned
// closer must be called once the uploads are consumed.
func formImages(form *multipart.Form, fields ...string) ([]storage.Upload, func(), error) {
	var (
		uploads []storage.Upload
		opened  []io.Closer
	)
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	for _, field := range fields {
		for _, fh := range form.File[field] {
			f, err := fh.Open()
			if err != nil {
				closeAll()
				return nil, func() {}, err
			}
			opened = append(opened, f)
			uploads = append(uploads, storage.Upload{
				Name:        fh.Filename,
				ContentType: fh.Header.Get(fiber.HeaderContentType),
				Size:        fh.Size,
				Reader:      f,
			})
		}
	}
	return uploads, closeAll, nil
}

// formValue returns the first value of field, trimmed.
func formValue(form *multipart.Form, field string) (string, bool) {
	vals, ok := form.Value[field]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return strings.TrimSpace(vals[0]), true
}

func formString(form *multipart.Form, field string) *string {
	v, ok := formValue(form, field)
	if !ok {
		return nil
	}
	return &v
}

func formFloat(form *multipart.Form, field string) (*float64, error) {
	v, ok := formValue(form, field)
	if !ok || v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func formInt(form *multipart.Form, field string) (*int64, error) {
	v, ok := formValue(form, field)
	if !ok || v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
