package service

import (
	"context"
	"strconv"
	"strings"

	"ambientefest/internal/model"
	"ambientefest/internal/normalize"
	"ambientefest/internal/repository"
	"ambientefest/internal/session"
	"ambientefest/internal/storage"
)

// blogCategoryIDs resolves the well known category names.
var blogCategoryIDs = map[string]int64{
	"tendencia":    1,
	"tendencias":   1,
	"consejos":     2,
	"experiencias": 3,
}

const defaultBlogStatus = "Active"

// BlogService exposes posts and their comments.
type BlogService interface {
	// List hides inactive posts unless includeAll is set.
	List(ctx context.Context, includeAll bool) ([]model.Blog, error)
	Get(ctx context.Context, id string) (*model.Blog, error)
	Create(ctx context.Context, authorID int64, in model.BlogInput, images []storage.Upload) (*model.Blog, error)
	Update(ctx context.Context, id int64, in model.BlogInput, images []storage.Upload) (*model.Blog, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	Categories(ctx context.Context) ([]model.BlogCategory, error)

	Comments(ctx context.Context, blogID int64) ([]model.BlogComment, error)
	// AddComment is reserved to clients.
	AddComment(ctx context.Context, sess *session.Session, blogID int64, content string) (*model.BlogComment, error)
}

type blogService struct {
	blogs      repository.BlogRepository
	comments   repository.CommentRepository
	categories repository.CategoryRepository
	images     ImageService
}

func NewBlogService(blogs repository.BlogRepository, comments repository.CommentRepository, categories repository.CategoryRepository, images ImageService) BlogService {
	return &blogService{blogs: blogs, comments: comments, categories: categories, images: images}
}

func (s *blogService) List(ctx context.Context, includeAll bool) ([]model.Blog, error) {
	all, err := s.blogs.List(ctx)
	if err != nil {
		return nil, err
	}
	if includeAll {
		return all, nil
	}
	out := make([]model.Blog, 0, len(all))
	for _, b := range all {
		if b.IsActive() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *blogService) Get(ctx context.Context, id string) (*model.Blog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrIDRequired
	}
	if !normalize.IsNumericID(id) {
		return nil, ErrInvalidID
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return nil, ErrInvalidID
	}
	b, err := s.blogs.Get(ctx, n)
	if err != nil {
		return nil, translate(err)
	}
	return b, nil
}

func (s *blogService) Create(ctx context.Context, authorID int64, in model.BlogInput, images []storage.Upload) (*model.Blog, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if in.Title == "" || in.Content == "" {
		return nil, invalid("titulo and contenido are required")
	}
	if strings.TrimSpace(in.Status) == "" {
		in.Status = defaultBlogStatus
	}
	in.AuthorID = authorID
	in.CategoryID = s.categoryID(ctx, in)
	if err := s.attachImage(ctx, &in, images); err != nil {
		return nil, err
	}
	return s.blogs.Create(ctx, in)
}

func (s *blogService) Update(ctx context.Context, id int64, in model.BlogInput, images []storage.Upload) (*model.Blog, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if in.Category != "" || in.CategoryID > 0 {
		in.CategoryID = s.categoryID(ctx, in)
	}
	if err := s.attachImage(ctx, &in, images); err != nil {
		return nil, err
	}
	b, err := s.blogs.Update(ctx, id, in)
	if err != nil {
		return nil, translate(err)
	}
	return b, nil
}

func (s *blogService) UpdateStatus(ctx context.Context, id int64, status string) error {
	if id <= 0 {
		return ErrIDRequired
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return invalid("estado is required")
	}
	return translate(s.blogs.UpdateStatus(ctx, id, status))
}

func (s *blogService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrIDRequired
	}
	return translate(s.blogs.Delete(ctx, id))
}

func (s *blogService) Categories(ctx context.Context) ([]model.BlogCategory, error) {
	return s.categories.BlogCategories(ctx)
}

func (s *blogService) Comments(ctx context.Context, blogID int64) ([]model.BlogComment, error) {
	if blogID <= 0 {
		return nil, ErrIDRequired
	}
	return s.comments.ListByBlog(ctx, blogID)
}

func (s *blogService) AddComment(ctx context.Context, sess *session.Session, blogID int64, content string) (*model.BlogComment, error) {
	if sess.Role != model.RoleNameClient {
		return nil, ErrCommentForbidden
	}
	if blogID <= 0 {
		return nil, ErrIDRequired
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("content is required")
	}
	return s.comments.Create(ctx, model.BlogComment{
		BlogID:  blogID,
		UserID:  sess.UserID,
		Content: content,
	})
}

// categoryID prefers an explicit id, then the well known names, then the
// BaaS category list. Zero means no category.
func (s *blogService) categoryID(ctx context.Context, in model.BlogInput) int64 {
	if in.CategoryID > 0 {
		return in.CategoryID
	}
	name := strings.ToLower(strings.TrimSpace(in.Category))
	if name == "" {
		return 0
	}
	if id, ok := blogCategoryIDs[name]; ok {
		return id
	}
	if id, err := strconv.ParseInt(name, 10, 64); err == nil && id > 0 {
		return id
	}
	cats, _ := s.categories.BlogCategories(ctx)
	for _, c := range cats {
		if strings.EqualFold(c.Name, name) {
			return c.ID
		}
	}
	return 0
}

// attachImage uploads the first image only; posts carry a single picture.
func (s *blogService) attachImage(ctx context.Context, in *model.BlogInput, images []storage.Upload) error {
	if len(images) == 0 {
		return nil
	}
	uploaded, err := s.images.Upload(ctx, images[:1])
	if err != nil {
		return err
	}
	if len(uploaded) > 0 {
		in.Image = &uploaded[0]
	}
	return nil
}
