package xano

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"

	"ambientefest/internal/baas"
	"ambientefest/internal/model"
	"ambientefest/internal/normalize"
	"ambientefest/internal/repository"
)

var blogImageKeys = []string{"imagen", "imagenes", "images", "image", "imagen_url", "image_url"}

// blogListFallbacks are retried as the imagen query value when the BaaS
// rejects the default list request.
var blogListFallbacks = []string{"[]", "null", "0", ""}

// BlogRepo implements repository.BlogRepository over /blog.
type BlogRepo struct {
	client   *baas.Client
	fileBase string
}

func NewBlogRepo(c *baas.Client, fileBase string) *BlogRepo {
	return &BlogRepo{client: c, fileBase: fileBase}
}

var _ repository.BlogRepository = (*BlogRepo)(nil)

// List asks for posts with an empty imagen filter. Some BaaS function stacks
// declare imagen as a required input, so rejected requests are retried with
// other spellings of "empty" and a total failure yields an empty list.
func (r *BlogRepo) List(ctx context.Context) ([]model.Blog, error) {
	raw, err := r.client.CachedGet(ctx, pathBlogs+"?imagen=%5B%5D", blogsTTL)
	if err == nil {
		return list(raw, r.mapBlog), nil
	}
	if !isMissingParam(err) {
		return nil, err
	}
	for _, fb := range blogListFallbacks {
		params := url.Values{}
		params.Set("imagen", fb)
		raw, err := r.client.Get(ctx, queryPath(pathBlogs, params))
		if err == nil {
			return list(raw, r.mapBlog), nil
		}
	}
	return []model.Blog{}, nil
}

func (r *BlogRepo) Get(ctx context.Context, id int64) (*model.Blog, error) {
	raw, err := r.client.Get(ctx, itemPath(pathBlogs, id))
	if err != nil {
		return nil, notFound(err)
	}
	rec, ok := normalize.Object(raw)
	if !ok {
		return nil, repository.ErrNotFound
	}
	b := r.mapBlog(rec)
	return &b, nil
}

func (r *BlogRepo) Create(ctx context.Context, in model.BlogInput) (*model.Blog, error) {
	status := in.Status
	if status == "" {
		status = "Active"
	}
	p := map[string]any{
		"title":            in.Title,
		"subtitulos":       in.Subtitles,
		"content":          in.Content,
		"category":         in.Category,
		"imagen":           blogImagePayload(in),
		"publication_date": nowISO(),
		"status":           status,
		"user_id":          in.AuthorID,
	}
	if in.CategoryID > 0 {
		p["blog_category_id"] = in.CategoryID
	}

	raw, err := r.client.Post(ctx, pathBlogs, p)
	if err != nil {
		return nil, err
	}
	r.client.Invalidate(ctx, pathBlogs)

	b := r.mapBlog(object(raw))
	if b.ID == 0 {
		b.ID = createdID(raw)
	}
	if b.Title == "" {
		b.Title, b.Content, b.Category, b.Status = in.Title, in.Content, in.Category, status
	}
	return &b, nil
}

// Update patches the fields set in in.
func (r *BlogRepo) Update(ctx context.Context, id int64, in model.BlogInput) (*model.Blog, error) {
	p := map[string]any{}
	if in.Title != "" {
		p["title"] = in.Title
	}
	if in.Subtitles != "" {
		p["subtitulos"] = in.Subtitles
	}
	if in.Content != "" {
		p["content"] = in.Content
	}
	if in.Category != "" {
		p["category"] = in.Category
	}
	if in.CategoryID > 0 {
		p["blog_category_id"] = in.CategoryID
	}
	if in.Status != "" {
		p["status"] = in.Status
	}
	if in.Image != nil || in.ImageURL != "" {
		p["imagen"] = blogImagePayload(in)
	}

	raw, err := r.client.Patch(ctx, itemPath(pathBlogs, id), p)
	if err != nil {
		return nil, notFound(err)
	}
	r.client.Invalidate(ctx, pathBlogs)
	b := r.mapBlog(object(raw))
	if b.ID == 0 {
		b.ID = id
	}
	return &b, nil
}

func (r *BlogRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	if _, err := r.client.Put(ctx, itemPath(pathBlogs, id)+"/estado", map[string]string{"estado": status}); err != nil {
		return notFound(err)
	}
	r.client.Invalidate(ctx, pathBlogs)
	return nil
}

func (r *BlogRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.client.Delete(ctx, itemPath(pathBlogs, id)); err != nil {
		return notFound(err)
	}
	r.client.Invalidate(ctx, pathBlogs)
	return nil
}

func (r *BlogRepo) mapBlog(rec normalize.Record) model.Blog {
	var rawImg any
	if v, ok := rec.Value(blogImageKeys...); ok {
		rawImg = v
	}
	images := normalize.ImageURLs(rawImg, r.fileBase)
	imageURL := rec.Str("imagen_url", "image_url")
	if imageURL == "" && len(images) > 0 {
		imageURL = images[0]
	}
	authorID := rec.Int("user_id", "autor_id")
	author := ""
	if authorID > 0 {
		author = fmt.Sprintf("Usuario %d", authorID)
	}
	return model.Blog{
		ID:          rec.Int("id", "blog_id", "blogId", "ID"),
		Title:       rec.Str("title", "titulo"),
		Subtitles:   rec.Str("subtitulos", "subtitle"),
		Content:     rec.Str("content", "contenido"),
		Category:    rec.Str("category", "categoria"),
		CategoryID:  rec.Int("blog_category_id", "blogCategoryId", "category_id"),
		ImageURL:    imageURL,
		Images:      images,
		PublishedAt: rec.Str("publication_date", "fecha_publicacion"),
		Status:      rec.Str("status", "estado"),
		AuthorID:    authorID,
		Author:      author,
	}
}

// blogImagePayload renders the image as the [{url, size, mime, name}] list
// the blog table expects; no image yields an empty list.
func blogImagePayload(in model.BlogInput) []map[string]any {
	out := make([]map[string]any, 0, 1)
	switch {
	case in.Image != nil:
		img := *in.Image
		u := img.URL
		if u == "" {
			u = img.Path
		}
		out = append(out, imageEntry(u, img.Name, img.Mime, img.Size))
	case in.ImageURL != "":
		out = append(out, imageEntry(in.ImageURL, "", "", 0))
	}
	return out
}

func imageEntry(u, name, mime string, size int64) map[string]any {
	clean, _, _ := strings.Cut(u, "?")
	if name == "" {
		name = path.Base(clean)
		if name == "." || name == "/" {
			name = "file"
		}
	}
	if mime == "" {
		mime = normalize.GuessImageMime(name)
	}
	return map[string]any{"url": u, "size": size, "mime": mime, "name": name}
}

// createdIDPaths lists where a create answer may carry the new id.
var createdIDPaths = [][]string{
	{"0", "id"}, {"id"}, {"data", "id"}, {"data", "0", "id"},
	{"blog", "id"}, {"blog_id"}, {"result", "id"},
}

func createdID(raw json.RawMessage) int64 {
	v, err := normalize.Decode(raw)
	if err != nil {
		return 0
	}
	for _, p := range createdIDPaths {
		if x, ok := normalize.Lookup(v, p...); ok {
			if n, ok := normalize.ToInt(x); ok && n > 0 {
				return n
			}
		}
	}
	return 0
}

func isMissingParam(err error) bool {
	e, ok := baas.AsAPIError(err)
	if !ok {
		return false
	}
	return e.Code == baas.CodeInputError || e.MessageContains("missing param") || e.Status == 400
}

// CommentRepo implements repository.CommentRepository over /blog_comment.
type CommentRepo struct {
	client *baas.Client
}

func NewCommentRepo(c *baas.Client) *CommentRepo {
	return &CommentRepo{client: c}
}

var _ repository.CommentRepository = (*CommentRepo)(nil)

func (r *CommentRepo) ListByBlog(ctx context.Context, blogID int64) ([]model.BlogComment, error) {
	raw, err := r.client.Get(ctx, fmt.Sprintf("%s?blog_id=%d", pathBlogComments, blogID))
	if err != nil {
		if baas.IsNotFound(err) {
			return []model.BlogComment{}, nil
		}
		return nil, err
	}
	return list(raw, mapComment), nil
}

func (r *CommentRepo) Create(ctx context.Context, c model.BlogComment) (*model.BlogComment, error) {
	if c.Date == "" {
		c.Date = nowISO()
	}
	raw, err := r.client.Post(ctx, pathBlogComments, map[string]any{
		"content": c.Content,
		"blog_id": c.BlogID,
		"user_id": c.UserID,
		"date":    c.Date,
	})
	if err != nil {
		return nil, err
	}
	r.client.Invalidate(ctx, pathBlogComments)
	out := mapComment(object(raw))
	if out.ID == 0 {
		return &c, nil
	}
	return &out, nil
}

func mapComment(rec normalize.Record) model.BlogComment {
	return model.BlogComment{
		ID:      rec.Int("id"),
		BlogID:  rec.Int("blog_id", "blogId"),
		UserID:  rec.Int("user_id", "userId"),
		Content: rec.Str("content", "contenido", "comment"),
		Date:    rec.Str("date", "created_at", "fecha"),
	}
}
