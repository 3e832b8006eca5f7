package model

import "strings"

// Blog is a published article.
type Blog struct {
	ID          int64    `json:"id"`
	Title       string   `json:"titulo"`
	Subtitles   string   `json:"subtitulos,omitempty"`
	Content     string   `json:"contenido"`
	Category    string   `json:"categoria,omitempty"`
	CategoryID  int64    `json:"blog_category_id,omitempty"`
	ImageURL    string   `json:"imagen_url,omitempty"`
	Images      []string `json:"imagenes"`
	PublishedAt string   `json:"fecha_publicacion,omitempty"`
	Status      string   `json:"estado"`
	AuthorID    int64    `json:"autor_id,omitempty"`
	Author      string   `json:"autor,omitempty"`
}

// IsActive reports whether the post is visible to the public.
func (b Blog) IsActive() bool {
	switch strings.ToLower(strings.TrimSpace(b.Status)) {
	case "active", "activo", "true":
		return true
	}
	return false
}

// BlogCategory groups posts.
type BlogCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

// BlogComment is a reader comment on a post.
type BlogComment struct {
	ID      int64  `json:"id"`
	BlogID  int64  `json:"blog_id"`
	UserID  int64  `json:"user_id"`
	Content string `json:"content"`
	Date    string `json:"date,omitempty"`
}
