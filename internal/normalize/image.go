package normalize

import (
	"mime"
	"path/filepath"
	"strings"
)

// ImageURLs collects the image URLs carried by an image field. The field may
// be a URL string, a JSON-encoded string, an object or an array of either.
// Relative paths are rooted at fileBase. Duplicates are dropped, order kept.
func ImageURLs(v any, fileBase string) []string {
	var raw []string
	collectImagePaths(v, &raw, 0)

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		u := AbsoluteURL(p, fileBase)
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

func collectImagePaths(v any, acc *[]string, depth int) {
	if depth > 3 {
		return
	}
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return
		}
		if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
			if parsed, err := Decode([]byte(s)); err == nil {
				collectImagePaths(parsed, acc, depth+1)
			}
			return
		}
		*acc = append(*acc, s)
	case []any:
		for _, it := range t {
			collectImagePaths(it, acc, depth+1)
		}
	case map[string]any:
		if p := ImagePath(Record(t)); p != "" {
			*acc = append(*acc, p)
		}
	}
}

var imagePathKeys = []string{"path", "url", "file_url", "file_path", "src", "public_url", "full_url"}

// ImagePath reads the location of a single image object.
func ImagePath(r Record) string {
	if p := r.Str(imagePathKeys...); p != "" {
		return p
	}
	if f := r.Sub("file"); f != nil {
		return f.Str(imagePathKeys...)
	}
	return ""
}

// AbsoluteURL roots "/path" at base and "//host/path" at https.
func AbsoluteURL(p, base string) string {
	p = strings.TrimSpace(p)
	switch {
	case p == "":
		return ""
	case strings.HasPrefix(p, "//"):
		return "https:" + p
	case strings.HasPrefix(p, "/"):
		return strings.TrimRight(base, "/") + p
	}
	return p
}

// GuessImageMime derives a content type from a file name, defaulting to JPEG.
func GuessImageMime(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	}
	if t := mime.TypeByExtension(ext); strings.HasPrefix(t, "image/") {
		return t
	}
	return "image/jpeg"
}
