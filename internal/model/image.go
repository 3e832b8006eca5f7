package model

// UploadedImage describes a stored image. Raw keeps the object returned by
// the BaaS so it can be echoed back verbatim into image fields.
type UploadedImage struct {
	Path string `json:"path"`
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
	Mime string `json:"mime,omitempty"`
	Size int64  `json:"size,omitempty"`

	Raw map[string]any `json:"-"`
}

// Payload returns the value to store in a record's image field.
func (i UploadedImage) Payload() map[string]any {
	if i.Raw != nil {
		return i.Raw
	}
	return map[string]any{
		"path": i.Path,
		"url":  i.URL,
		"name": i.Name,
		"mime": i.Mime,
		"size": i.Size,
	}
}
