package model

// UserInput creates or updates an account. Empty strings are left untouched
// on update.
type UserInput struct {
	Name     string `json:"nombre"`
	LastName string `json:"apellidos"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"rol,omitempty"`
	RoleID   int64  `json:"role_id,omitempty"`
	State    *bool  `json:"state,omitempty"`
}

// ResolvedRoleID prefers an explicit id over the role name.
func (in UserInput) ResolvedRoleID() int64 {
	if in.RoleID != 0 {
		return in.RoleID
	}
	if in.Role != "" {
		return RoleID(in.Role)
	}
	return 0
}

// SignupInput is sent to the BaaS signup endpoint.
type SignupInput struct {
	Name     string
	LastName string
	Email    string
	Password string
	RoleID   int64
	State    bool
}

// ServiceInput creates or patches a service. Nil fields are not sent.
// Availability accepts a bool, a number or a label.
type ServiceInput struct {
	Name         *string  `json:"nombre,omitempty"`
	Description  *string  `json:"descripcion,omitempty"`
	Price        *float64 `json:"precio,omitempty"`
	Provider     *string  `json:"proveedor,omitempty"`
	Availability any      `json:"disponibilidad,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	NumRatings   *int64   `json:"num_ratings,omitempty"`
	UserID       *int64   `json:"user_id,omitempty"`
	CategoryID   *int64   `json:"service_category_id,omitempty"`

	Images []UploadedImage `json:"-"`
}

// TimeSlotInput creates or replaces a time slot.
type TimeSlotInput struct {
	ServiceID int64  `json:"service_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	CreatedBy int64  `json:"created_by,omitempty"`
}

// BlogInput creates or patches a post. Category may be given by id or name.
type BlogInput struct {
	Title      string `json:"titulo"`
	Subtitles  string `json:"subtitulos,omitempty"`
	Content    string `json:"contenido"`
	Category   string `json:"categoria,omitempty"`
	CategoryID int64  `json:"blog_category_id,omitempty"`
	ImageURL   string `json:"imagen_url,omitempty"`
	Status     string `json:"estado,omitempty"`
	AuthorID   int64  `json:"-"`

	Image *UploadedImage `json:"-"`
}

// ContactInput is the public contact form.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactPatch updates some fields of a contact message.
type ContactPatch struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Message *string `json:"message,omitempty"`
}
