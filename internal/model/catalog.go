package model

// Service is a bookable offering published by a provider.
type Service struct {
	ID          int64   `json:"id"`
	CreatedAt   string  `json:"creado_en,omitempty"`
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio"`
	Provider    string  `json:"proveedor"`
	// Availability is the display label; Available is nil when unknown.
	Availability string   `json:"disponibilidad"`
	Available    *bool    `json:"disponible"`
	Rating       float64  `json:"rating"`
	NumRatings   int64    `json:"num_ratings"`
	State        string   `json:"estado,omitempty"`
	UserID       int64    `json:"user_id,omitempty"`
	CategoryID   int64    `json:"service_category_id,omitempty"`
	Image        string   `json:"imagen"`
	Images       []string `json:"imagenes"`
}

// ServiceCategory groups services.
type ServiceCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}
