package model

import "time"

// Cart is the server-side cart record a payment is attached to.
type Cart struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Active    bool   `json:"active"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CartDetail is one line of a server cart.
type CartDetail struct {
	ID              int64   `json:"id"`
	CartID          int64   `json:"cart_id"`
	ServiceID       int64   `json:"service_id"`
	ServiceName     string  `json:"service_name"`
	Provider        string  `json:"provider,omitempty"`
	UnitPrice       float64 `json:"unit_price"`
	Quantity        int64   `json:"quantity"`
	Subtotal        float64 `json:"subtotal"`
	TimeSlotID      int64   `json:"time_slot_id,omitempty"`
	ReservationDate string  `json:"reservation_date,omitempty"`
	ReservationTime string  `json:"reservation_time,omitempty"`
	CreatedAt       string  `json:"created_at,omitempty"`
}

// DraftItem is a line of the draft cart kept by this service until checkout.
type DraftItem struct {
	ServiceID       int64   `json:"service_id"`
	Name            string  `json:"nombre"`
	Price           float64 `json:"precio"`
	Quantity        int64   `json:"cantidad"`
	Provider        string  `json:"proveedor,omitempty"`
	Image           string  `json:"imagen,omitempty"`
	TimeSlotID      int64   `json:"time_slot_id,omitempty"`
	ReservationDate string  `json:"reservation_date,omitempty"`
	ReservationTime string  `json:"reservation_time,omitempty"`
	// ServerDetailID is set once the line already exists in the server cart.
	ServerDetailID int64 `json:"server_detail_id,omitempty"`
}

func (i DraftItem) Subtotal() float64 { return i.Price * float64(i.Quantity) }

// DraftCart is a user's pending selection.
type DraftCart struct {
	UserID    int64       `json:"user_id"`
	Items     []DraftItem `json:"items"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CartView is a draft cart with its totals.
type CartView struct {
	Items      []DraftItem `json:"items"`
	TotalItems int64       `json:"total_items"`
	Subtotal   float64     `json:"subtotal"`
	TaxRate    float64     `json:"tax_rate"`
	Tax        float64     `json:"tax"`
	Total      float64     `json:"total"`
	Currency   string      `json:"currency"`
}
