package model

// Payment methods accepted at checkout.
const (
	PaymentTransfer = "transferencia"
	PaymentCard     = "tarjeta"
	PaymentCash     = "efectivo"
)

// PaymentPending is the status of a payment awaiting review.
const PaymentPending = "pendiente"

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentTransfer, PaymentCard, PaymentCash:
		return true
	}
	return false
}

// Payment records a checkout. No money moves through this service.
type Payment struct {
	ID            int64   `json:"id"`
	TotalAmount   float64 `json:"total_amount"`
	PaymentMethod string  `json:"payment_method"`
	CartID        int64   `json:"cart_id"`
	UserID        int64   `json:"user_id"`
	Status        string  `json:"status"`
	Estado        string  `json:"estado"`
	PaidAt        string  `json:"fecha_pago,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`

	// EmbeddedUser is the user object some BaaS queries join in.
	EmbeddedUser *User `json:"-"`
}

// PaymentView is a payment enriched for the admin list.
type PaymentView struct {
	Payment
	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}
