package xano

import (
	"context"
	"net/url"
	"strconv"

	"ambientefest/internal/baas"
	"ambientefest/internal/model"
	"ambientefest/internal/normalize"
	"ambientefest/internal/repository"
)

// PaymentRepo implements repository.PaymentRepository over /payment.
type PaymentRepo struct {
	client *baas.Client
}

func NewPaymentRepo(c *baas.Client) *PaymentRepo {
	return &PaymentRepo{client: c}
}

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

func (r *PaymentRepo) List(ctx context.Context) ([]model.Payment, error) {
	raw, err := r.client.CachedGet(ctx, pathPayments, paymentsTTL)
	if err != nil {
		return nil, err
	}
	return list(raw, mapPayment), nil
}

func (r *PaymentRepo) ListByUser(ctx context.Context, userID int64) ([]model.Payment, error) {
	params := url.Values{}
	params.Set("user_id", strconv.FormatInt(userID, 10))
	raw, err := r.client.Get(ctx, queryPath(pathPayments, params))
	if err != nil {
		return nil, err
	}
	return list(raw, mapPayment), nil
}

// Create stamps fecha_pago with the current time and defaults estado to pendiente.
func (r *PaymentRepo) Create(ctx context.Context, p model.Payment) (*model.Payment, error) {
	estado := p.Estado
	if estado == "" {
		estado = model.PaymentPending
	}
	status := p.Status
	if status == "" {
		status = estado
	}
	p.Estado, p.Status, p.PaidAt = estado, status, nowISO()

	raw, err := r.client.Post(ctx, pathPayments, map[string]any{
		"total_amount":   p.TotalAmount,
		"payment_method": p.PaymentMethod,
		"cart_id":        p.CartID,
		"user_id":        p.UserID,
		"status":         p.Status,
		"estado":         p.Estado,
		"fecha_pago":     p.PaidAt,
	})
	if err != nil {
		return nil, err
	}
	r.client.Invalidate(ctx, pathPayments)
	out := mapPayment(object(raw))
	if out.ID == 0 {
		return &p, nil
	}
	return &out, nil
}

// UpdateStatus patches the status pair, falling back to PUT when the BaaS
// answers the PATCH with a server error.
func (r *PaymentRepo) UpdateStatus(ctx context.Context, id int64, estado, status string) (*model.Payment, error) {
	body := map[string]string{"estado": estado, "status": status}
	path := itemPath(pathPayments, id)

	raw, err := r.client.Patch(ctx, path, body)
	if err != nil && baas.IsServerError(err) {
		raw, err = r.client.Put(ctx, path, body)
	}
	if err != nil {
		return nil, notFound(err)
	}
	r.client.Invalidate(ctx, pathPayments)
	out := mapPayment(object(raw))
	if out.ID == 0 {
		out.ID = id
	}
	if out.Estado == "" {
		out.Estado, out.Status = estado, status
	}
	return &out, nil
}

func mapPayment(rec normalize.Record) model.Payment {
	p := model.Payment{
		ID:            rec.Int("id"),
		TotalAmount:   rec.Float("total_amount", "total", "monto"),
		PaymentMethod: rec.Str("payment_method", "metodo_pago"),
		CartID:        rec.Int("cart_id", "cartId", "carrito_id"),
		UserID:        rec.Int("user_id", "userId", "usuario_id"),
		Status:        rec.Str("status"),
		Estado:        rec.Str("estado", "status"),
		PaidAt:        rec.Str("fecha_pago"),
		CreatedAt:     rec.Str("created_at", "creado_en"),
	}
	if sub := rec.Sub("user"); sub != nil {
		u := mapUser(sub)
		p.EmbeddedUser = &u
	}
	return p
}
