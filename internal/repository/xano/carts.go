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

// CartRepo implements repository.CartRepository over /cart and /cart_detail.
type CartRepo struct {
	client *baas.Client
}

func NewCartRepo(c *baas.Client) *CartRepo {
	return &CartRepo{client: c}
}

var _ repository.CartRepository = (*CartRepo)(nil)

// FindActive keeps only carts whose active flag is the boolean true.
func (r *CartRepo) FindActive(ctx context.Context, userID int64) (*model.Cart, error) {
	params := url.Values{}
	params.Set("user_id", strconv.FormatInt(userID, 10))
	params.Set("active", "true")
	raw, err := r.client.CachedGet(ctx, queryPath(pathCarts, params), cartTTL)
	if err != nil {
		if baas.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	for _, rec := range normalize.Records(raw) {
		if active, ok := rec["active"].(bool); ok && active {
			c := mapCart(rec)
			return &c, nil
		}
	}
	return nil, nil
}

// Get returns nil, nil when the BaaS does not know the cart.
func (r *CartRepo) Get(ctx context.Context, id int64) (*model.Cart, error) {
	raw, err := r.client.CachedGet(ctx, itemPath(pathCarts, id), cartTTL)
	if err != nil {
		if baas.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	rec, ok := normalize.Object(raw)
	if !ok {
		return nil, nil
	}
	c := mapCart(rec)
	return &c, nil
}

func (r *CartRepo) Create(ctx context.Context, userID int64) (*model.Cart, error) {
	raw, err := r.client.Post(ctx, pathCarts, map[string]any{
		"user_id": userID,
		"active":  true,
		"status":  "open",
	})
	if err != nil {
		return nil, err
	}
	r.client.Invalidate(ctx, pathCarts)
	c := mapCart(object(raw))
	if c.UserID == 0 {
		c.UserID = userID
	}
	c.Active = true
	return &c, nil
}

// Clear tries DELETE /cart/{id} first and then DELETE /cart?user_id=.
// A 404 at either step is not an error.
func (r *CartRepo) Clear(ctx context.Context, cartID, userID int64) error {
	defer invalidate(ctx, r.client, pathCarts, pathCartDetails)

	if cartID > 0 {
		_, err := r.client.Delete(ctx, itemPath(pathCarts, cartID))
		if err == nil {
			return nil
		}
		if !baas.IsNotFound(err) {
			return err
		}
	}
	if userID <= 0 {
		return nil
	}
	params := url.Values{}
	params.Set("user_id", strconv.FormatInt(userID, 10))
	if _, err := r.client.Delete(ctx, queryPath(pathCarts, params)); err != nil && !baas.IsNotFound(err) {
		return err
	}
	return nil
}

func (r *CartRepo) AddDetail(ctx context.Context, d model.CartDetail) (*model.CartDetail, error) {
	p := map[string]any{
		"cart_id":      d.CartID,
		"service_id":   d.ServiceID,
		"service_name": d.ServiceName,
		"provider":     d.Provider,
		"unit_price":   d.UnitPrice,
		"quantity":     d.Quantity,
		"subtotal":     d.Subtotal,
	}
	if d.TimeSlotID > 0 {
		p["time_slot_id"] = d.TimeSlotID
	}
	if d.ReservationDate != "" {
		p["reservation_date"] = d.ReservationDate
	}
	if d.ReservationTime != "" {
		p["reservation_time"] = d.ReservationTime
	}
	raw, err := r.client.Post(ctx, pathCartDetails, p)
	if err != nil {
		return nil, err
	}
	r.client.Invalidate(ctx, pathCartDetails)
	out := mapCartDetail(object(raw))
	if out.CartID == 0 {
		out.CartID = d.CartID
	}
	if out.ServiceID == 0 {
		out.ServiceID = d.ServiceID
	}
	return &out, nil
}

func (r *CartRepo) Details(ctx context.Context, cartID int64) ([]model.CartDetail, error) {
	params := url.Values{}
	params.Set("cart_id", strconv.FormatInt(cartID, 10))
	raw, err := r.client.CachedGet(ctx, queryPath(pathCartDetails, params), cartTTL)
	if err != nil {
		if baas.IsNotFound(err) {
			return []model.CartDetail{}, nil
		}
		return nil, err
	}
	return list(raw, mapCartDetail), nil
}

func mapCart(rec normalize.Record) model.Cart {
	return model.Cart{
		ID:        rec.Int("id", "cart_id"),
		UserID:    rec.Int("user_id", "userId", "usuario_id"),
		Active:    rec.Bool(false, "active"),
		Status:    rec.Str("status"),
		CreatedAt: rec.Str("created_at", "creado_en"),
	}
}

func mapCartDetail(rec normalize.Record) model.CartDetail {
	return model.CartDetail{
		ID:              rec.Int("id"),
		CartID:          rec.Int("cart_id", "cartId", "carrito_id"),
		ServiceID:       rec.Int("service_id", "serviceId", "servicio_id"),
		ServiceName:     rec.Str("nombre_servicio", "service_name", "name", "nombre"),
		Provider:        rec.Str("provider", "service_provider", "proveedor"),
		UnitPrice:       rec.Float("unit_price", "precio_unitario", "price", "precio"),
		Quantity:        rec.Int("quantity", "cantidad"),
		Subtotal:        rec.Float("subtotal", "sub_total"),
		TimeSlotID:      rec.Int("time_slot_id"),
		ReservationDate: rec.Str("reservation_date"),
		ReservationTime: rec.Str("reservation_time"),
		CreatedAt:       rec.Str("created_at", "creado_en"),
	}
}
