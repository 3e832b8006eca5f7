package service

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"

	"ambientefest/internal/model"
	"ambientefest/internal/repository"
)

// errNeedService asks Add to look the service up before retrying its update.
var errNeedService = errors.New("service details needed")

// CheckoutResult is the payment created at checkout plus the totals it was
// computed from. FailedDetails counts cart lines the BaaS refused.
type CheckoutResult struct {
	Payment       model.Payment  `json:"payment"`
	Summary       model.CartView `json:"summary"`
	FailedDetails int            `json:"failed_details"`
}

// CartService manages the draft cart and turns it into a payment.
type CartService interface {
	View(ctx context.Context, userID int64) (*model.CartView, error)
	// Add increments the quantity when the service is already in the cart.
	Add(ctx context.Context, userID, serviceID int64) (*model.CartView, error)
	// Remove drops every line of the service.
	Remove(ctx context.Context, userID, serviceID int64) (*model.CartView, error)
	// Clear empties the draft cart and deletes the server cart.
	Clear(ctx context.Context, userID int64) error
	Checkout(ctx context.Context, userID int64, paymentMethod string) (*CheckoutResult, error)
	// AddReservation records a reserved slot in the server cart and mirrors
	// it into the draft cart.
	AddReservation(ctx context.Context, userID int64, svc model.Service, slot model.TimeSlot) (*model.CartDetail, error)
}

type cartService struct {
	drafts   repository.DraftCartRepository
	carts    repository.CartRepository
	services repository.ServiceRepository
	payments repository.PaymentRepository
	taxRate  float64
	currency string
	logger   *zap.Logger
}

// NewCartService constructs a CartService.
func NewCartService(
	drafts repository.DraftCartRepository,
	carts repository.CartRepository,
	services repository.ServiceRepository,
	payments repository.PaymentRepository,
	taxRate float64,
	currency string,
	logger *zap.Logger,
) CartService {
	if currency == "" {
		currency = "CLP"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cartService{
		drafts:   drafts,
		carts:    carts,
		services: services,
		payments: payments,
		taxRate:  taxRate,
		currency: currency,
		logger:   logger,
	}
}

func (s *cartService) View(ctx context.Context, userID int64) (*model.CartView, error) {
	draft, err := s.drafts.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summarize(draft), nil
}

func (s *cartService) Add(ctx context.Context, userID, serviceID int64) (*model.CartView, error) {
	if serviceID <= 0 {
		return nil, ErrIDRequired
	}

	// The service is fetched outside the update and only when the cart has
	// no plain line for it yet.
	var svc *model.Service
	for {
		draft, err := s.drafts.Update(ctx, userID, func(c *model.DraftCart) error {
			for i := range c.Items {
				if c.Items[i].ServiceID == serviceID && c.Items[i].TimeSlotID == 0 {
					c.Items[i].Quantity++
					return nil
				}
			}
			if svc == nil {
				return errNeedService
			}
			c.Items = append(c.Items, model.DraftItem{
				ServiceID: svc.ID,
				Name:      svc.Name,
				Price:     svc.Price,
				Quantity:  1,
				Provider:  svc.Provider,
				Image:     svc.Image,
			})
			return nil
		})
		if errors.Is(err, errNeedService) {
			if svc, err = s.services.Get(ctx, serviceID); err != nil {
				return nil, translate(err)
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		return s.summarize(draft), nil
	}
}

func (s *cartService) Remove(ctx context.Context, userID, serviceID int64) (*model.CartView, error) {
	draft, err := s.drafts.Update(ctx, userID, func(c *model.DraftCart) error {
		kept := c.Items[:0]
		for _, it := range c.Items {
			if it.ServiceID != serviceID {
				kept = append(kept, it)
			}
		}
		c.Items = kept
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.summarize(draft), nil
}

func (s *cartService) Clear(ctx context.Context, userID int64) error {
	if err := s.drafts.Delete(ctx, userID); err != nil {
		return err
	}
	var cartID int64
	cart, err := s.carts.FindActive(ctx, userID)
	if err != nil {
		s.logger.Warn("find active cart failed, clearing by owner", zap.Int64("user_id", userID), zap.Error(err))
	} else if cart != nil {
		cartID = cart.ID
	}
	return s.carts.Clear(ctx, cartID, userID)
}

func (s *cartService) Checkout(ctx context.Context, userID int64, paymentMethod string) (*CheckoutResult, error) {
	if !model.ValidPaymentMethod(paymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}
	draft, err := s.drafts.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(draft.Items) == 0 {
		return nil, ErrEmptyCart
	}

	cart, err := s.activeCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	failed := 0
	for _, it := range draft.Items {
		if it.ServerDetailID > 0 {
			continue
		}
		if _, err := s.carts.AddDetail(ctx, detailFromItem(cart.ID, it)); err != nil {
			failed++
			s.logger.Error("add cart detail failed",
				zap.Int64("cart_id", cart.ID),
				zap.Int64("service_id", it.ServiceID),
				zap.Error(err))
		}
	}

	summary := s.summarize(draft)
	payment, err := s.payments.Create(ctx, model.Payment{
		TotalAmount:   summary.Total,
		PaymentMethod: paymentMethod,
		CartID:        cart.ID,
		UserID:        userID,
		Status:        model.PaymentPending,
		Estado:        model.PaymentPending,
	})
	if err != nil {
		return nil, err
	}

	if err := s.drafts.Delete(ctx, userID); err != nil {
		s.logger.Warn("clear draft cart after checkout failed", zap.Int64("user_id", userID), zap.Error(err))
	}
	if failed > 0 {
		s.logger.Warn("checkout completed with missing cart details",
			zap.Int64("payment_id", payment.ID), zap.Int("failed", failed))
	}
	return &CheckoutResult{Payment: *payment, Summary: *summary, FailedDetails: failed}, nil
}

func (s *cartService) AddReservation(ctx context.Context, userID int64, svc model.Service, slot model.TimeSlot) (*model.CartDetail, error) {
	cart, err := s.activeCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	item := model.DraftItem{
		ServiceID:       svc.ID,
		Name:            svc.Name,
		Price:           svc.Price,
		Quantity:        1,
		Provider:        svc.Provider,
		Image:           svc.Image,
		TimeSlotID:      slot.ID,
		ReservationDate: slot.Day(),
		ReservationTime: slot.Range(),
	}
	detail, err := s.carts.AddDetail(ctx, detailFromItem(cart.ID, item))
	if err != nil {
		return nil, err
	}

	item.ServerDetailID = detail.ID
	_, err = s.drafts.Update(ctx, userID, func(c *model.DraftCart) error {
		c.Items = append(c.Items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// activeCart returns the user's open server cart, creating one if needed.
func (s *cartService) activeCart(ctx context.Context, userID int64) (*model.Cart, error) {
	cart, err := s.carts.FindActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	return s.carts.Create(ctx, userID)
}

func (s *cartService) summarize(draft *model.DraftCart) *model.CartView {
	v := &model.CartView{
		Items:    draft.Items,
		TaxRate:  s.taxRate,
		Currency: s.currency,
	}
	if v.Items == nil {
		v.Items = []model.DraftItem{}
	}
	for _, it := range draft.Items {
		v.TotalItems += it.Quantity
		v.Subtotal += it.Subtotal()
	}
	v.Subtotal = roundMoney(v.Subtotal)
	v.Tax = roundMoney(v.Subtotal * s.taxRate)
	v.Total = roundMoney(v.Subtotal + v.Tax)
	return v
}

func detailFromItem(cartID int64, it model.DraftItem) model.CartDetail {
	return model.CartDetail{
		CartID:          cartID,
		ServiceID:       it.ServiceID,
		ServiceName:     it.Name,
		Provider:        it.Provider,
		UnitPrice:       it.Price,
		Quantity:        it.Quantity,
		Subtotal:        it.Subtotal(),
		TimeSlotID:      it.TimeSlotID,
		ReservationDate: it.ReservationDate,
		ReservationTime: it.ReservationTime,
	}
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
