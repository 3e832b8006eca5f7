package service

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ambientefest/internal/model"
	"ambientefest/internal/normalize"
	"ambientefest/internal/repository"
)

const enrichConcurrency = 8

// PaymentService exposes payment records. Approving a payment moves no
// money and leaves carts untouched.
type PaymentService interface {
	// List returns every payment with the payer's name and email when they
	// can be resolved.
	List(ctx context.Context) ([]model.PaymentView, error)
	ListMine(ctx context.Context, userID int64) ([]model.Payment, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*model.Payment, error)
}

type paymentService struct {
	payments repository.PaymentRepository
	users    repository.UserRepository
	carts    repository.CartRepository
	logger   *zap.Logger
}

func NewPaymentService(payments repository.PaymentRepository, users repository.UserRepository, carts repository.CartRepository, logger *zap.Logger) PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &paymentService{payments: payments, users: users, carts: carts, logger: logger}
}

func (s *paymentService) List(ctx context.Context) ([]model.PaymentView, error) {
	payments, err := s.payments.List(ctx)
	if err != nil {
		return nil, err
	}

	orphanCarts := make(map[int64]struct{})
	for _, p := range payments {
		if embeddedUser(p) == nil && p.UserID == 0 && p.CartID > 0 {
			orphanCarts[p.CartID] = struct{}{}
		}
	}

	var (
		g          errgroup.Group
		mu         sync.Mutex
		users      []model.User
		cartOwners = make(map[int64]int64, len(orphanCarts))
	)
	g.SetLimit(enrichConcurrency)
	g.Go(func() error {
		list, err := s.users.List(ctx)
		if err != nil {
			s.logger.Warn("list users for payment enrichment failed", zap.Error(err))
			return nil
		}
		users = list
		return nil
	})
	for cartID := range orphanCarts {
		g.Go(func() error {
			cart, err := s.carts.Get(ctx, cartID)
			if err != nil {
				s.logger.Warn("load cart for payment enrichment failed", zap.Int64("cart_id", cartID), zap.Error(err))
				return nil
			}
			if cart != nil {
				mu.Lock()
				cartOwners[cartID] = cart.UserID
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	byID := make(map[int64]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]model.PaymentView, 0, len(payments))
	for _, p := range payments {
		v := model.PaymentView{Payment: p}
		u := embeddedUser(p)
		switch {
		case u != nil:
		case p.UserID > 0:
			if found, ok := byID[p.UserID]; ok {
				u = &found
			}
		default:
			if owner, ok := cartOwners[p.CartID]; ok {
				v.UserID = owner
				if found, ok := byID[owner]; ok {
					u = &found
				}
			}
		}
		if u != nil {
			v.UserName = fullName(*u)
			v.UserEmail = u.Email
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *paymentService) ListMine(ctx context.Context, userID int64) ([]model.Payment, error) {
	return s.payments.ListByUser(ctx, userID)
}

func (s *paymentService) UpdateStatus(ctx context.Context, id int64, status string) (*model.Payment, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	estado, st, ok := normalize.PaymentStatus(status)
	if !ok {
		return nil, ErrInvalidPaymentStatus
	}
	p, err := s.payments.UpdateStatus(ctx, id, estado, st)
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

// embeddedUser returns the joined user when it carries anything useful.
func embeddedUser(p model.Payment) *model.User {
	if p.EmbeddedUser == nil || (p.EmbeddedUser.Email == "" && p.EmbeddedUser.Name == "") {
		return nil
	}
	return p.EmbeddedUser
}

func fullName(u model.User) string {
	switch {
	case u.Name == "":
		return u.LastName
	case u.LastName == "":
		return u.Name
	}
	return u.Name + " " + u.LastName
}
