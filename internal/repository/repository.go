package repository

import (
	"context"
	"errors"
	"time"

	"ambientefest/internal/model"
)

// Package repository contains data access abstractions. The marketplace data
// lives in the BaaS (see the xano subpackage); draft carts live in a
// key/value store (see the kv subpackage).

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrEmailTaken is returned by AuthRepository.Signup when the email already
// has an account.
var ErrEmailTaken = errors.New("email already registered")

// UserRepository accesses accounts.
type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	// FindByEmail matches case-insensitively and returns ErrNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, in model.UserInput) (*model.User, error)
	Update(ctx context.Context, id int64, in model.UserInput) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

// RoleRepository lists the role catalogue.
type RoleRepository interface {
	List(ctx context.Context) ([]model.Role, error)
}

// AuthRepository wraps the BaaS auth endpoints.
type AuthRepository interface {
	// Login returns the BaaS token for valid credentials.
	Login(ctx context.Context, email, password string) (string, error)
	// Signup creates the account and returns a token when the BaaS issues one.
	Signup(ctx context.Context, in model.SignupInput) (string, error)
	// Me returns the account that owns token.
	Me(ctx context.Context, token string) (*model.User, error)
}

// ServiceRepository accesses the service catalogue.
type ServiceRepository interface {
	// List returns every service, served from cache for up to ttl.
	List(ctx context.Context, ttl time.Duration) ([]model.Service, error)
	Get(ctx context.Context, id int64) (*model.Service, error)
	Create(ctx context.Context, in model.ServiceInput) (*model.Service, error)
	Update(ctx context.Context, id int64, in model.ServiceInput) (*model.Service, error)
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository lists service and blog categories. Both degrade to an
// empty list when the BaaS fails.
type CategoryRepository interface {
	ServiceCategories(ctx context.Context) ([]model.ServiceCategory, error)
	BlogCategories(ctx context.Context) ([]model.BlogCategory, error)
}

// TimeSlotRepository accesses published time slots.
type TimeSlotRepository interface {
	// List returns the slots of serviceID, or all slots when serviceID is 0.
	List(ctx context.Context, serviceID int64) ([]model.TimeSlot, error)
	Create(ctx context.Context, in model.TimeSlotInput) (*model.TimeSlot, error)
	Update(ctx context.Context, id int64, in model.TimeSlotInput) (*model.TimeSlot, error)
	Delete(ctx context.Context, id int64) error
}

// ReservationRepository accesses slot reservations.
type ReservationRepository interface {
	ListByService(ctx context.Context, serviceID int64) ([]model.Reservation, error)
	Create(ctx context.Context, r model.Reservation) (*model.Reservation, error)
}

// CartRepository accesses server carts and their details.
type CartRepository interface {
	// FindActive returns the user's active cart, or nil when there is none.
	FindActive(ctx context.Context, userID int64) (*model.Cart, error)
	// Get returns nil when the cart does not exist.
	Get(ctx context.Context, id int64) (*model.Cart, error)
	Create(ctx context.Context, userID int64) (*model.Cart, error)
	// Clear deletes the cart by id and by owner; missing carts are not an error.
	Clear(ctx context.Context, cartID, userID int64) error
	AddDetail(ctx context.Context, d model.CartDetail) (*model.CartDetail, error)
	Details(ctx context.Context, cartID int64) ([]model.CartDetail, error)
}

// DraftCartRepository stores draft carts between requests.
type DraftCartRepository interface {
	// Load returns an empty cart when the user has none.
	Load(ctx context.Context, userID int64) (*model.DraftCart, error)
	// Update applies fn to the stored cart and saves the result without
	// losing concurrent updates. fn may run more than once; its error
	// aborts the update.
	Update(ctx context.Context, userID int64, fn func(*model.DraftCart) error) (*model.DraftCart, error)
	Delete(ctx context.Context, userID int64) error
}

// PaymentRepository accesses payment records.
type PaymentRepository interface {
	List(ctx context.Context) ([]model.Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Payment, error)
	Create(ctx context.Context, p model.Payment) (*model.Payment, error)
	UpdateStatus(ctx context.Context, id int64, estado, status string) (*model.Payment, error)
}

// BlogRepository accesses posts.
type BlogRepository interface {
	List(ctx context.Context) ([]model.Blog, error)
	Get(ctx context.Context, id int64) (*model.Blog, error)
	Create(ctx context.Context, in model.BlogInput) (*model.Blog, error)
	Update(ctx context.Context, id int64, in model.BlogInput) (*model.Blog, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

// CommentRepository accesses blog comments.
type CommentRepository interface {
	ListByBlog(ctx context.Context, blogID int64) ([]model.BlogComment, error)
	Create(ctx context.Context, c model.BlogComment) (*model.BlogComment, error)
}

// ContactRepository accesses contact form messages.
type ContactRepository interface {
	List(ctx context.Context) ([]model.ContactMessage, error)
	Get(ctx context.Context, id int64) (*model.ContactMessage, error)
	Create(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error)
	Replace(ctx context.Context, id int64, in model.ContactInput) (*model.ContactMessage, error)
	Patch(ctx context.Context, id int64, in model.ContactPatch) (*model.ContactMessage, error)
	Delete(ctx context.Context, id int64) error
}
