// Package xano implements the repository interfaces over the BaaS REST
// surface. It maps the loosely shaped payloads into model types and drops
// cached reads after every write.
package xano

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"ambientefest/internal/baas"
	"ambientefest/internal/normalize"
	"ambientefest/internal/repository"
)

// BaaS resource paths.
const (
	pathUsers             = "/user"
	pathRoles             = "/role"
	pathServices          = "/service"
	pathServiceCategories = "/service_category"
	pathTimeSlots         = "/service_time_slot"
	pathReservations      = "/service_reservation"
	pathCarts             = "/cart"
	pathCartDetails       = "/cart_detail"
	pathPayments          = "/payment"
	pathBlogs             = "/blog"
	pathBlogCategories    = "/blog_category"
	pathBlogComments      = "/blog_comment"
	pathContacts          = "/contact"
)

const (
	categoriesTTL = 5 * time.Minute
	cartTTL       = 5 * time.Minute
	paymentsTTL   = time.Minute
	blogsTTL      = 2 * time.Minute
)

// Repos bundles every BaaS-backed repository.
type Repos struct {
	Users        *UserRepo
	Roles        *RoleRepo
	Auth         *AuthRepo
	Services     *ServiceRepo
	Categories   *CategoryRepo
	TimeSlots    *TimeSlotRepo
	Reservations *ReservationRepo
	Carts        *CartRepo
	Payments     *PaymentRepo
	Blogs        *BlogRepo
	Comments     *CommentRepo
	Contacts     *ContactRepo
}

// New wires the repositories. store serves data endpoints and auth serves
// /auth/*; fileBase roots relative image paths.
func New(store, auth *baas.Client, fileBase string) *Repos {
	return &Repos{
		Users:        NewUserRepo(store),
		Roles:        NewRoleRepo(store),
		Auth:         NewAuthRepo(auth),
		Services:     NewServiceRepo(store, fileBase),
		Categories:   NewCategoryRepo(store),
		TimeSlots:    NewTimeSlotRepo(store),
		Reservations: NewReservationRepo(store),
		Carts:        NewCartRepo(store),
		Payments:     NewPaymentRepo(store),
		Blogs:        NewBlogRepo(store, fileBase),
		Comments:     NewCommentRepo(store),
		Contacts:     NewContactRepo(store),
	}
}

func itemPath(resource string, id int64) string {
	return resource + "/" + strconv.FormatInt(id, 10)
}

func queryPath(resource string, params url.Values) string {
	if len(params) == 0 {
		return resource
	}
	return resource + "?" + params.Encode()
}

// notFound turns BaaS 404s into repository.ErrNotFound.
func notFound(err error) error {
	if baas.IsNotFound(err) {
		return fmt.Errorf("%w: %v", repository.ErrNotFound, err)
	}
	return err
}

// object decodes a write or read answer; an empty body yields an empty record.
func object(raw json.RawMessage) normalize.Record {
	if r, ok := normalize.Object(raw); ok {
		return r
	}
	return normalize.Record{}
}

func list[T any](raw json.RawMessage, mapFn func(normalize.Record) T) []T {
	recs := normalize.Records(raw)
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		out = append(out, mapFn(r))
	}
	return out
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func invalidate(ctx context.Context, c *baas.Client, resources ...string) {
	for _, r := range resources {
		c.Invalidate(ctx, r)
	}
}
