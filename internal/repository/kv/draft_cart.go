// Package kv implements repositories over a cache.Store.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ambientefest/internal/cache"
	"ambientefest/internal/model"
	"ambientefest/internal/repository"
)

// draftTTL bounds how long an untouched draft cart survives.
const draftTTL = 30 * 24 * time.Hour

// DraftCartStore keeps one JSON draft cart per user under cart:<userID>.
type DraftCartStore struct {
	store cache.Store
	now   func() time.Time
}

func NewDraftCartStore(store cache.Store) *DraftCartStore {
	return &DraftCartStore{store: store, now: time.Now}
}

var _ repository.DraftCartRepository = (*DraftCartStore)(nil)

func cartKey(userID int64) string {
	return "cart:" + strconv.FormatInt(userID, 10)
}

// Load returns an empty cart when the user has none.
func (s *DraftCartStore) Load(ctx context.Context, userID int64) (*model.DraftCart, error) {
	b, err := s.store.Get(ctx, cartKey(userID))
	if errors.Is(err, cache.ErrMiss) {
		b, err = nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load draft cart: %w", err)
	}
	return decodeDraft(userID, b)
}

// Update is a read-modify-write of cart:<userID> through cache.Store.Update,
// so two requests of the same user cannot drop each other's lines.
func (s *DraftCartStore) Update(ctx context.Context, userID int64, fn func(*model.DraftCart) error) (*model.DraftCart, error) {
	var out *model.DraftCart
	err := s.store.Update(ctx, cartKey(userID), draftTTL, func(cur []byte) ([]byte, error) {
		c, err := decodeDraft(userID, cur)
		if err != nil {
			return nil, err
		}
		if err := fn(c); err != nil {
			return nil, err
		}
		c.UserID = userID
		c.UpdatedAt = s.now().UTC()
		b, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("encode draft cart: %w", err)
		}
		out = c
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeDraft(userID int64, b []byte) (*model.DraftCart, error) {
	c := model.DraftCart{UserID: userID}
	if b != nil {
		if err := json.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("decode draft cart: %w", err)
		}
		c.UserID = userID
	}
	if c.Items == nil {
		c.Items = []model.DraftItem{}
	}
	return &c, nil
}

func (s *DraftCartStore) Delete(ctx context.Context, userID int64) error {
	if err := s.store.Delete(ctx, cartKey(userID)); err != nil {
		return fmt.Errorf("delete draft cart: %w", err)
	}
	return nil
}
