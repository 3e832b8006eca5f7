package kv

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ambientefest/internal/cache"
	"ambientefest/internal/model"
)

func TestDraftCartStore_RoundTrip(t *testing.T) {
	store := cache.NewMemory()
	s := NewDraftCartStore(store)
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	empty, err := s.Load(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), empty.UserID)
	assert.Empty(t, empty.Items)
	assert.NotNil(t, empty.Items)

	_, err = s.Update(ctx, 7, func(c *model.DraftCart) error {
		c.Items = append(c.Items, model.DraftItem{ServiceID: 3, Name: "DJ", Price: 1000, Quantity: 2})
		return nil
	})
	require.NoError(t, err)

	raw, err := store.Get(ctx, "cart:7")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"cantidad":2`)

	got, err := s.Load(ctx, 7)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "DJ", got.Items[0].Name)
	assert.True(t, fixed.Equal(got.UpdatedAt))

	require.NoError(t, s.Delete(ctx, 7))
	got, err = s.Load(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestDraftCartStore_CorruptEntry(t *testing.T) {
	store := cache.NewMemory()
	require.NoError(t, store.Set(context.Background(), "cart:1", []byte("{"), 0))

	_, err := NewDraftCartStore(store).Load(context.Background(), 1)

	assert.Error(t, err)
}

func TestDraftCartStore_ConcurrentUpdatesKeepEveryLine(t *testing.T) {
	store := cache.NewMemory()
	s := NewDraftCartStore(store)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := s.Update(ctx, 5, func(c *model.DraftCart) error {
				c.Items = append(c.Items, model.DraftItem{ServiceID: id, Quantity: 1})
				return nil
			})
			assert.NoError(t, err)
		}(int64(i))
	}
	wg.Wait()

	got, err := s.Load(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, got.Items, 20)
}

func TestDraftCartStore_UpdateAbort(t *testing.T) {
	store := cache.NewMemory()
	s := NewDraftCartStore(store)
	ctx := context.Background()
	stop := errors.New("stop")

	_, err := s.Update(ctx, 5, func(c *model.DraftCart) error {
		c.Items = append(c.Items, model.DraftItem{ServiceID: 1})
		return stop
	})

	assert.ErrorIs(t, err, stop)
	_, err = store.Get(ctx, "cart:5")
	assert.ErrorIs(t, err, cache.ErrMiss)
}
