package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"ambientefest/internal/cache"
)

// ErrNotFound is returned when the session expired or was revoked.
var ErrNotFound = errors.New("session not found")

// Session is the server-side state behind a token. BaaSToken is never sent
// to the browser.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	BaaSToken string    `json:"baas_token"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps sessions under session:<sid> and blocked marks under blocked:<uid>.
type Store struct {
	kv  cache.Store
	ttl time.Duration
}

func NewStore(kv cache.Store, ttl time.Duration) *Store {
	return &Store{kv: kv, ttl: ttl}
}

func sessionKey(id string) string { return "session:" + id }

func blockedKey(userID int64) string { return "blocked:" + strconv.FormatInt(userID, 10) }

// Create stores a new session with a random id.
func (s *Store) Create(ctx context.Context, sess Session) (*Session, error) {
	sess.ID = uuid.NewString()
	sess.CreatedAt = time.Now().UTC()
	b, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(ctx, sessionKey(sess.ID), b, s.ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return &sess, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	b, err := s.kv.Get(ctx, sessionKey(id))
	if errors.Is(err, cache.ErrMiss) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.kv.Delete(ctx, sessionKey(id))
}

// SetBlocked marks or unmarks a user. Marked users are refused by the
// session middleware even with a live token.
func (s *Store) SetBlocked(ctx context.Context, userID int64, blocked bool) error {
	if !blocked {
		return s.kv.Delete(ctx, blockedKey(userID))
	}
	return s.kv.Set(ctx, blockedKey(userID), []byte("1"), 0)
}

func (s *Store) IsBlocked(ctx context.Context, userID int64) (bool, error) {
	_, err := s.kv.Get(ctx, blockedKey(userID))
	if errors.Is(err, cache.ErrMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
