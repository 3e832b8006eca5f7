package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ambientefest/internal/cache"
)

func TestManager_IssueParse(t *testing.T) {
	m := NewManager("secret", time.Hour)

	tok, err := m.Issue(Session{ID: "sid-1", UserID: 7, Email: "ana@gmail.com", Role: "admin"})
	require.NoError(t, err)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestManager_ParseRejects(t *testing.T) {
	m := NewManager("secret", time.Hour)
	good, err := m.Issue(Session{ID: "sid", UserID: 1})
	require.NoError(t, err)

	expired := NewManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Issue(Session{ID: "sid", UserID: 1})
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{SessionID: "sid", UserID: 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"other secret": mustIssue(t, NewManager("other", time.Hour)),
		"expired":      old,
		"alg none":     none,
		"garbage":      "abc.def.ghi",
		"tampered":     good + "x",
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.Parse(tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func mustIssue(t *testing.T, m *Manager) string {
	t.Helper()
	tok, err := m.Issue(Session{ID: "sid", UserID: 1})
	require.NoError(t, err)
	return tok
}

func TestStore_Lifecycle(t *testing.T) {
	s := NewStore(cache.NewMemory(), time.Hour)
	ctx := context.Background()

	sess, err := s.Create(ctx, Session{UserID: 3, Email: "a@gmail.com", Role: "cliente", BaaSToken: "xano"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)

	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "xano", got.BaaSToken)

	require.NoError(t, s.Delete(ctx, sess.ID))
	_, err = s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Blocked(t *testing.T) {
	s := NewStore(cache.NewMemory(), time.Hour)
	ctx := context.Background()

	blocked, err := s.IsBlocked(ctx, 4)
	require.NoError(t, err)
	assert.False(t, blocked)

	require.NoError(t, s.SetBlocked(ctx, 4, true))
	blocked, err = s.IsBlocked(ctx, 4)
	require.NoError(t, err)
	assert.True(t, blocked)

	require.NoError(t, s.SetBlocked(ctx, 4, false))
	blocked, err = s.IsBlocked(ctx, 4)
	require.NoError(t, err)
	assert.False(t, blocked)
}
