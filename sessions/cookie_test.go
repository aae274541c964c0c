package sessions_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
	"github.com/jrsteele09/go-profile-optimizer/sessions"
	"github.com/stretchr/testify/require"
)

func TestSealer(t *testing.T) {
	sealer := sessions.NewSealer(testSecret)

	sealed, err := sealer.Seal("AQX-secret-token")
	require.NoError(t, err)
	require.NotContains(t, sealed, "AQX-secret-token")

	again, err := sealer.Seal("AQX-secret-token")
	require.NoError(t, err)
	require.NotEqual(t, sealed, again, "each seal uses a fresh nonce")

	opened, err := sealer.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, "AQX-secret-token", opened)

	t.Run("tampered", func(t *testing.T) {
		tampered := []byte(sealed)
		mid := len(tampered) / 2
		if tampered[mid] == 'A' {
			tampered[mid] = 'B'
		} else {
			tampered[mid] = 'A'
		}
		_, err := sealer.Open(string(tampered))
		require.ErrorIs(t, err, sessions.ErrUnsealFailed)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := sealer.Open("not base64!")
		require.ErrorIs(t, err, sessions.ErrUnsealFailed)
		_, err = sealer.Open("c2hvcnQ")
		require.ErrorIs(t, err, sessions.ErrUnsealFailed)
	})
}

func TestCookieCodec(t *testing.T) {
	now := freezeTime(t, time.Now().Truncate(time.Second))
	codec := sessions.NewCookieCodec(testSecret, sessions.CookieOptions{Issuer: "Profile Optimizer"})

	value, err := codec.Encode("session-1", now.Add(time.Hour))
	require.NoError(t, err)

	id, err := codec.Decode(value)
	require.NoError(t, err)
	require.Equal(t, "session-1", id)

	t.Run("other key", func(t *testing.T) {
		other := sessions.NewCookieCodec([]byte("other"), sessions.CookieOptions{Issuer: "Profile Optimizer"})
		_, err := other.Decode(value)
		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("other issuer", func(t *testing.T) {
		other := sessions.NewCookieCodec(testSecret, sessions.CookieOptions{Issuer: "someone else"})
		_, err := other.Decode(value)
		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("expired", func(t *testing.T) {
		*now = now.Add(2 * time.Hour)
		t.Cleanup(func() { *now = now.Add(-2 * time.Hour) })
		_, err := codec.Decode(value)
		require.ErrorIs(t, err, apperrors.ErrSessionExpired)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := codec.Decode("a.b.c")
		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("cookie attributes", func(t *testing.T) {
		cookie, err := codec.Cookie("session-1", now.Add(time.Hour))
		require.NoError(t, err)
		require.Equal(t, sessions.DefaultCookieName, cookie.Name)
		require.True(t, cookie.HttpOnly)
		require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		require.Equal(t, 3600, cookie.MaxAge)

		require.Equal(t, -1, codec.Expired().MaxAge)
	})
}

func TestManager(t *testing.T) {
	ctx := context.Background()
	now := freezeTime(t, time.Now().Truncate(time.Second))
	store := sessions.NewMemoryStore()
	manager := sessions.NewManager(store, sessions.NewCookieCodec(testSecret, sessions.CookieOptions{}), time.Hour)

	start := func(t *testing.T, s sessions.Session) (sessions.Session, *http.Cookie) {
		t.Helper()
		rec := httptest.NewRecorder()
		started, err := manager.Start(ctx, rec, s)
		require.NoError(t, err)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		return started, cookies[0]
	}

	t.Run("start and load", func(t *testing.T) {
		started, cookie := start(t, sessions.Session{MemberID: "abc123", AccessToken: "token"})
		require.NotEmpty(t, started.ID)
		require.True(t, started.ExpiresAt.Equal(now.Add(time.Hour)))

		req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
		req.AddCookie(cookie)
		loaded, err := manager.Load(ctx, req)
		require.NoError(t, err)
		require.Equal(t, started.ID, loaded.ID)
		require.Equal(t, "token", loaded.AccessToken)
	})

	t.Run("session never outlives token", func(t *testing.T) {
		started, _ := start(t, sessions.Session{AccessToken: "token", TokenExpiry: now.Add(10 * time.Minute)})
		require.True(t, started.ExpiresAt.Equal(now.Add(10*time.Minute)))
	})

	t.Run("ids are unique", func(t *testing.T) {
		a, _ := start(t, sessions.Session{AccessToken: "a"})
		b, _ := start(t, sessions.Session{AccessToken: "b"})
		require.NotEqual(t, a.ID, b.ID)
	})

	t.Run("no cookie", func(t *testing.T) {
		_, err := manager.Load(ctx, httptest.NewRequest(http.MethodGet, "/auth/session", nil))
		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})

	t.Run("end clears store and cookie", func(t *testing.T) {
		started, cookie := start(t, sessions.Session{AccessToken: "token"})

		req := httptest.NewRequest(http.MethodPost, "/auth/disconnect", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		require.NoError(t, manager.End(ctx, rec, req))

		_, err := store.Get(ctx, started.ID)
		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
		require.True(t, strings.Contains(rec.Header().Get("Set-Cookie"), "Max-Age=0"))
	})

	t.Run("end without cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, manager.End(ctx, rec, httptest.NewRequest(http.MethodPost, "/auth/disconnect", nil)))
	})

	t.Run("sweep", func(t *testing.T) {
		started, _ := start(t, sessions.Session{AccessToken: "token"})
		*now = now.Add(2 * time.Hour)
		t.Cleanup(func() { *now = now.Add(-2 * time.Hour) })

		manager.Sweep(ctx)
		_, err := store.Get(ctx, started.ID)
		require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	})
}
