package sessions_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
	"github.com/jrsteele09/go-profile-optimizer/profile"
	"github.com/jrsteele09/go-profile-optimizer/sessions"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// freezeTime pins sessions.NowTimeFunc for the duration of the test.
func freezeTime(t *testing.T, now time.Time) *time.Time {
	t.Helper()
	current := now
	orig := sessions.NowTimeFunc
	sessions.NowTimeFunc = func() time.Time { return current }
	t.Cleanup(func() { sessions.NowTimeFunc = orig })
	return &current
}

func storeFactories(t *testing.T) map[string]func(t *testing.T) sessions.Store {
	return map[string]func(t *testing.T) sessions.Store{
		"memory": func(t *testing.T) sessions.Store {
			return sessions.NewMemoryStore()
		},
		"sqlite": func(t *testing.T) sessions.Store {
			dsn := "file:" + filepath.Join(t.TempDir(), "sessions.db")
			store, err := sessions.OpenSQLiteStore(context.Background(), dsn, sessions.NewSealer(testSecret))
			require.NoError(t, err)
			t.Cleanup(func() { _ = store.Close() })
			return store
		},
	}
}

func testSession(id string, now time.Time) sessions.Session {
	return sessions.Session{
		ID:          id,
		MemberID:    "abc123",
		AccessToken: "access-token-" + id,
		Scope:       "openid profile email",
		TokenExpiry: now.Add(time.Hour),
		Profile: &profile.Profile{
			ID:         "abc123",
			FirstName:  "Ada",
			LastName:   "Lovelace",
			Provenance: map[profile.Field]profile.Source{profile.FieldID: profile.SourceReal},
			DataSource: profile.DataSourcePartial,
		},
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestStores(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := freezeTime(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

			t.Run("set then get", func(t *testing.T) {
				store := newStore(t)
				want := testSession("s1", *now)
				require.NoError(t, store.Set(ctx, want))

				got, err := store.Get(ctx, "s1")
				require.NoError(t, err)
				require.Equal(t, want.ID, got.ID)
				require.Equal(t, want.MemberID, got.MemberID)
				require.Equal(t, want.AccessToken, got.AccessToken)
				require.Equal(t, want.Scope, got.Scope)
				require.True(t, want.ExpiresAt.Equal(got.ExpiresAt))
				require.True(t, want.TokenExpiry.Equal(got.TokenExpiry))
				require.NotNil(t, got.Profile)
				require.Equal(t, "Ada", got.Profile.FirstName)
				require.Equal(t, profile.SourceReal, got.Profile.SourceOf(profile.FieldID))
			})

			t.Run("set overwrites", func(t *testing.T) {
				store := newStore(t)
				s := testSession("s1", *now)
				require.NoError(t, store.Set(ctx, s))
				s.AccessToken = "rotated"
				s.Profile = nil
				require.NoError(t, store.Set(ctx, s))

				got, err := store.Get(ctx, "s1")
				require.NoError(t, err)
				require.Equal(t, "rotated", got.AccessToken)
				require.Nil(t, got.Profile)
			})

			t.Run("unknown id", func(t *testing.T) {
				store := newStore(t)
				_, err := store.Get(ctx, "missing")
				require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
				_, err = store.Get(ctx, "")
				require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
			})

			t.Run("empty id rejected", func(t *testing.T) {
				store := newStore(t)
				require.Error(t, store.Set(ctx, sessions.Session{}))
			})

			t.Run("clear", func(t *testing.T) {
				store := newStore(t)
				require.NoError(t, store.Set(ctx, testSession("s1", *now)))
				require.NoError(t, store.Clear(ctx, "s1"))
				require.NoError(t, store.Clear(ctx, "s1"), "clearing twice is not an error")

				_, err := store.Get(ctx, "s1")
				require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
			})

			t.Run("expired session is removed on get", func(t *testing.T) {
				store := newStore(t)
				require.NoError(t, store.Set(ctx, testSession("s1", *now)))

				*now = now.Add(2 * time.Hour)
				t.Cleanup(func() { *now = now.Add(-2 * time.Hour) })

				_, err := store.Get(ctx, "s1")
				require.ErrorIs(t, err, apperrors.ErrSessionExpired)
				_, err = store.Get(ctx, "s1")
				require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
			})

			t.Run("delete expired", func(t *testing.T) {
				store := newStore(t)
				old := testSession("old", *now)
				old.ExpiresAt = now.Add(time.Minute)
				require.NoError(t, store.Set(ctx, old))
				require.NoError(t, store.Set(ctx, testSession("fresh", *now)))

				*now = now.Add(5 * time.Minute)
				t.Cleanup(func() { *now = now.Add(-5 * time.Minute) })

				removed, err := store.DeleteExpired(ctx)
				require.NoError(t, err)
				require.Equal(t, 1, removed)

				_, err = store.Get(ctx, "fresh")
				require.NoError(t, err)
			})
		})
	}
}

func TestSQLiteStoreSealsTokens(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "sessions.db")
	now := time.Now()

	store, err := sessions.OpenSQLiteStore(ctx, dsn, sessions.NewSealer(testSecret))
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, testSession("s1", now)))
	require.NoError(t, store.Close())

	t.Run("survives reopen", func(t *testing.T) {
		reopened, err := sessions.OpenSQLiteStore(ctx, dsn, sessions.NewSealer(testSecret))
		require.NoError(t, err)
		defer reopened.Close()

		got, err := reopened.Get(ctx, "s1")
		require.NoError(t, err)
		require.Equal(t, "access-token-s1", got.AccessToken)
	})

	t.Run("wrong secret cannot read token", func(t *testing.T) {
		reopened, err := sessions.OpenSQLiteStore(ctx, dsn, sessions.NewSealer([]byte("another secret")))
		require.NoError(t, err)
		defer reopened.Close()

		_, err = reopened.Get(ctx, "s1")
		require.ErrorIs(t, err, sessions.ErrUnsealFailed)
	})

	t.Run("requires sealer", func(t *testing.T) {
		_, err := sessions.OpenSQLiteStore(ctx, ":memory:", nil)
		require.Error(t, err)
	})
}
