package linkedin_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
	"github.com/jrsteele09/go-profile-optimizer/linkedin"
	"github.com/jrsteele09/go-profile-optimizer/linkedin/linkedintest"
	"github.com/stretchr/testify/require"
)

func TestAuthCodeURL(t *testing.T) {
	p := linkedintest.NewProvider(t)
	c := p.Client()

	u, err := url.Parse(c.AuthCodeURL("state-123"))
	require.NoError(t, err)
	q := u.Query()
	require.Equal(t, "/oauth/v2/authorization", u.Path)
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, linkedintest.ClientID, q.Get("client_id"))
	require.Equal(t, linkedintest.RedirectURI, q.Get("redirect_uri"))
	require.Equal(t, "state-123", q.Get("state"))
	require.Equal(t, "openid profile email w_member_social", q.Get("scope"))
}

func TestExchange(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns token and id token", func(t *testing.T) {
		p := linkedintest.NewProvider(t)
		c := p.Client()

		tok, err := c.Exchange(ctx, "good-code", "")
		require.NoError(t, err)
		require.Equal(t, "access-good-code", tok.AccessToken)
		require.NotEmpty(t, tok.IDToken)
		require.Contains(t, tok.Scope, "w_member_social")
		require.True(t, tok.Expiry.After(time.Now()))
		require.Equal(t, 1, p.Calls(linkedintest.CallToken))
	})

	t.Run("provider rejection is upstream and not retried", func(t *testing.T) {
		p := linkedintest.NewProvider(t)
		p.Status[linkedintest.CallToken] = http.StatusBadRequest
		c := p.Client()

		tok, err := c.Exchange(ctx, "expired-code", linkedintest.RedirectURI)
		require.Nil(t, tok)
		require.Error(t, err)
		require.True(t, apperrors.Is(err, apperrors.ErrTokenExchangeFailed))
		require.Equal(t, apperrors.KindUpstream, apperrors.KindOf(err))

		var e *apperrors.Error
		require.True(t, apperrors.As(err, &e))
		require.Equal(t, http.StatusBadRequest, e.Status)
		require.Contains(t, e.Detail, "invalid_request")
		require.Equal(t, 1, p.Calls(linkedintest.CallToken))
	})

	t.Run("server error is not retried either", func(t *testing.T) {
		p := linkedintest.NewProvider(t)
		p.FailFirst[linkedintest.CallToken] = 1
		c := p.Client()

		_, err := c.Exchange(ctx, "code", "")
		require.Error(t, err)
		require.Equal(t, 1, p.Calls(linkedintest.CallToken))
	})
}

func TestVerifyIDToken(t *testing.T) {
	ctx := context.Background()
	p := linkedintest.NewProvider(t)
	c := p.Client()
	require.True(t, c.VerifiesIDTokens())

	t.Run("valid token yields claims", func(t *testing.T) {
		claims, err := c.VerifyIDToken(ctx, p.SignIDToken(linkedintest.ClientID, time.Now().Add(time.Hour)))
		require.NoError(t, err)
		require.Equal(t, linkedintest.DefaultMember.ID, claims.Subject)
		require.Equal(t, "Ada", claims.GivenName)
		require.Equal(t, "Lovelace", claims.FamilyName)
		require.Equal(t, "ada@example.com", claims.Email)
	})

	t.Run("wrong audience is rejected", func(t *testing.T) {
		_, err := c.VerifyIDToken(ctx, p.SignIDToken("someone-else", time.Now().Add(time.Hour)))
		require.Error(t, err)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		_, err := c.VerifyIDToken(ctx, p.SignIDToken(linkedintest.ClientID, time.Now().Add(-time.Hour)))
		require.Error(t, err)
	})

	t.Run("token signed by another key is rejected", func(t *testing.T) {
		other := linkedintest.NewProvider(t)
		other.Server.URL = p.Server.URL
		_, err := c.VerifyIDToken(ctx, other.SignIDToken(linkedintest.ClientID, time.Now().Add(time.Hour)))
		require.Error(t, err)
	})
}

func TestBasicProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("openid scope reads userinfo", func(t *testing.T) {
		p := linkedintest.NewProvider(t)
		bp, err := p.Client().BasicProfile(ctx, "token")
		require.NoError(t, err)
		require.Equal(t, "abc123", bp.ID)
		require.Equal(t, "Ada", bp.FirstName)
		require.Equal(t, "ada@example.com", bp.Email)
		require.Equal(t, 1, p.Calls(linkedintest.CallUserInfo))
		require.Zero(t, p.Calls(linkedintest.CallMe))
	})

	t.Run("legacy scopes read me", func(t *testing.T) {
		p := linkedintest.NewProvider(t)
		cfg := p.Config()
		cfg.Scopes = []string{"r_liteprofile", "r_emailaddress"}
		bp, err := linkedin.New(cfg).BasicProfile(ctx, "token")
		require.NoError(t, err)
		require.Equal(t, "Analytical Engine Programmer", bp.Headline)
		require.Equal(t, "ada-lovelace", bp.VanityName)
		require.Equal(t, 1, p.Calls(linkedintest.CallMe))
	})

	t.Run("transient failures are retried", func(t *testing.T) {
		p := linkedintest.NewProvider(t)
		p.FailFirst[linkedintest.CallUserInfo] = 2
		bp, err := p.Client().BasicProfile(ctx, "token")
		require.NoError(t, err)
		require.Equal(t, "abc123", bp.ID)
		require.Equal(t, 3, p.Calls(linkedintest.CallUserInfo))
	})

	t.Run("retries are bounded", func(t *testing.T) {
		p := linkedintest.NewProvider(t)
		p.FailFirst[linkedintest.CallUserInfo] = 10
		_, err := p.Client().BasicProfile(ctx, "token")

		var serr *linkedin.StatusError
		require.True(t, apperrors.As(err, &serr))
		require.Equal(t, http.StatusServiceUnavailable, serr.Status)
		require.Equal(t, 3, p.Calls(linkedintest.CallUserInfo))
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		p := linkedintest.NewProvider(t)
		p.Status[linkedintest.CallUserInfo] = http.StatusUnauthorized
		_, err := p.Client().BasicProfile(ctx, "token")
		require.Error(t, err)
		require.Equal(t, 1, p.Calls(linkedintest.CallUserInfo))
	})

	t.Run("retries disabled", func(t *testing.T) {
		p := linkedintest.NewProvider(t)
		p.FailFirst[linkedintest.CallUserInfo] = 1
		cfg := p.Config()
		cfg.MaxRetries = -1
		_, err := linkedin.New(cfg).BasicProfile(ctx, "token")
		require.Error(t, err)
		require.Equal(t, 1, p.Calls(linkedintest.CallUserInfo))
	})
}

func TestEnrichmentEndpoints(t *testing.T) {
	ctx := context.Background()
	p := linkedintest.NewProvider(t)
	c := p.Client()

	email, err := c.EmailAddress(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", email)

	pic, err := c.ProfilePicture(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, "https://media.licdn.com/ada-800.jpg", pic)

	before := p.TotalCalls()
	stats, err := c.Analytics(ctx, "token")
	require.Nil(t, stats)
	require.True(t, apperrors.Is(err, apperrors.ErrNotAvailable))
	require.Equal(t, before, p.TotalCalls())
}

func TestShare(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and returns the post urn", func(t *testing.T) {
		p := linkedintest.NewProvider(t)
		id, err := p.Client().Share(ctx, "token", "Hello LinkedIn")
		require.NoError(t, err)
		require.Equal(t, "urn:li:share:7000000000000000001", id)
		require.Equal(t, 1, p.Calls(linkedintest.CallShare))
	})

	t.Run("rejected share is upstream", func(t *testing.T) {
		p := linkedintest.NewProvider(t)
		p.Status[linkedintest.CallShare] = http.StatusForbidden
		_, err := p.Client().Share(ctx, "token", "Hello")
		require.True(t, apperrors.Is(err, apperrors.ErrShareFailed))

		var e *apperrors.Error
		require.True(t, apperrors.As(err, &e))
		require.Equal(t, http.StatusForbidden, e.Status)
		require.Equal(t, 1, p.Calls(linkedintest.CallShare))
	})

	t.Run("empty content makes no calls", func(t *testing.T) {
		p := linkedintest.NewProvider(t)
		_, err := p.Client().Share(ctx, "token", "   ")
		require.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		require.Zero(t, p.TotalCalls())
	})
}
