package linkedin

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	DefaultAuthURL  = "https://www.linkedin.com/oauth/v2/authorization"
	DefaultTokenURL = "https://www.linkedin.com/oauth/v2/accessToken"
	DefaultAPIURL   = "https://api.linkedin.com"
	DefaultIssuer   = "https://www.linkedin.com/oauth"

	defaultMaxRetries    = 2
	defaultRetryInterval = 200 * time.Millisecond
)

// Config configures a Client. ClientID, ClientSecret and RedirectURL must come from
// the environment; there are no built-in credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string

	AuthURL  string
	TokenURL string
	APIURL   string
	Issuer   string

	// VerifyIDToken enables id_token verification when the openid scope is requested.
	VerifyIDToken bool
	// KeySet verifies id_tokens without provider discovery. Optional.
	KeySet oidc.KeySet

	HTTPClient    *http.Client
	MaxRetries    int // retries for idempotent GETs, 0 selects the default, negative disables
	RetryInterval time.Duration
}

// Client talks to LinkedIn's OAuth2 and REST endpoints.
type Client struct {
	oauth2Config  *oauth2.Config
	apiURL        string
	issuer        string
	verifyIDToken bool
	useUserInfo   bool
	keySet        oidc.KeySet
	httpClient    *http.Client
	maxRetries    uint64
	retryInterval time.Duration

	verifier     *oidc.IDTokenVerifier
	verifierLock sync.RWMutex
}

func New(cfg Config) *Client {
	authURL := valueOr(cfg.AuthURL, DefaultAuthURL)
	tokenURL := valueOr(cfg.TokenURL, DefaultTokenURL)

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	var maxRetries uint64
	switch {
	case cfg.MaxRetries == 0:
		maxRetries = defaultMaxRetries
	case cfg.MaxRetries > 0:
		maxRetries = uint64(cfg.MaxRetries)
	}

	retryInterval := cfg.RetryInterval
	if retryInterval <= 0 {
		retryInterval = defaultRetryInterval
	}

	return &Client{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		apiURL:        strings.TrimRight(valueOr(cfg.APIURL, DefaultAPIURL), "/"),
		issuer:        valueOr(cfg.Issuer, DefaultIssuer),
		verifyIDToken: cfg.VerifyIDToken,
		useUserInfo:   slices.Contains(cfg.Scopes, ScopeOpenID),
		keySet:        cfg.KeySet,
		httpClient:    httpClient,
		maxRetries:    maxRetries,
		retryInterval: retryInterval,
	}
}

// AuthCodeURL returns the consent page URL for the configured scopes and redirect URI.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth2Config.AuthCodeURL(state)
}

// Exchange trades an authorization code for an access token. It is never retried
// because codes are single-use. A provider rejection is returned as an upstream
// error carrying the provider's status and body.
func (c *Client) Exchange(ctx context.Context, code, redirectURI string) (*Token, error) {
	cfg := *c.oauth2Config // copy
	if redirectURI != "" {
		cfg.RedirectURL = redirectURI
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if apperrors.As(err, &re) {
			status := 0
			if re.Response != nil {
				status = re.Response.StatusCode
			}
			log.Warn().Int("status", status).Msg("LinkedIn token exchange rejected")
			return nil, apperrors.Upstream(apperrors.ErrTokenExchangeFailed, status, strings.TrimSpace(string(re.Body)))
		}
		return nil, apperrors.Upstream(apperrors.ErrTokenExchangeFailed, 0, err.Error())
	}

	token := &Token{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		Expiry:      tok.Expiry,
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		token.Scope = scope
	}
	if idToken, ok := tok.Extra("id_token").(string); ok {
		token.IDToken = idToken
	}
	return token, nil
}

// VerifiesIDTokens reports whether id_tokens from Exchange should be verified.
func (c *Client) VerifiesIDTokens() bool {
	return c.verifyIDToken && c.useUserInfo
}

// VerifyIDToken checks the id_token signature, issuer, audience and expiry and
// returns its identity claims.
func (c *Client) VerifyIDToken(ctx context.Context, rawIDToken string) (*IDClaims, error) {
	verifier, err := c.idTokenVerifier(ctx)
	if err != nil {
		return nil, err
	}

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, apperrors.Wrapf(err, "id token verification failed")
	}

	var claims IDClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, apperrors.Wrapf(err, "failed to extract id token claims")
	}
	return &claims, nil
}

func (c *Client) idTokenVerifier(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	c.verifierLock.RLock()
	verifier := c.verifier
	c.verifierLock.RUnlock()
	if verifier != nil {
		return verifier, nil
	}

	oidcConfig := &oidc.Config{ClientID: c.oauth2Config.ClientID}
	if c.keySet != nil {
		verifier = oidc.NewVerifier(c.issuer, c.keySet, oidcConfig)
	} else {
		// Discovery results outlive this request, so they must not inherit its cancellation.
		discoveryCtx := oidc.ClientContext(context.WithoutCancel(ctx), c.httpClient)
		provider, err := oidc.NewProvider(discoveryCtx, c.issuer)
		if err != nil {
			return nil, apperrors.Wrapf(err, "failed to create OIDC provider")
		}
		verifier = provider.Verifier(oidcConfig)
	}

	c.verifierLock.Lock()
	c.verifier = verifier
	c.verifierLock.Unlock()
	return verifier, nil
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
