package config

import (
	"time"

	"github.com/jrsteele09/go-profile-optimizer/internal/utils"
	"github.com/spf13/viper"
)

const (
	clientIDKey            = "linkedin.client_id"
	clientSecretKey        = "linkedin.client_secret"
	redirectURIKey         = "linkedin.redirect_uri"
	allowedRedirectURIsKey = "linkedin.allowed_redirect_uris"
	scopesKey              = "linkedin.scopes"
	authURLKey             = "linkedin.auth_url"
	tokenURLKey            = "linkedin.token_url"
	apiURLKey              = "linkedin.api_url"
	issuerKey              = "linkedin.issuer"
	verifyIDTokenKey       = "linkedin.verify_id_token"
	enrichCallTimeoutKey   = "enrich.call_timeout"
	enrichDeadlineKey      = "enrich.deadline"
	profileFallbackKey     = "profile.fallback"
	authCodeTimeoutKey     = "linkedin.auth_code_timeout"
)

// LinkedInConfig holds the identity provider settings. Client credentials have no
// defaults and must come from the environment or a secret store.
type LinkedInConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetAllowedRedirectURIs() []string
	GetScopes() []string
	GetAuthURL() string
	GetTokenURL() string
	GetAPIURL() string
	GetIssuer() string
	GetVerifyIDToken() bool
	GetEnrichCallTimeout() time.Duration
	GetEnrichDeadline() time.Duration
	GetProfileFallback() bool
	GetAuthCodeTimeout() time.Duration
}

type LinkedIn struct {
	v *viper.Viper
}

var _ LinkedInConfig = LinkedIn{}

func (l LinkedIn) GetClientID() string {
	return l.v.GetString(clientIDKey)
}

func (l LinkedIn) GetClientSecret() string {
	return l.v.GetString(clientSecretKey)
}

func (l LinkedIn) GetRedirectURI() string {
	return l.v.GetString(redirectURIKey)
}

// GetAllowedRedirectURIs always contains the default redirect URI.
func (l LinkedIn) GetAllowedRedirectURIs() []string {
	uris := utils.SplitList(l.v.GetString(allowedRedirectURIsKey))
	if def := l.GetRedirectURI(); def != "" {
		for _, u := range uris {
			if u == def {
				return uris
			}
		}
		uris = append([]string{def}, uris...)
	}
	return uris
}

func (l LinkedIn) GetScopes() []string {
	return utils.SplitList(l.v.GetString(scopesKey))
}

func (l LinkedIn) GetAuthURL() string {
	return l.v.GetString(authURLKey)
}

func (l LinkedIn) GetTokenURL() string {
	return l.v.GetString(tokenURLKey)
}

func (l LinkedIn) GetAPIURL() string {
	return l.v.GetString(apiURLKey)
}

func (l LinkedIn) GetIssuer() string {
	return l.v.GetString(issuerKey)
}

func (l LinkedIn) GetVerifyIDToken() bool {
	return l.v.GetBool(verifyIDTokenKey)
}

func (l LinkedIn) GetEnrichCallTimeout() time.Duration {
	return l.v.GetDuration(enrichCallTimeoutKey)
}

func (l LinkedIn) GetEnrichDeadline() time.Duration {
	return l.v.GetDuration(enrichDeadlineKey)
}

// GetProfileFallback reports whether a failed profile fetch is replaced by demo data.
func (l LinkedIn) GetProfileFallback() bool {
	return l.v.GetBool(profileFallbackKey)
}

func (l LinkedIn) GetAuthCodeTimeout() time.Duration {
	return l.v.GetDuration(authCodeTimeoutKey)
}
