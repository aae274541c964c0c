package sessions

import (
	"net/http"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
)

const DefaultCookieName = "optimizer_session"

// CookieCodec signs session ids into HS256 JWT cookie values.
type CookieCodec struct {
	key    []byte
	name   string
	issuer string
	secure bool
}

type CookieOptions struct {
	Name   string // defaults to DefaultCookieName
	Issuer string // "iss" claim, checked on decode
	Secure bool   // set the Secure attribute (HTTPS deployments)
}

func NewCookieCodec(secret []byte, opts CookieOptions) *CookieCodec {
	name := opts.Name
	if name == "" {
		name = DefaultCookieName
	}
	return &CookieCodec{key: secret, name: name, issuer: opts.Issuer, secure: opts.Secure}
}

func (c *CookieCodec) Name() string {
	return c.name
}

// Encode returns a signed token whose jti is the session id.
func (c *CookieCodec) Encode(sessionID string, expiresAt time.Time) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.RegisteredClaims{
		ID:        sessionID,
		Issuer:    c.issuer,
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(expiresAt),
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", apperrors.Wrapf(err, "failed to sign session cookie")
	}
	return signed, nil
}

// Decode verifies a token produced by Encode and returns its session id.
func (c *CookieCodec) Decode(value string) (string, error) {
	var claims jwtlib.RegisteredClaims
	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(NowTimeFunc),
	}
	if c.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(c.issuer))
	}

	token, err := jwtlib.ParseWithClaims(value, &claims, func(*jwtlib.Token) (interface{}, error) {
		return c.key, nil
	}, opts...)
	if err != nil || !token.Valid {
		if apperrors.Is(err, jwtlib.ErrTokenExpired) {
			return "", apperrors.ErrSessionExpired
		}
		return "", apperrors.ErrSessionNotFound
	}
	if claims.ID == "" {
		return "", apperrors.ErrSessionNotFound
	}
	return claims.ID, nil
}

// Cookie builds the session cookie for sessionID.
func (c *CookieCodec) Cookie(sessionID string, expiresAt time.Time) (*http.Cookie, error) {
	value, err := c.Encode(sessionID, expiresAt)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(expiresAt.Sub(NowTimeFunc()).Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Expired returns a cookie that deletes the session cookie in the browser.
func (c *CookieCodec) Expired() *http.Cookie {
	return &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
