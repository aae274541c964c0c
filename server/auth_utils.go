package server

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/url"
)

const stateBytes = 32

// generateRandomString creates a random base64url string
func generateRandomString(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// allowedReturnURL reports whether the browser may be sent to raw after login. Only
// absolute http(s) URLs on an allowed CORS origin qualify.
func (s *Server) allowedReturnURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	return s.config.GetAllowedOrigins().IsAllowedOrigin(u.Scheme + "://" + u.Host)
}
