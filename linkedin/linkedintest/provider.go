// Package linkedintest provides an in-process fake of the LinkedIn OAuth2 and REST
// endpoints for tests.
package linkedintest

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-profile-optimizer/linkedin"
)

const (
	ClientID     = "test-client-id"
	ClientSecret = "test-client-secret"
	RedirectURI  = "http://localhost:3000/auth/linkedin/callback"
)

// Call names counted by Provider.Calls.
const (
	CallToken    = "token"
	CallUserInfo = "userinfo"
	CallMe       = "me"
	CallEmail    = "email"
	CallPicture  = "picture"
	CallShare    = "share"
)

// Member is the account the fake provider authenticates.
type Member struct {
	ID         string
	GivenName  string
	FamilyName string
	Email      string
	Picture    string
	Headline   string
	VanityName string
}

// DefaultMember is used unless a test replaces Provider.Member.
var DefaultMember = Member{
	ID:         "abc123",
	GivenName:  "Ada",
	FamilyName: "Lovelace",
	Email:      "ada@example.com",
	Picture:    "https://media.licdn.com/ada-800.jpg",
	Headline:   "Analytical Engine Programmer",
	VanityName: "ada-lovelace",
}

// Provider is a fake LinkedIn. Configure it before issuing requests; the counters
// are safe to read concurrently.
type Provider struct {
	Server *httptest.Server
	Key    *rsa.PrivateKey
	Member Member

	// Status overrides the response status for a call name. Zero means success.
	Status map[string]int
	// Body overrides the response body written with a Status override.
	Body map[string]string
	// FailFirst makes the first N requests of a call fail with 503.
	FailFirst map[string]int
	// Delay holds a call until the duration passes or the client goes away.
	Delay map[string]time.Duration
	// IDToken controls whether the token response carries a signed id_token.
	IDToken bool

	mu    sync.Mutex
	calls map[string]int
}

// NewProvider starts a fake provider. It is closed when the test finishes.
func NewProvider(t testing.TB) *Provider {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	p := &Provider{
		Key:       key,
		Member:    DefaultMember,
		Status:    map[string]int{},
		Body:      map[string]string{},
		FailFirst: map[string]int{},
		Delay:     map[string]time.Duration{},
		IDToken:   true,
		calls:     map[string]int{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/v2/accessToken", p.handleToken)
	mux.HandleFunc("GET /v2/userinfo", p.handle(CallUserInfo, p.userInfo))
	mux.HandleFunc("GET /v2/me", func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Query().Get("projection"), "profilePicture") {
			p.handle(CallPicture, p.picture)(w, r)
			return
		}
		p.handle(CallMe, p.me)(w, r)
	})
	mux.HandleFunc("GET /v2/emailAddress", p.handle(CallEmail, p.email))
	mux.HandleFunc("POST /v2/ugcPosts", p.handleShare)

	p.Server = httptest.NewServer(mux)
	t.Cleanup(p.Server.Close)
	return p
}

// Config returns a client configuration pointing at the fake provider.
func (p *Provider) Config() linkedin.Config {
	return linkedin.Config{
		ClientID:      ClientID,
		ClientSecret:  ClientSecret,
		RedirectURL:   RedirectURI,
		Scopes:        []string{linkedin.ScopeOpenID, "profile", "email", linkedin.ScopeMemberSocial},
		AuthURL:       p.Server.URL + "/oauth/v2/authorization",
		TokenURL:      p.Server.URL + "/oauth/v2/accessToken",
		APIURL:        p.Server.URL,
		Issuer:        p.Server.URL,
		VerifyIDToken: true,
		KeySet:        &oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{&p.Key.PublicKey}},
		HTTPClient:    p.Server.Client(),
		RetryInterval: time.Millisecond,
	}
}

// Client returns a linkedin.Client configured for the fake provider.
func (p *Provider) Client() *linkedin.Client {
	return linkedin.New(p.Config())
}

// Calls returns how many requests a call name has received.
func (p *Provider) Calls(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[name]
}

// TotalCalls returns the number of requests received across all endpoints.
func (p *Provider) TotalCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := 0
	for _, n := range p.calls {
		total += n
	}
	return total
}

// SignIDToken signs an id_token for the member with the provider key.
func (p *Provider) SignIDToken(audience string, expiry time.Time) string {
	claims := jwt.MapClaims{
		"iss":            p.Server.URL,
		"sub":            p.Member.ID,
		"aud":            audience,
		"iat":            time.Now().Unix(),
		"exp":            expiry.Unix(),
		"name":           strings.TrimSpace(p.Member.GivenName + " " + p.Member.FamilyName),
		"given_name":     p.Member.GivenName,
		"family_name":    p.Member.FamilyName,
		"email":          p.Member.Email,
		"email_verified": p.Member.Email != "",
		"picture":        p.Member.Picture,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(p.Key)
	if err != nil {
		panic(err)
	}
	return signed
}

// count records a call and returns the override status, if any.
func (p *Provider) count(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[name]++
	if p.calls[name] <= p.FailFirst[name] {
		return http.StatusServiceUnavailable
	}
	return p.Status[name]
}

func (p *Provider) wait(name string, r *http.Request) bool {
	d := p.Delay[name]
	if d == 0 {
		return true
	}
	select {
	case <-time.After(d):
		return true
	case <-r.Context().Done():
		return false
	}
}

func (p *Provider) handle(name string, ok func(http.ResponseWriter)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := p.count(name)
		if !p.wait(name, r) {
			return
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			status = http.StatusUnauthorized
		}
		if status != 0 && status != http.StatusOK {
			p.fail(w, name, status)
			return
		}
		ok(w)
	}
}

func (p *Provider) fail(w http.ResponseWriter, name string, status int) {
	body := p.Body[name]
	if body == "" && name == CallToken {
		body = `{"error":"invalid_request","error_description":"Unable to retrieve access token: appid/redirect uri/code verifier does not match authorization code. Or authorization code expired."}`
	}
	if body == "" {
		body = `{"serviceErrorCode":0,"message":"` + http.StatusText(status) + `","status":` + strconv.Itoa(status) + `}`
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (p *Provider) handleToken(w http.ResponseWriter, r *http.Request) {
	status := p.count(CallToken)
	if !p.wait(CallToken, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		status = http.StatusBadRequest
	}
	if r.PostForm.Get("grant_type") != string(linkedin.AuthorizationCodeGrant) ||
		r.PostForm.Get("client_id") != ClientID ||
		r.PostForm.Get("client_secret") != ClientSecret ||
		r.PostForm.Get("code") == "" {
		status = http.StatusBadRequest
	}
	if status != 0 && status != http.StatusOK {
		p.fail(w, CallToken, status)
		return
	}

	resp := map[string]any{
		"access_token": "access-" + r.PostForm.Get("code"),
		"expires_in":   5184000,
		"token_type":   "Bearer",
		"scope":        "email,openid,profile,w_member_social",
	}
	if p.IDToken {
		resp["id_token"] = p.SignIDToken(ClientID, time.Now().Add(time.Hour))
	}
	writeJSON(w, resp)
}

func (p *Provider) userInfo(w http.ResponseWriter) {
	m := p.Member
	writeJSON(w, map[string]any{
		"sub":         m.ID,
		"name":        strings.TrimSpace(m.GivenName + " " + m.FamilyName),
		"given_name":  m.GivenName,
		"family_name": m.FamilyName,
		"picture":     m.Picture,
		"email":       m.Email,
	})
}

func (p *Provider) me(w http.ResponseWriter) {
	m := p.Member
	writeJSON(w, map[string]any{
		"id":                 m.ID,
		"localizedFirstName": m.GivenName,
		"localizedLastName":  m.FamilyName,
		"localizedHeadline":  m.Headline,
		"vanityName":         m.VanityName,
	})
}

func (p *Provider) email(w http.ResponseWriter) {
	writeJSON(w, map[string]any{
		"elements": []any{
			map[string]any{"handle": "urn:li:emailAddress:1", "handle~": map[string]any{"emailAddress": p.Member.Email}},
		},
	})
}

func (p *Provider) picture(w http.ResponseWriter) {
	still := func(width int, url string) map[string]any {
		return map[string]any{
			"data": map[string]any{
				"com.linkedin.digitalmedia.mediaartifact.StillImage": map[string]any{
					"storageSize": map[string]any{"width": width, "height": width},
				},
			},
			"identifiers": []any{map[string]any{"identifier": url}},
		}
	}
	writeJSON(w, map[string]any{
		"id": p.Member.ID,
		"profilePicture": map[string]any{
			"displayImage~": map[string]any{
				"elements": []any{
					still(100, "https://media.licdn.com/ada-100.jpg"),
					still(800, p.Member.Picture),
					still(400, "https://media.licdn.com/ada-400.jpg"),
				},
			},
		},
	})
}

func (p *Provider) handleShare(w http.ResponseWriter, r *http.Request) {
	status := p.count(CallShare)
	if status != 0 && status != http.StatusCreated {
		p.fail(w, CallShare, status)
		return
	}
	var post struct {
		Author string `json:"author"`
	}
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil || post.Author != "urn:li:person:"+p.Member.ID {
		p.fail(w, CallShare, http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("X-RestLi-Id", "urn:li:share:7000000000000000001")
	w.WriteHeader(http.StatusCreated)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
