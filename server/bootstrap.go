package server

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-profile-optimizer/content"
	"github.com/jrsteele09/go-profile-optimizer/internal/config"
	"github.com/jrsteele09/go-profile-optimizer/linkedin"
	"github.com/jrsteele09/go-profile-optimizer/profile"
	"github.com/jrsteele09/go-profile-optimizer/server/authflowrepo"
	"github.com/jrsteele09/go-profile-optimizer/sessions"
	"github.com/rs/zerolog/log"
)

const sessionSecretBytes = 32

// System owns the collaborators built from configuration.
type System struct {
	Deps
	Store sessions.Store
}

// Close releases the session store.
func (sys *System) Close() error {
	if sys.Store == nil {
		return nil
	}
	return sys.Store.Close()
}

// InitialiseSystem wires the LinkedIn client, profile exchanger, content engine and
// session store described by c.
func InitialiseSystem(ctx context.Context, c config.Config) (*System, error) {
	client := linkedin.New(LinkedInClientConfig(c))

	ledger := profile.NewInMemoryCodeLedger()
	exchanger := profile.NewExchanger(client, profile.LinkedInEnrichers(client), profile.NewSimulator(0), ledger, profile.Options{
		RedirectURI:         c.GetRedirectURI(),
		AllowedRedirectURIs: c.GetAllowedRedirectURIs(),
		CallTimeout:         c.GetEnrichCallTimeout(),
		Deadline:            c.GetEnrichDeadline(),
		CodeTTL:             c.GetAuthCodeTimeout(),
		Fallback:            c.GetProfileFallback(),
	})

	engine, err := NewContentEngine(ctx, c)
	if err != nil {
		return nil, err
	}

	store, manager, err := NewSessionManager(ctx, c)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("redirect_uri", c.GetRedirectURI()).
		Strs("scopes", c.GetScopes()).
		Str("session_store", c.GetSessionStore()).
		Bool("profile_fallback", c.GetProfileFallback()).
		Msg("System initialised")

	return &System{
		Deps: Deps{
			LinkedIn:  client,
			Exchanger: exchanger,
			Ledger:    ledger,
			Engine:    engine,
			Sessions:  manager,
			AuthState: authflowrepo.NewInMemoryRepo(),
		},
		Store: store,
	}, nil
}

func LinkedInClientConfig(c config.Config) linkedin.Config {
	return linkedin.Config{
		ClientID:      c.GetClientID(),
		ClientSecret:  c.GetClientSecret(),
		RedirectURL:   c.GetRedirectURI(),
		Scopes:        c.GetScopes(),
		AuthURL:       c.GetAuthURL(),
		TokenURL:      c.GetTokenURL(),
		APIURL:        c.GetAPIURL(),
		Issuer:        c.GetIssuer(),
		VerifyIDToken: c.GetVerifyIDToken(),
	}
}

// NewContentEngine loads the template catalogue and, when a Gemini key is configured,
// the LLM writer.
func NewContentEngine(ctx context.Context, c config.Config) (*content.Engine, error) {
	catalog := content.DefaultCatalog()
	if path := c.GetTemplatesFile(); path != "" {
		loaded, err := content.LoadCatalog(path)
		if err != nil {
			return nil, fmt.Errorf("[Server NewContentEngine] %w", err)
		}
		catalog = loaded
		log.Info().Str("path", path).Int("templates", len(catalog.Templates())).Msg("Loaded content templates")
	}

	opts := content.Options{
		Latency: c.GetContentLatency(),
		Jitter:  c.GetContentLatencyJitter(),
	}
	if apiKey := c.GetGeminiAPIKey(); apiKey != "" {
		writer, err := content.NewGenAIWriter(ctx, apiKey, c.GetGeminiModel())
		if err != nil {
			return nil, fmt.Errorf("[Server NewContentEngine] %w", err)
		}
		opts.Writer = writer
		log.Info().Str("model", c.GetGeminiModel()).Msg("AI writer enabled for prompted requests")
	}
	return content.NewEngine(catalog, opts), nil
}

// NewSessionManager opens the configured session store. Without SESSION_SECRET a
// random secret is generated, so sessions do not survive a restart.
func NewSessionManager(ctx context.Context, c config.Config) (sessions.Store, *sessions.Manager, error) {
	secret := []byte(c.GetSessionSecret())
	if len(secret) == 0 {
		generated, err := generateRandomString(sessionSecretBytes)
		if err != nil {
			return nil, nil, fmt.Errorf("[Server NewSessionManager] %w", err)
		}
		secret = []byte(generated)
		log.Warn().Msg("SESSION_SECRET is not set; using a random secret, sessions will not survive a restart")
	}

	var store sessions.Store
	switch c.GetSessionStore() {
	case config.SessionStoreSQLite:
		sqliteStore, err := sessions.OpenSQLiteStore(ctx, c.GetSessionDSN(), sessions.NewSealer(secret))
		if err != nil {
			return nil, nil, fmt.Errorf("[Server NewSessionManager] %w", err)
		}
		store = sqliteStore
	default:
		store = sessions.NewMemoryStore()
	}

	codec := sessions.NewCookieCodec(secret, sessions.CookieOptions{
		Issuer: c.GetAppName(),
		Secure: c.GetEnv() == "PROD",
	})
	return store, sessions.NewManager(store, codec, c.GetMaxSessionAge()), nil
}
