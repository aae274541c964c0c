package profile

import (
	"context"
	"slices"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
	"github.com/jrsteele09/go-profile-optimizer/linkedin"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultCallTimeout = 8 * time.Second
	DefaultDeadline    = 20 * time.Second
	DefaultCodeTTL     = 10 * time.Minute
)

// Warnings attached to exchange results.
const (
	WarningDemoProfile      = "LinkedIn profile could not be fetched; showing demo profile data"
	WarningSimulatedFields  = "some profile fields could not be fetched and show simulated values"
	WarningMissingFields    = "some profile fields could not be fetched"
	WarningSimulatedMetrics = "analytics are not available to third-party applications; showing simulated values"
)

// TokenProvider exchanges authorization codes and verifies id_tokens.
type TokenProvider interface {
	Exchange(ctx context.Context, code, redirectURI string) (*linkedin.Token, error)
	VerifiesIDTokens() bool
	VerifyIDToken(ctx context.Context, rawIDToken string) (*linkedin.IDClaims, error)
}

type Options struct {
	// RedirectURI is used when the caller supplies none.
	RedirectURI string
	// AllowedRedirectURIs are the URIs registered with the provider. RedirectURI is
	// always allowed.
	AllowedRedirectURIs []string
	CallTimeout         time.Duration
	Deadline            time.Duration
	CodeTTL             time.Duration
	// Fallback substitutes simulated values for fields that could not be fetched.
	// When false, missing identity fails the exchange with ErrProfileFetchFailed.
	Fallback bool
}

// Result is a successful exchange. The token is always real.
type Result struct {
	Token   *linkedin.Token
	Profile *Profile
}

// Warning joins the profile warnings into one message.
func (r *Result) Warning() string {
	return strings.Join(r.Profile.Warnings, "; ")
}

// Exchanger converts an authorization code into an access token and a normalized,
// provenance-tagged profile.
type Exchanger struct {
	provider  TokenProvider
	enrichers []Enricher
	simulator Simulator
	ledger    CodeLedger
	opts      Options
}

func NewExchanger(provider TokenProvider, enrichers []Enricher, simulator Simulator, ledger CodeLedger, opts Options) *Exchanger {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = DefaultCallTimeout
	}
	if opts.Deadline <= 0 {
		opts.Deadline = DefaultDeadline
	}
	if opts.CodeTTL <= 0 {
		opts.CodeTTL = DefaultCodeTTL
	}
	if ledger == nil {
		ledger = NewInMemoryCodeLedger()
	}
	return &Exchanger{
		provider:  provider,
		enrichers: enrichers,
		simulator: simulator,
		ledger:    ledger,
		opts:      opts,
	}
}

// ResolveRedirectURI returns the configured redirect URI for an empty value and
// rejects any URI that is not registered.
func (e *Exchanger) ResolveRedirectURI(redirectURI string) (string, error) {
	if redirectURI == "" {
		if e.opts.RedirectURI == "" {
			return "", apperrors.Validation(apperrors.ErrInvalidRedirectURI, "redirect URI is not configured")
		}
		return e.opts.RedirectURI, nil
	}
	if redirectURI == e.opts.RedirectURI || slices.Contains(e.opts.AllowedRedirectURIs, redirectURI) {
		return redirectURI, nil
	}
	return "", apperrors.Validation(apperrors.ErrInvalidRedirectURI, "redirect URI is not registered")
}

// ExchangeAndFetchProfile validates the request, exchanges the code exactly once and
// enriches the profile concurrently. Enrichment failures never fail the operation;
// they are reported through provenance and warnings.
func (e *Exchanger) ExchangeAndFetchProfile(ctx context.Context, code, redirectURI string) (*Result, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.Validation(apperrors.ErrInvalidRequest, "authorization code is required")
	}
	redirectURI, err := e.ResolveRedirectURI(redirectURI)
	if err != nil {
		return nil, err
	}

	if !e.ledger.Consume(code, time.Now().Add(e.opts.CodeTTL)) {
		log.Warn().Msg("Rejected reused authorization code")
		return nil, apperrors.Upstream(apperrors.ErrCodeAlreadyUsed, 0, "")
	}

	token, err := e.provider.Exchange(ctx, code, redirectURI)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindUpstream {
			return nil, err
		}
		return nil, apperrors.Internal(err)
	}

	p := newProfile()
	p.FetchedAt = time.Now().UTC()

	if token.IDToken != "" && e.provider.VerifiesIDTokens() {
		claims, err := e.provider.VerifyIDToken(ctx, token.IDToken)
		if err != nil {
			log.Warn().Err(err).Msg("Ignoring unverifiable id_token")
		} else {
			claimsPatch(claims).apply(p, SourceReal)
		}
	}

	if err := e.buildProfile(ctx, token.AccessToken, p); err != nil {
		return nil, err
	}
	return &Result{Token: token, Profile: p}, nil
}

// FetchProfile rebuilds the profile for an access token obtained earlier, with the
// same enrichment, fallback and provenance rules as an exchange.
func (e *Exchanger) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, apperrors.Validation(apperrors.ErrInvalidRequest, "access token is required")
	}
	p := newProfile()
	p.FetchedAt = time.Now().UTC()
	if err := e.buildProfile(ctx, accessToken, p); err != nil {
		return nil, err
	}
	return p, nil
}

// buildProfile enriches p, fills or reports what is missing and summarises the
// provenance.
func (e *Exchanger) buildProfile(ctx context.Context, accessToken string, p *Profile) error {
	failed := e.enrich(ctx, accessToken, p)

	if !p.HasRealIdentity() {
		if !e.opts.Fallback {
			return apperrors.Upstream(apperrors.ErrProfileFetchFailed, 0, "no profile fields could be fetched")
		}
		log.Warn().Strs("failed", failed).Msg("Substituting demo profile")
		e.simulator.Identity().apply(p, SourceMock)
		p.Warnings = append(p.Warnings, WarningDemoProfile)
	} else if e.fillMissing(p) {
		if e.opts.Fallback {
			p.Warnings = append(p.Warnings, WarningSimulatedFields)
		} else {
			p.Warnings = append(p.Warnings, WarningMissingFields)
		}
	}

	if !p.hasRealAnalytics() {
		e.simulator.Analytics().apply(p, SourceMock)
		p.Warnings = append(p.Warnings, WarningSimulatedMetrics)
	}

	p.summarise()
	return nil
}

// enrich runs every enricher concurrently, each under its own timeout and all under
// the overall deadline, then applies the results in enricher order. It returns the
// names of the enrichers that failed.
func (e *Exchanger) enrich(ctx context.Context, accessToken string, p *Profile) []string {
	ctx, cancel := context.WithTimeout(ctx, e.opts.Deadline)
	defer cancel()

	patches := make([]*Patch, len(e.enrichers))
	errs := make([]error, len(e.enrichers))

	// Failures are collected per enricher in errs so one source never cancels another.
	var g errgroup.Group
	for i, enricher := range e.enrichers {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, e.opts.CallTimeout)
			defer cancel()
			patches[i], errs[i] = enricher.Fetch(callCtx, accessToken)
			return errs[i]
		})
	}
	if err := g.Wait(); err != nil {
		log.Debug().Err(err).Msg("Profile enrichment incomplete")
	}

	var failed []string
	for i, enricher := range e.enrichers {
		if errs[i] != nil {
			failed = append(failed, enricher.Name())
			if !apperrors.Is(errs[i], apperrors.ErrNotAvailable) {
				log.Warn().Err(errs[i]).Str("source", enricher.Name()).Msg("Profile enrichment failed")
			}
			continue
		}
		patches[i].apply(p, SourceReal)
	}
	return failed
}

// fillMissing fills identity fields that are still missing, from the simulator when
// fallback is enabled. It reports whether any field was missing.
func (e *Exchanger) fillMissing(p *Profile) bool {
	missing := false
	for _, f := range AllFields {
		if !isAnalytics(f) && p.SourceOf(f) == SourceMissing {
			missing = true
		}
	}
	if missing && e.opts.Fallback {
		e.simulator.Identity().apply(p, SourceMock)
	}
	return missing
}
