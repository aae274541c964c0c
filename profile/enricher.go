package profile

import (
	"context"

	"github.com/jrsteele09/go-profile-optimizer/linkedin"
)

// Enricher is a best-effort source of profile fields. Its output is tagged real, so
// implementations must only return data obtained from the provider.
type Enricher interface {
	Name() string
	Fetch(ctx context.Context, accessToken string) (*Patch, error)
}

// EnricherFunc adapts a function to the Enricher interface.
type EnricherFunc struct {
	name  string
	fetch func(ctx context.Context, accessToken string) (*Patch, error)
}

func NewEnricherFunc(name string, fetch func(ctx context.Context, accessToken string) (*Patch, error)) *EnricherFunc {
	return &EnricherFunc{name: name, fetch: fetch}
}

func (e *EnricherFunc) Name() string { return e.name }

func (e *EnricherFunc) Fetch(ctx context.Context, accessToken string) (*Patch, error) {
	return e.fetch(ctx, accessToken)
}

// LinkedInAPI is the subset of the LinkedIn client used for enrichment.
type LinkedInAPI interface {
	BasicProfile(ctx context.Context, accessToken string) (*linkedin.BasicProfile, error)
	EmailAddress(ctx context.Context, accessToken string) (string, error)
	ProfilePicture(ctx context.Context, accessToken string) (string, error)
	Analytics(ctx context.Context, accessToken string) (*linkedin.Analytics, error)
}

// Enricher names.
const (
	EnricherBasicProfile = "basic profile"
	EnricherEmail        = "email"
	EnricherPicture      = "picture"
	EnricherAnalytics    = "analytics"
)

// LinkedInEnrichers returns the basic profile, email, picture and analytics sources.
func LinkedInEnrichers(api LinkedInAPI) []Enricher {
	return []Enricher{
		NewEnricherFunc(EnricherBasicProfile, func(ctx context.Context, token string) (*Patch, error) {
			bp, err := api.BasicProfile(ctx, token)
			if err != nil {
				return nil, err
			}
			return &Patch{
				ID:         &bp.ID,
				FirstName:  &bp.FirstName,
				LastName:   &bp.LastName,
				Headline:   &bp.Headline,
				Email:      &bp.Email,
				PictureURL: &bp.PictureURL,
				VanityName: &bp.VanityName,
			}, nil
		}),
		NewEnricherFunc(EnricherEmail, func(ctx context.Context, token string) (*Patch, error) {
			email, err := api.EmailAddress(ctx, token)
			if err != nil {
				return nil, err
			}
			return &Patch{Email: &email}, nil
		}),
		NewEnricherFunc(EnricherPicture, func(ctx context.Context, token string) (*Patch, error) {
			url, err := api.ProfilePicture(ctx, token)
			if err != nil {
				return nil, err
			}
			return &Patch{PictureURL: &url}, nil
		}),
		NewEnricherFunc(EnricherAnalytics, func(ctx context.Context, token string) (*Patch, error) {
			stats, err := api.Analytics(ctx, token)
			if err != nil {
				return nil, err
			}
			return &Patch{
				ProfileViews:    &stats.ProfileViews,
				Connections:     &stats.Connections,
				PostImpressions: &stats.PostImpressions,
			}, nil
		}),
	}
}

func claimsPatch(c *linkedin.IDClaims) *Patch {
	return &Patch{
		ID:         &c.Subject,
		FirstName:  &c.GivenName,
		LastName:   &c.FamilyName,
		Email:      &c.Email,
		PictureURL: &c.Picture,
	}
}
