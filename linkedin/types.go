package linkedin

import "time"

// GrantType represents the OAuth 2.0 grant type used at the token endpoint.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code for an access token.
	// LinkedIn issues no refresh tokens to standard apps, so this is the only grant used.
	AuthorizationCodeGrant GrantType = "authorization_code"
)

// ResponseType represents the OAuth 2.0 response type requested at the authorization endpoint.
type ResponseType string

const (
	CodeResponseType ResponseType = "code"
)

const (
	// ScopeOpenID enables Sign In with LinkedIn using OpenID Connect (id_token + /v2/userinfo).
	ScopeOpenID = "openid"
	// ScopeMemberSocial allows publishing posts on behalf of the member.
	ScopeMemberSocial = "w_member_social"
)

// Token is the result of a successful authorization-code exchange.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type,omitempty"`
	Expiry      time.Time `json:"expiry,omitempty"`
	Scope       string    `json:"scope,omitempty"`
	IDToken     string    `json:"-"`
}

// IDClaims are the identity claims LinkedIn places in the OpenID Connect id_token.
type IDClaims struct {
	Subject       string `json:"sub"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Picture       string `json:"picture"`
}

// BasicProfile is the member profile returned by /v2/userinfo or /v2/me.
type BasicProfile struct {
	ID         string
	FirstName  string
	LastName   string
	Headline   string
	VanityName string
	Email      string
	PictureURL string
}

// Analytics are member statistics. LinkedIn does not expose these to third-party apps.
type Analytics struct {
	ProfileViews    int
	Connections     int
	PostImpressions int
}

// userInfoResponse is the /v2/userinfo body.
type userInfoResponse struct {
	Sub        string `json:"sub"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
	Email      string `json:"email"`
}

// meResponse is the /v2/me body in its lite-profile projection.
type meResponse struct {
	ID                 string         `json:"id"`
	LocalizedFirstName string         `json:"localizedFirstName"`
	LocalizedLastName  string         `json:"localizedLastName"`
	LocalizedHeadline  string         `json:"localizedHeadline"`
	VanityName         string         `json:"vanityName"`
	FirstName          localizedField `json:"firstName"`
	LastName           localizedField `json:"lastName"`
}

type localizedField struct {
	Localized map[string]string `json:"localized"`
}

// value returns the en_US entry or, failing that, any localized entry.
func (f localizedField) value() string {
	if v, ok := f.Localized["en_US"]; ok {
		return v
	}
	for _, v := range f.Localized {
		return v
	}
	return ""
}

type emailResponse struct {
	Elements []struct {
		Handle struct {
			EmailAddress string `json:"emailAddress"`
		} `json:"handle~"`
	} `json:"elements"`
}

type pictureResponse struct {
	ProfilePicture struct {
		DisplayImage struct {
			Elements []pictureElement `json:"elements"`
		} `json:"displayImage~"`
	} `json:"profilePicture"`
}

type pictureElement struct {
	Data struct {
		StillImage struct {
			StorageSize struct {
				Width int `json:"width"`
			} `json:"storageSize"`
		} `json:"com.linkedin.digitalmedia.mediaartifact.StillImage"`
	} `json:"data"`
	Identifiers []struct {
		Identifier string `json:"identifier"`
	} `json:"identifiers"`
}

// ugcPost is the /v2/ugcPosts request body for a text-only member share.
type ugcPost struct {
	Author          string                 `json:"author"`
	LifecycleState  string                 `json:"lifecycleState"`
	SpecificContent map[string]shareContent `json:"specificContent"`
	Visibility      map[string]string      `json:"visibility"`
}

type shareContent struct {
	ShareCommentary    shareText `json:"shareCommentary"`
	ShareMediaCategory string    `json:"shareMediaCategory"`
}

type shareText struct {
	Text string `json:"text"`
}
