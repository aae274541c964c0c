package linkedin

import (
	"context"

	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
)

const (
	pathUserInfo = "/v2/userinfo"
	pathMe       = "/v2/me"
	pathEmail    = "/v2/emailAddress?q=members&projection=(elements*(handle~))"
	pathPicture  = "/v2/me?projection=(id,profilePicture(displayImage~:playableStreams))"
)

// BasicProfile fetches the member's identity. With the openid scope it reads the
// OpenID Connect userinfo endpoint, otherwise the lite profile from /v2/me.
func (c *Client) BasicProfile(ctx context.Context, accessToken string) (*BasicProfile, error) {
	if c.useUserInfo {
		var ui userInfoResponse
		if err := c.getJSON(ctx, accessToken, pathUserInfo, &ui); err != nil {
			return nil, err
		}
		return &BasicProfile{
			ID:         ui.Sub,
			FirstName:  ui.GivenName,
			LastName:   ui.FamilyName,
			Email:      ui.Email,
			PictureURL: ui.Picture,
		}, nil
	}

	var me meResponse
	if err := c.getJSON(ctx, accessToken, pathMe, &me); err != nil {
		return nil, err
	}
	first := me.LocalizedFirstName
	if first == "" {
		first = me.FirstName.value()
	}
	last := me.LocalizedLastName
	if last == "" {
		last = me.LastName.value()
	}
	return &BasicProfile{
		ID:         me.ID,
		FirstName:  first,
		LastName:   last,
		Headline:   me.LocalizedHeadline,
		VanityName: me.VanityName,
	}, nil
}

// EmailAddress fetches the primary email address (r_emailaddress scope).
func (c *Client) EmailAddress(ctx context.Context, accessToken string) (string, error) {
	var resp emailResponse
	if err := c.getJSON(ctx, accessToken, pathEmail, &resp); err != nil {
		return "", err
	}
	if len(resp.Elements) == 0 || resp.Elements[0].Handle.EmailAddress == "" {
		return "", apperrors.ErrNotFound
	}
	return resp.Elements[0].Handle.EmailAddress, nil
}

// ProfilePicture returns the URL of the widest available display image.
func (c *Client) ProfilePicture(ctx context.Context, accessToken string) (string, error) {
	var resp pictureResponse
	if err := c.getJSON(ctx, accessToken, pathPicture, &resp); err != nil {
		return "", err
	}

	var best *pictureElement
	for i := range resp.ProfilePicture.DisplayImage.Elements {
		el := &resp.ProfilePicture.DisplayImage.Elements[i]
		if len(el.Identifiers) == 0 {
			continue
		}
		if best == nil || el.Data.StillImage.StorageSize.Width > best.Data.StillImage.StorageSize.Width {
			best = el
		}
	}
	if best == nil {
		return "", apperrors.ErrNotFound
	}
	return best.Identifiers[0].Identifier, nil
}

// Analytics always fails: profile views, connections and impressions are only
// available to LinkedIn partner programs.
func (c *Client) Analytics(ctx context.Context, accessToken string) (*Analytics, error) {
	return nil, apperrors.ErrNotAvailable
}
