package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
	"github.com/rs/zerolog/log"
)

const pathUGCPosts = "/v2/ugcPosts"

// Share publishes text as a public post on the member's feed and returns the post URN.
// Publishing is not idempotent and is never retried.
func (c *Client) Share(ctx context.Context, accessToken, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apperrors.Validation(apperrors.ErrInvalidRequest, "content is required")
	}
	if accessToken == "" {
		return "", apperrors.Validation(apperrors.ErrInvalidRequest, "access token is required")
	}

	member, err := c.BasicProfile(ctx, accessToken)
	if err != nil {
		return "", shareError(err)
	}

	post := ugcPost{
		Author:         "urn:li:person:" + member.ID,
		LifecycleState: "PUBLISHED",
		SpecificContent: map[string]shareContent{
			"com.linkedin.ugc.ShareContent": {
				ShareCommentary:    shareText{Text: text},
				ShareMediaCategory: "NONE",
			},
		},
		Visibility: map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}
	body, err := json.Marshal(post)
	if err != nil {
		return "", apperrors.Internal(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+pathUGCPosts, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Internal(err)
	}
	c.authorize(req, accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Upstream(apperrors.ErrShareFailed, 0, err.Error())
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close response body")
		}
	}()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", apperrors.Upstream(apperrors.ErrShareFailed, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if id := resp.Header.Get("X-RestLi-Id"); id != "" {
		return id, nil
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &created); err != nil || created.ID == "" {
		return "", apperrors.Upstream(apperrors.ErrShareFailed, resp.StatusCode, "response did not include a post id")
	}
	return created.ID, nil
}

func shareError(err error) error {
	var serr *StatusError
	if apperrors.As(err, &serr) {
		return apperrors.Upstream(apperrors.ErrShareFailed, serr.Status, strings.TrimSpace(serr.Body))
	}
	return apperrors.Upstream(apperrors.ErrShareFailed, 0, err.Error())
}
