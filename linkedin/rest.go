package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

const maxErrorBody = 4 << 10

// StatusError is a non-success response from the REST API.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("LinkedIn API %s %s returned %d", e.Method, e.Path, e.Status)
}

// retryable reports whether a GET that failed with this status may be repeated.
func (e *StatusError) retryable() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}

func (c *Client) authorize(req *http.Request, accessToken string) {
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")
	req.Header.Set("Accept", "application/json")
}

// getJSON performs a bearer-authenticated GET and decodes the body into out.
// Network errors, 429 and 5xx responses are retried with exponential backoff up to
// the client's retry limit; everything else fails immediately.
func (c *Client) getJSON(ctx context.Context, accessToken, path string, out any) error {
	attempt := 0
	op := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+path, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		c.authorize(req, accessToken)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close response body")
			}
		}()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			serr := &StatusError{Method: http.MethodGet, Path: path, Status: resp.StatusCode, Body: string(body)}
			if serr.retryable() {
				return serr
			}
			return backoff.Permanent(serr)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode %s: %w", path, err))
		}
		return nil
	}

	notify := func(err error, wait time.Duration) {
		log.Debug().Err(err).Str("path", path).Int("attempt", attempt).Dur("wait", wait).Msg("Retrying LinkedIn API call")
	}
	return backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.maxRetries), ctx), notify)
}

func (c *Client) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	b.MaxInterval = 10 * c.retryInterval
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}
