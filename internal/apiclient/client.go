// Package apiclient wraps every HTTP operation this service performs
// against the events, auth and AI backends: one request per action,
// classified into a discriminated Result, no automatic retries.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Styner-JEON/korea-event/internal/cache"
	"github.com/Styner-JEON/korea-event/internal/config"
)

type Client struct {
	cfg         *config.WebConfig
	httpClient  *http.Client
	log         zerolog.Logger
	revalidator cache.Revalidator
}

func New(cfg *config.WebConfig, log zerolog.Logger, revalidator cache.Revalidator) *Client {
	return &Client{
		cfg:         cfg,
		httpClient:  &http.Client{},
		log:         log,
		revalidator: revalidator,
	}
}

// doJSON issues one request and classifies the outcome. body is marshalled
// as JSON when non-nil; a 2xx body is decoded into out when out is non-nil.
// The returned error is a *NetworkError, *ParseError or *BackendError, each
// already logged with its category.
func (c *Client) doJSON(ctx context.Context, method, url string, header http.Header, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			c.log.Error().Str("category", "parse").Err(err).Str("url", url).Msg("request body marshalling failed")
			return &ParseError{Err: err}
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		c.log.Error().Str("category", "network").Err(err).Str("url", url).Msg("request build failed")
		return &NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range header {
		for _, value := range values {
			req.Header.Set(key, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Str("category", "network").Err(err).Str("url", url).Msg("request failed")
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
			c.log.Error().Str("category", "parse").Err(err).Int("status", resp.StatusCode).Str("url", url).Msg("error response parsing failed")
			return &ParseError{Err: err}
		}
		c.log.Error().Str("category", "backend").Int("status", resp.StatusCode).Str("url", url).Str("message", errBody.Message).Msg("backend rejected request")
		return &BackendError{StatusCode: resp.StatusCode, Message: errBody.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.log.Error().Str("category", "parse").Err(err).Str("url", url).Msg("response parsing failed")
			return &ParseError{Err: err}
		}
	}
	return nil
}

func bearerHeader(accessToken string) http.Header {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+accessToken)
	return header
}
