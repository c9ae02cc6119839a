package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Styner-JEON/korea-event/internal/model"
	"github.com/Styner-JEON/korea-event/internal/session"
	"github.com/Styner-JEON/korea-event/internal/validate"
)

// The refresh endpoint reads the refresh token from this header, not from
// the request body.
const refreshTokenHeader = "x-refresh-token"

// RefreshAccessToken exchanges a refresh token for a new access token and
// persists username and access-token into the session store. The refresh
// token itself is not rotated. No retry on failure; the caller treats any
// error as "session invalid".
func (c *Client) RefreshAccessToken(ctx context.Context, store session.Store, refreshToken string) (string, error) {
	url := c.cfg.AuthAPIURL() + "/refresh"
	header := http.Header{}
	header.Set(refreshTokenHeader, refreshToken)

	var out model.RefreshResponse
	if err := c.doJSON(ctx, http.MethodPost, url, header, nil, &out); err != nil {
		return "", fmt.Errorf("refresh access token: %w", err)
	}

	ttl := time.Duration(out.AccessTokenExpiry) * time.Millisecond
	store.Set(session.KeyUsername, out.User.Name, "/", ttl)
	store.Set(session.KeyAccessToken, out.AccessToken, "/", ttl)

	c.log.Info().Str("username", out.User.Name).Msg("access token refreshed")
	return out.AccessToken, nil
}

// EnsureAccessToken is the lazy access guard. A stored access token is
// returned as-is; expiry is the backend's call, not ours. With only a
// refresh token present, one refresh attempt is made. Otherwise
// ErrAuthRequired.
func (c *Client) EnsureAccessToken(ctx context.Context, store session.Store) (string, error) {
	if accessToken, ok := store.Get(session.KeyAccessToken); ok {
		return accessToken, nil
	}
	refreshToken, ok := store.Get(session.KeyRefreshToken)
	if !ok {
		c.log.Debug().Str("category", "auth").Msg("no tokens in session")
		return "", ErrAuthRequired
	}
	accessToken, err := c.RefreshAccessToken(ctx, store, refreshToken)
	if err != nil {
		c.log.Warn().Str("category", "auth").Err(err).Msg("token refresh failed, session invalid")
		return "", ErrAuthRequired
	}
	return accessToken, nil
}

// Login validates the form, calls the auth service and persists the session
// cookies on success.
func (c *Client) Login(ctx context.Context, store session.Store, form validate.LoginForm) Result[model.LoginResponse] {
	if fieldErrors := validate.Check(&form); fieldErrors != nil {
		c.log.Debug().Str("category", "validation").Msg("login form rejected")
		return invalid[model.LoginResponse](fieldErrors)
	}

	const fallback = "지금은 로그인을 할 수 없습니다. 잠시 후 다시 시도해주세요."
	url := c.cfg.AuthAPIURL() + "/login"
	body := map[string]string{
		"username": form.Username,
		"password": form.Password,
	}

	var out model.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, url, nil, body, &out); err != nil {
		return failed[model.LoginResponse](userMessage(err, fallback, map[int]string{
			http.StatusNotFound:            "요청하신 데이터를 찾을 수 없습니다.",
			http.StatusUnauthorized:        "ID와 password를 정확히 입력해주세요.",
			http.StatusInternalServerError: "서버 에러가 발생했습니다. 잠시 후 다시 시도해 주세요.",
		}))
	}

	accessTTL := time.Duration(out.AccessTokenExpiry) * time.Millisecond
	refreshTTL := time.Duration(out.RefreshTokenExpiry) * time.Millisecond
	store.Set(session.KeyUsername, out.User.Name, "/", accessTTL)
	store.Set(session.KeyAccessToken, out.AccessToken, "/", accessTTL)
	store.Set(session.KeyRefreshToken, out.RefreshToken, "/", refreshTTL)

	c.log.Info().Str("username", out.User.Name).Msg("login completed")
	return success(out)
}

// Signup validates the form and registers the user. No session is created;
// the user logs in afterwards.
func (c *Client) Signup(ctx context.Context, form validate.SignupForm) Result[model.SignupResponse] {
	if fieldErrors := validate.Check(&form); fieldErrors != nil {
		c.log.Debug().Str("category", "validation").Msg("signup form rejected")
		return invalid[model.SignupResponse](fieldErrors)
	}

	const fallback = "지금은 회원가입을 할 수 없습니다. 잠시 후 다시 시도해주세요."
	url := c.cfg.AuthAPIURL() + "/signup"
	body := map[string]string{
		"username": form.Username,
		"email":    form.Email,
		"password": form.Password,
	}

	var out model.SignupResponse
	if err := c.doJSON(ctx, http.MethodPost, url, nil, body, &out); err != nil {
		return failed[model.SignupResponse](userMessage(err, fallback, map[int]string{
			http.StatusNotFound:            "요청하신 데이터를 찾을 수 없습니다.",
			http.StatusConflict:            "아이디나 이메일이 이미 존재합니다.",
			http.StatusInternalServerError: "서버 에러가 발생했습니다. 잠시 후 다시 시도해 주세요.",
		}))
	}

	c.log.Info().Str("username", out.Username).Msg("signup completed")
	return success(out)
}
