package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Styner-JEON/korea-event/internal/apiclient"
	"github.com/Styner-JEON/korea-event/internal/cache"
	"github.com/Styner-JEON/korea-event/internal/config"
	"github.com/Styner-JEON/korea-event/internal/session"
)

func newAuthTestHandler() AuthHandler {
	cfg := &config.WebConfig{AppEnv: "development"}
	log := zerolog.Nop()
	api := apiclient.New(cfg, log, cache.Noop{})
	return NewAuthHandler(cfg, api, log)
}

func performRequest(t *testing.T, h gin.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = req
	h(c)
	return recorder
}

func TestRefreshRedirect(t *testing.T) {
	h := newAuthTestHandler()

	t.Run("no refresh token bounces straight back", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/refresh?redirect=/events/42", nil)
		recorder := performRequest(t, h.Refresh, req)

		require.Equal(t, http.StatusFound, recorder.Code)
		require.Equal(t, "/events/42", recorder.Header().Get("Location"))
	})

	t.Run("missing redirect falls back to the events list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/refresh", nil)
		recorder := performRequest(t, h.Refresh, req)

		require.Equal(t, http.StatusFound, recorder.Code)
		require.Equal(t, "/events", recorder.Header().Get("Location"))
	})

	t.Run("absolute redirect targets are rejected", func(t *testing.T) {
		for _, target := range []string{"https://evil.example", "//evil.example", "evil"} {
			req := httptest.NewRequest(http.MethodGet, "/api/refresh?redirect="+target, nil)
			recorder := performRequest(t, h.Refresh, req)

			require.Equal(t, "/events", recorder.Header().Get("Location"))
		}
	})
}

func TestLogout(t *testing.T) {
	h := newAuthTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.KeyUsername, Value: "styner"})
	req.AddCookie(&http.Cookie{Name: session.KeyAccessToken, Value: "token-a"})
	req.AddCookie(&http.Cookie{Name: session.KeyRefreshToken, Value: "token-r"})
	recorder := performRequest(t, h.Logout, req)

	require.Equal(t, http.StatusFound, recorder.Code)
	require.Equal(t, "/events", recorder.Header().Get("Location"))

	cleared := map[string]bool{}
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.MaxAge < 0 {
			cleared[cookie.Name] = true
		}
	}
	require.True(t, cleared[session.KeyUsername])
	require.True(t, cleared[session.KeyAccessToken])
	require.True(t, cleared[session.KeyRefreshToken])
}
