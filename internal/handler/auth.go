package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Styner-JEON/korea-event/internal/apiclient"
	"github.com/Styner-JEON/korea-event/internal/config"
	"github.com/Styner-JEON/korea-event/internal/session"
	"github.com/Styner-JEON/korea-event/internal/validate"
)

type AuthHandler interface {
	Login(c *gin.Context)
	LoginPost(c *gin.Context)
	Signup(c *gin.Context)
	SignupPost(c *gin.Context)
	Logout(c *gin.Context)
	Refresh(c *gin.Context)
}

type authHandler struct {
	cfg *config.WebConfig
	api *apiclient.Client
	log zerolog.Logger
}

func NewAuthHandler(cfg *config.WebConfig, api *apiclient.Client, log zerolog.Logger) AuthHandler {
	return &authHandler{cfg: cfg, api: api, log: log}
}

func (h *authHandler) store(c *gin.Context) session.Store {
	return session.NewCookieStore(c, h.cfg.CookieDomain, h.cfg.IsProduction())
}

func (h *authHandler) Login(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *authHandler) LoginPost(c *gin.Context) {
	var form validate.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"message": "입력값을 확인해주세요."})
		return
	}

	result := h.api.Login(c.Request.Context(), h.store(c), form)
	if result.FieldErrors != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"errors":   result.FieldErrors,
			"username": form.Username,
		})
		return
	}
	if !result.OK() {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"message":  result.Message,
			"username": form.Username,
		})
		return
	}
	c.Redirect(http.StatusFound, "/events")
}

func (h *authHandler) Signup(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

func (h *authHandler) SignupPost(c *gin.Context) {
	var form validate.SignupForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{"message": "입력값을 확인해주세요."})
		return
	}

	result := h.api.Signup(c.Request.Context(), form)
	if result.FieldErrors != nil {
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{
			"errors":   result.FieldErrors,
			"username": form.Username,
			"email":    form.Email,
		})
		return
	}
	if !result.OK() {
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{
			"message":  result.Message,
			"username": form.Username,
			"email":    form.Email,
		})
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (h *authHandler) Logout(c *gin.Context) {
	store := h.store(c)
	username, _ := store.Get(session.KeyUsername)
	session.ClearAll(store)
	h.log.Info().Str("username", username).Msg("logout completed")
	c.Redirect(http.StatusFound, "/events")
}

// Refresh renews the access token and bounces back to the page that sent
// the user here. A failed refresh clears the whole session so the UI drops
// back to the logged-out state instead of looping.
func (h *authHandler) Refresh(c *gin.Context) {
	redirectPath := c.Query("redirect")
	if redirectPath == "" || redirectPath[0] != '/' || (len(redirectPath) > 1 && redirectPath[1] == '/') {
		redirectPath = "/events"
	}

	store := h.store(c)
	refreshToken, ok := store.Get(session.KeyRefreshToken)
	if !ok {
		c.Redirect(http.StatusFound, redirectPath)
		return
	}

	if _, err := h.api.RefreshAccessToken(c.Request.Context(), store, refreshToken); err != nil {
		h.log.Warn().Str("category", "auth").Err(err).Msg("refresh failed, clearing session")
		session.ClearAll(store)
	}
	c.Redirect(http.StatusFound, redirectPath)
}
