package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/ameen0saad/TO-DO-List/domain"
)

const stateCookie = "oauth_state"

// googleUserInfo is the subset of the Google userinfo response we consume.
type googleUserInfo struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
}

// OAuthHandlers handles the Google OAuth login flow
type OAuthHandlers struct {
	authSvc      domain.AuthService
	oauthCfg     *oauth2.Config
	logger       *zap.Logger
	frontendURL  string
	cookieSecure bool
	accessTTL    time.Duration
}

// NewOAuthHandlers creates new OAuth handlers
func NewOAuthHandlers(authSvc domain.AuthService, oauthCfg *oauth2.Config, logger *zap.Logger, frontendURL string, cookieSecure bool, accessTTL time.Duration) *OAuthHandlers {
	return &OAuthHandlers{
		authSvc:      authSvc,
		oauthCfg:     oauthCfg,
		logger:       logger,
		frontendURL:  frontendURL,
		cookieSecure: cookieSecure,
		accessTTL:    accessTTL,
	}
}

// GoogleLogin redirects to the Google consent screen with a fresh state nonce
func (h *OAuthHandlers) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, int((10 * time.Minute).Seconds()), "/", "", h.cookieSecure, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthCfg.AuthCodeURL(state))
}

// GoogleCallback completes the OAuth exchange and logs the user in. First
// login creates a verified account with no local password.
func (h *OAuthHandlers) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		respondErr(c, h.logger, domain.Unauthenticated("invalid OAuth state"))
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", h.cookieSecure, true)

	code := c.Query("code")
	if code == "" {
		respondErr(c, h.logger, domain.Validation("missing OAuth code"))
		return
	}

	ctx := c.Request.Context()
	token, err := h.oauthCfg.Exchange(ctx, code)
	if err != nil {
		respondErr(c, h.logger, domain.Unauthenticated("OAuth code exchange failed"))
		return
	}

	resp, err := h.oauthCfg.Client(ctx, token).Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		respondErr(c, h.logger, err)
		return
	}
	if info.Email == "" || !info.VerifiedEmail {
		respondErr(c, h.logger, domain.Unauthenticated("Google account email is not verified"))
		return
	}

	result, err := h.authSvc.FindOrCreateOAuthUser(ctx, info.Name, info.Email)
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(accessCookie, result.Token, int(h.accessTTL.Seconds()), "/", "", h.cookieSecure, true)
	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL)
}
