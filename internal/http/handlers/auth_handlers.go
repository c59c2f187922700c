package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ameen0saad/TO-DO-List/domain"
	"github.com/ameen0saad/TO-DO-List/internal/http/middleware"
)

// Session cookie names. Each phase of the reset chain carries its own cookie
// so a token from one phase cannot be presented for another.
const (
	accessCookie = "jwt"
	otpCookie    = "otp_session"
	resetCookie  = "reset_session"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc      domain.AuthService
	logger       *zap.Logger
	cookieSecure bool
	accessTTL    time.Duration
	otpTTL       time.Duration
	resetTTL     time.Duration
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, logger *zap.Logger, cookieSecure bool, accessTTL, otpTTL, resetTTL time.Duration) *AuthHandlers {
	return &AuthHandlers{
		authSvc:      authSvc,
		logger:       logger,
		cookieSecure: cookieSecure,
		accessTTL:    accessTTL,
		otpTTL:       otpTTL,
		resetTTL:     resetTTL,
	}
}

// SignupRequest represents a registration request
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordRequest carries a new password with its confirmation
type PasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Signup handles user registration
func (h *AuthHandlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, h.logger, domain.Validation(err.Error()))
		return
	}

	user, err := h.authSvc.Signup(c.Request.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"message": "account created, please verify your email",
		"user":    user,
	})
}

// Login handles user login and sets the session cookie
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, h.logger, domain.Validation(err.Error()))
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}

	h.setCookie(c, accessCookie, result.Token, h.accessTTL)
	respondData(c, http.StatusOK, gin.H{"token": result.Token, "user": result.User})
}

// Logout clears the session cookie
func (h *AuthHandlers) Logout(c *gin.Context) {
	h.clearCookie(c, accessCookie)
	respondData(c, http.StatusOK, gin.H{"message": "logged out successfully"})
}

// Me returns the authenticated user's profile
func (h *AuthHandlers) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		respondErr(c, h.logger, domain.Unauthenticated("you are not logged in, please log in to get access"))
		return
	}

	profile, err := h.authSvc.Profile(c.Request.Context(), user.ID)
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"user": profile})
}

// UpdatePassword changes the authenticated user's password. Older tokens
// become stale; the fresh one is set as the new session cookie.
func (h *AuthHandlers) UpdatePassword(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		respondErr(c, h.logger, domain.Unauthenticated("you are not logged in, please log in to get access"))
		return
	}

	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, h.logger, domain.Validation(err.Error()))
		return
	}

	result, err := h.authSvc.UpdatePassword(c.Request.Context(), user.ID, req.Password, req.ConfirmPassword)
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}

	h.setCookie(c, accessCookie, result.Token, h.accessTTL)
	respondData(c, http.StatusOK, gin.H{"token": result.Token, "user": result.User})
}

// VerifyEmail consumes the emailed verification link
func (h *AuthHandlers) VerifyEmail(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondErr(c, h.logger, domain.Validation("invalid user ID"))
		return
	}

	if err := h.authSvc.VerifyEmail(c.Request.Context(), uint(userID), c.Param("token")); err != nil {
		respondErr(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"message": "email verified successfully, you can now log in"})
}

// ForgotPassword starts the password reset chain: an OTP is emailed and an
// otp-session cookie is set for the verification step.
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, h.logger, domain.Validation(err.Error()))
		return
	}

	token, err := h.authSvc.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}

	h.setCookie(c, otpCookie, token, h.otpTTL)
	respondData(c, http.StatusOK, gin.H{
		"message": "OTP sent to your email",
		"token":   token,
	})
}

// VerifyOTP exchanges a valid OTP for a reset-session credential
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req struct {
		OTP string `json:"otp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, h.logger, domain.Validation(err.Error()))
		return
	}

	session := sessionToken(c, otpCookie)
	token, err := h.authSvc.VerifyOTP(c.Request.Context(), session, req.OTP)
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}

	h.clearCookie(c, otpCookie)
	h.setCookie(c, resetCookie, token, h.resetTTL)
	respondData(c, http.StatusOK, gin.H{
		"message": "OTP verified, you can now reset your password",
		"token":   token,
	})
}

// ResetPassword finishes the reset chain and logs the user in
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, h.logger, domain.Validation(err.Error()))
		return
	}

	session := sessionToken(c, resetCookie)
	result, err := h.authSvc.ResetPassword(c.Request.Context(), session, req.Password, req.ConfirmPassword)
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}

	h.clearCookie(c, resetCookie)
	h.setCookie(c, accessCookie, result.Token, h.accessTTL)
	respondData(c, http.StatusOK, gin.H{"token": result.Token, "user": result.User})
}

func (h *AuthHandlers) setCookie(c *gin.Context, name, value string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(name, value, int(ttl.Seconds()), "/", "", h.cookieSecure, true)
}

func (h *AuthHandlers) clearCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(name, "", -1, "/", "", h.cookieSecure, true)
}

// sessionToken reads the phase credential from the Authorization header or
// the phase cookie.
func sessionToken(c *gin.Context, cookieName string) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}
