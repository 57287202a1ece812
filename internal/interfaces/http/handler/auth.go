package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	identityapp "github.com/chronotes/backend/internal/application/identity"
	"github.com/chronotes/backend/internal/infrastructure/auth"
	"github.com/chronotes/backend/internal/infrastructure/config"
	"github.com/chronotes/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	cookies     config.CookieConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identityapp.AuthService, cookies config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
	}
}

// Register creates a new account and starts a session
func (h *AuthHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setTokenCookies(c, result.Tokens)
	h.Created(c, result)
}

// Login authenticates a user with email and password
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setTokenCookies(c, result.Tokens)
	h.Success(c, result)
}

// Logout revokes the current access token and clears session cookies
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}

	h.clearTokenCookies(c)
	h.Success(c, gin.H{"message": "Logged out successfully"})
}

// Refresh exchanges a refresh token for a new token pair. The token is
// taken from the request body, falling back to the refresh_token cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identityapp.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		if cookie, cookieErr := c.Cookie("refresh_token"); cookieErr == nil && cookie != "" {
			req.RefreshToken = cookie
		} else {
			h.BadRequest(c, "Refresh token is required")
			return
		}
	}

	result, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setTokenCookies(c, result.Tokens)
	h.Success(c, result)
}

// Me returns the currently authenticated user
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.authService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, tokens *auth.TokenPair) {
	if tokens == nil {
		return
	}

	sameSite := parseSameSite(h.cookies.SameSite)
	c.SetSameSite(sameSite)

	accessMaxAge := int(time.Until(tokens.AccessTokenExpiresAt).Seconds())
	refreshMaxAge := int(time.Until(tokens.RefreshTokenExpiresAt).Seconds())

	c.SetCookie("access_token", tokens.AccessToken, accessMaxAge, h.cookies.Path, h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie("refresh_token", tokens.RefreshToken, refreshMaxAge, h.cookies.Path, h.cookies.Domain, h.cookies.Secure, true)
}

func (h *AuthHandler) clearTokenCookies(c *gin.Context) {
	c.SetSameSite(parseSameSite(h.cookies.SameSite))
	c.SetCookie("access_token", "", -1, h.cookies.Path, h.cookies.Domain, h.cookies.Secure, true)
	c.SetCookie("refresh_token", "", -1, h.cookies.Path, h.cookies.Domain, h.cookies.Secure, true)
}

func parseSameSite(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
