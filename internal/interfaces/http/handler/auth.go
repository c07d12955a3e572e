package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/carobar/backend/internal/application/identity"
	"github.com/carobar/backend/internal/infrastructure/config"
	"github.com/carobar/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
	cookie      config.CookieConfig
	now         func() time.Time
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		now:         time.Now,
	}
}

// Login godoc
// @Summary      User login
// @Description  Authenticate with username and password; the token is set as an HttpOnly cookie and also returned
// @Tags         auth
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} LoginResponse
// @Failure      400,401,429,500 {object} dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Username and password are required")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Username: req.Username,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	maxAge := int(result.ExpiresAt.Sub(h.now()).Seconds())
	h.setCookie(c, result.AccessToken, maxAge)

	c.JSON(http.StatusOK, LoginResponse{
		Token: TokenResponse{
			AccessToken: result.AccessToken,
			ExpiresAt:   result.ExpiresAt,
			TokenType:   result.TokenType,
		},
		User: result.User,
	})
}

// Logout godoc
// @Summary      User logout
// @Description  Revoke the current token and clear the session cookie
// @Tags         auth
// @Success      200 {object} dto.MessageResponse
// @Failure      401,500 {object} dto.ErrorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	input := identity.LogoutInput{
		UserID:    caller.UserID,
		CompanyID: caller.CompanyID,
		TokenID:   claims.ID,
	}
	if claims.ExpiresAt != nil {
		input.ExpiresAt = claims.ExpiresAt.Time
	}
	if err := h.authService.Logout(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}

	h.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Success      200 {object} CurrentUserResponse
// @Failure      401 {object} dto.ErrorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp := CurrentUserResponse{
		ID:        caller.UserID,
		CompanyID: caller.CompanyID,
		Username:  claims.Username,
		RoleID:    int(caller.Role),
		Role:      caller.Role.String(),
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	c.JSON(http.StatusOK, gin.H{"user": resp})
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(sameSite(h.cookie.SameSite))
	c.SetCookie(h.cookie.Name, value, maxAge, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}

func sameSite(policy string) http.SameSite {
	switch strings.ToLower(policy) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
