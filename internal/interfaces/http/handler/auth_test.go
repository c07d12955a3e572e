package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/carobar/backend/internal/application/identity"
	domainidentity "github.com/carobar/backend/internal/domain/identity"
	"github.com/carobar/backend/internal/infrastructure/auth"
	"github.com/carobar/backend/internal/infrastructure/cache"
	"github.com/carobar/backend/internal/infrastructure/config"
	"github.com/carobar/backend/internal/infrastructure/persistence"
	"github.com/carobar/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testCookie = config.CookieConfig{Name: "carobar_token", Path: "/", SameSite: "strict"}

type authFixture struct {
	engine    *gin.Engine
	companyID uuid.UUID
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	db := setupTestDB(t)

	memCache := cache.NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = memCache.Close() })
	revocations := auth.NewRevocations(memCache)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: time.Hour,
		Issuer:                "carobar-test",
	})
	authService := identity.NewAuthService(persistence.NewGormUserRepository(db), jwtService, revocations, zap.NewNop())

	companyID := uuid.New()
	_, err := authService.CreateUser(context.Background(), identity.CreateUserInput{
		CompanyID: companyID,
		Username:  "Alice",
		Password:  "s3cret-password",
		RoleID:    int(domainidentity.RoleManager),
	})
	require.NoError(t, err)

	h := NewAuthHandler(authService, testCookie)
	jwtCfg := middleware.DefaultJWTConfig(jwtService)
	jwtCfg.Revocations = revocations
	jwtCfg.CookieName = testCookie.Name

	engine := gin.New()
	api := engine.Group("/api/v1", middleware.RequestID(), middleware.JWTAuthMiddlewareWithConfig(jwtCfg))
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/me", h.Me)

	return &authFixture{engine: engine, companyID: companyID}
}

func (f *authFixture) login(t *testing.T) *http.Cookie {
	t.Helper()
	rec := doJSON(t, f.engine, http.MethodPost, "/api/v1/auth/login", map[string]any{"username": " alice ", "password": "s3cret-password"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie.Name {
			return c
		}
	}
	t.Fatal("login did not set the session cookie")
	return nil
}

func (f *authFixture) withCookie(method, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Login(t *testing.T) {
	f := newAuthFixture(t)

	rec := doJSON(t, f.engine, http.MethodPost, "/api/v1/auth/login", map[string]any{"username": "alice", "password": "s3cret-password"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	token := body["token"].(map[string]any)
	assert.NotEmpty(t, token["access_token"])
	assert.Equal(t, "Bearer", token["token_type"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, f.companyID.String(), user["company_id"])
	assert.Equal(t, "manager", user["role"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, testCookie.Name, cookies[0].Name)
	assert.Equal(t, token["access_token"], cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
	assert.Greater(t, cookies[0].MaxAge, 0)
}

func TestAuthHandler_LoginFailures(t *testing.T) {
	f := newAuthFixture(t)

	tests := []struct {
		name     string
		body     any
		status   int
		wantCode string
	}{
		{"missing password", map[string]any{"username": "alice"}, http.StatusBadRequest, "ERR_BAD_REQUEST"},
		{"wrong password", map[string]any{"username": "alice", "password": "nope"}, http.StatusUnauthorized, "ERR_UNAUTHORIZED"},
		{"unknown user", map[string]any{"username": "mallory", "password": "s3cret-password"}, http.StatusUnauthorized, "ERR_UNAUTHORIZED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, f.engine, http.MethodPost, "/api/v1/auth/login", tt.body)
			require.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.wantCode, errorOf(t, rec)["code"])
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	f := newAuthFixture(t)
	cookie := f.login(t)

	rec := f.withCookie(http.MethodGet, "/api/v1/auth/me", cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	user := decodeBody(t, rec)["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, f.companyID.String(), user["company_id"])
	assert.EqualValues(t, domainidentity.RoleManager, user["role_id"])

	rec = doJSON(t, f.engine, http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_LogoutRevokesToken(t *testing.T) {
	f := newAuthFixture(t)
	cookie := f.login(t)

	rec := f.withCookie(http.MethodPost, "/api/v1/auth/logout", cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Logged out successfully", decodeBody(t, rec)["message"])

	setCookie := rec.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(setCookie, testCookie.Name+"=;"), setCookie)
	assert.Contains(t, setCookie, "Max-Age=0")

	rec = f.withCookie(http.MethodGet, "/api/v1/auth/me", cookie)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "ERR_TOKEN_REVOKED", errorOf(t, rec)["code"])
}

func TestSameSite(t *testing.T) {
	assert.Equal(t, http.SameSiteStrictMode, sameSite("Strict"))
	assert.Equal(t, http.SameSiteNoneMode, sameSite("none"))
	assert.Equal(t, http.SameSiteLaxMode, sameSite("lax"))
	assert.Equal(t, http.SameSiteLaxMode, sameSite(""))
}
