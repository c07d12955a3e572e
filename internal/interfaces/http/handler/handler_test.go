package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/carobar/backend/internal/application/refdata"
	"github.com/carobar/backend/internal/domain/identity"
	"github.com/carobar/backend/internal/infrastructure/persistence"
	"github.com/carobar/backend/internal/infrastructure/persistence/models"
	"github.com/carobar/backend/internal/infrastructure/persistence/tenant"
	"github.com/carobar/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), persistence.GormConfig(nil))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	require.NoError(t, tenant.NewGuard(models.TenantTables()...).Register(db))
	return db
}

func newCaller(role identity.Role) refdata.Caller {
	return refdata.Caller{CompanyID: uuid.New(), UserID: uuid.New(), Role: role}
}

// asCaller stands in for the JWT middleware. A nil caller leaves the request unauthenticated.
func asCaller(caller *refdata.Caller) gin.HandlerFunc {
	return func(c *gin.Context) {
		if caller != nil {
			c.Set(middleware.JWTCallerKey, *caller)
		}
		c.Next()
	}
}

type registrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

func newEngine(caller *refdata.Caller, handlers ...registrar) *gin.Engine {
	engine := gin.New()
	api := engine.Group("/api/v1", middleware.RequestID(), asCaller(caller))
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := decodeBody(t, rec)
	require.Equal(t, false, body["success"])
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, rec.Body.String())
	return errObj
}
