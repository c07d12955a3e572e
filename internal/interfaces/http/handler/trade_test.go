package handler

import (
	"net/http"
	"testing"

	"github.com/carobar/backend/internal/application/refdata"
	apptrade "github.com/carobar/backend/internal/application/trade"
	"github.com/carobar/backend/internal/domain/identity"
	domain "github.com/carobar/backend/internal/domain/refdata"
	"github.com/carobar/backend/internal/infrastructure/persistence"
	"github.com/carobar/backend/internal/infrastructure/persistence/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTradeEngine(t *testing.T, caller refdata.Caller) *gin.Engine {
	t.Helper()
	db := setupTestDB(t)
	cpStore := persistence.NewGormReferenceStore[domain.Counterparty, models.CounterpartyModel](db, "name", persistence.CounterpartySortFields)
	tradeSvc := apptrade.NewService(persistence.NewGormTradeRepository(db), cpStore, zap.NewNop())

	admin := caller
	admin.Role = identity.RoleAdmin
	seed := newEngine(&admin, NewReferenceHandler[domain.Counterparty]("/counterparties",
		refdata.MustNew[domain.Counterparty](refdata.CounterpartyConfig(), cpStore)))
	rec := doJSON(t, seed, http.MethodPost, "/api/v1/counterparties", map[string]any{"name": "Kobe Auction", "type": "both"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return newEngine(&caller, NewTradeHandler(tradeSvc))
}

func TestTradeHandler_RecordAndList(t *testing.T) {
	engine := newTradeEngine(t, newCaller(identity.RoleSales))

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/sales", map[string]any{
		"chassis_no":   "ZVW30-0001",
		"maker":        "toyota",
		"color":        " pearl white ",
		"counterparty": "kobe auction",
		"amount":       "980000",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, "Sale recorded successfully", body["message"])
	sale := body["sale"].(map[string]any)
	assert.Equal(t, "TOYOTA", sale["maker"])
	assert.Equal(t, "PEARL WHITE", sale["color"])
	assert.Equal(t, "KOBE AUCTION", sale["counterparty"])
	assert.Equal(t, "980000", sale["amount"])

	rec = doJSON(t, engine, http.MethodGet, "/api/v1/sales", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["sales"], 1)

	rec = doJSON(t, engine, http.MethodGet, "/api/v1/purchases", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["purchases"])
}

func TestTradeHandler_Failures(t *testing.T) {
	tests := []struct {
		name     string
		role     identity.Role
		body     any
		status   int
		wantCode string
	}{
		{"unknown counterparty", identity.RoleSales, map[string]any{"chassis_no": "X1", "counterparty": "nobody", "amount": "10"}, http.StatusNotFound, "ERR_NOT_FOUND"},
		{"missing chassis", identity.RoleSales, map[string]any{"counterparty": "kobe auction", "amount": "10"}, http.StatusBadRequest, "ERR_VALIDATION"},
		{"malformed amount", identity.RoleSales, `{"chassis_no": "X1", "counterparty": "kobe auction", "amount": "lots"}`, http.StatusBadRequest, "ERR_INVALID_JSON"},
		{"viewer", identity.RoleViewer, map[string]any{"chassis_no": "X1", "counterparty": "kobe auction", "amount": "10"}, http.StatusForbidden, "ERR_FORBIDDEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTradeEngine(t, newCaller(tt.role))
			rec := doJSON(t, engine, http.MethodPost, "/api/v1/purchases", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantCode, errorOf(t, rec)["code"])
		})
	}
}
