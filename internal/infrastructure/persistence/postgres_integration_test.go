//go:build integration

package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/carobar/backend/internal/application/refdata"
	"github.com/carobar/backend/internal/domain/identity"
	domain "github.com/carobar/backend/internal/domain/refdata"
	"github.com/carobar/backend/internal/domain/shared"
	"github.com/carobar/backend/internal/domain/trade"
	"github.com/carobar/backend/internal/infrastructure/migration"
	"github.com/carobar/backend/internal/infrastructure/persistence/models"
	"github.com/carobar/backend/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgres starts a PostgreSQL container and applies the embedded migrations
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("carobar_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("carobar"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrateDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	m, err := migration.New(migrateDB, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
	require.NoError(t, m.Close())

	db, err := gorm.Open(gormpostgres.Open(dsn), GormConfig(nil))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, tenant.NewGuard(models.TenantTables()...).Register(db))
	return db
}

func TestPostgres_ReferenceStore(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	companyA, companyB := uuid.New(), uuid.New()
	admin := refdata.Caller{CompanyID: companyA, UserID: uuid.New(), Role: identity.RoleAdmin}

	store := NewGormReferenceStore[domain.Maker, models.MakerModel](db, "maker_name", MakerSortFields)
	makers := refdata.MustNew(refdata.MakerConfig(), refdata.Store[domain.Maker](store), refdata.WithLogger(zap.NewNop()))

	t.Run("unique index rejects a duplicate key in one company", func(t *testing.T) {
		first := &domain.Maker{MakerName: "TOYOTA"}
		first.StampCreated(companyA, admin.UserID, time.Now())
		require.NoError(t, store.Create(ctx, first))

		dup := &domain.Maker{MakerName: "TOYOTA"}
		dup.StampCreated(companyA, admin.UserID, time.Now())
		assert.ErrorIs(t, store.Create(ctx, dup), shared.ErrAlreadyExists)

		other := &domain.Maker{MakerName: "TOYOTA"}
		other.StampCreated(companyB, uuid.New(), time.Now())
		assert.NoError(t, store.Create(ctx, other))
	})

	t.Run("rename keeps creation stamps", func(t *testing.T) {
		created, err := makers.Create(ctx, admin, &domain.Maker{MakerName: "nissan", CountryCode: "JP"})
		require.NoError(t, err)

		updated, err := makers.Update(ctx, admin, "NISSAN", &domain.Maker{MakerName: "Datsun", CountryCode: "JP"})
		require.NoError(t, err)
		assert.Equal(t, "DATSUN", updated.MakerName)

		_, err = store.FindUnique(ctx, refdata.CompositeKey{CompanyID: companyA, Value: "NISSAN"})
		assert.ErrorIs(t, err, shared.ErrNotFound)

		got, err := store.FindUnique(ctx, refdata.CompositeKey{CompanyID: companyA, Value: "DATSUN"})
		require.NoError(t, err)
		assert.Equal(t, created.CreatedBy, got.CreatedBy)
		assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Millisecond)
		assert.Equal(t, admin.UserID, got.UpdatedBy)
	})

	t.Run("rename onto an existing key leaves both records", func(t *testing.T) {
		_, err := makers.Update(ctx, admin, "DATSUN", &domain.Maker{MakerName: "toyota"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeAlreadyExists, domainErr.Code)

		list, err := makers.List(ctx, admin)
		require.NoError(t, err)
		names := make([]string, 0, len(list))
		for _, m := range list {
			names = append(names, m.MakerName)
		}
		assert.Equal(t, []string{"DATSUN", "TOYOTA"}, names)
	})
}

func TestPostgres_TradeRepository(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	repo := NewGormTradeRepository(db)
	companyID := uuid.New()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newTestTransaction(t, companyID, trade.KindPurchase, "ACME MOTORS", day)))
	require.NoError(t, repo.Create(ctx, newTestTransaction(t, companyID, trade.KindSale, "ACME MOTORS", day.AddDate(0, 0, 3))))
	require.NoError(t, repo.Create(ctx, newTestTransaction(t, uuid.New(), trade.KindSale, "ACME MOTORS", day)))

	n, err := repo.CountByCounterparty(ctx, companyID, "ACME MOTORS")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	sales, err := repo.List(ctx, companyID, trade.KindSale)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "1250000.5", sales[0].Amount.String())
}
