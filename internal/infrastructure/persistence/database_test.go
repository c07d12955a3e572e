package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/carobar/backend/internal/application/refdata"
	"github.com/carobar/backend/internal/domain/identity"
	domain "github.com/carobar/backend/internal/domain/refdata"
	"github.com/carobar/backend/internal/domain/shared"
	"github.com/carobar/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDatabase creates a Database instance with a mocked PostgreSQL connection
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return &Database{DB: gormDB}, mock, mockDB
}

func TestGormConfig(t *testing.T) {
	cfg := GormConfig(nil)

	assert.True(t, cfg.TranslateError)
	assert.True(t, cfg.SkipDefaultTransaction)
	assert.True(t, cfg.PrepareStmt)
	assert.NotNil(t, cfg.Logger)
}

func TestDatabase_Ping(t *testing.T) {
	t.Run("successful ping", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectPing()

		assert.NoError(t, db.Ping())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func colorRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "created_by", "created_at", "updated_by", "updated_at", "company_id", "color", "description"})
}

func TestController_RekeyRollsBackOnPostgresUniqueViolation(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	companyID := uuid.New()
	creator := uuid.New()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	store := NewGormReferenceStore[domain.Color, models.ColorModel](db.DB, "color", ColorSortFields)
	ctrl := refdata.MustNew[domain.Color](refdata.ColorConfig(), store)

	mock.ExpectQuery(`SELECT \* FROM "colors" WHERE "colors"."color" = \$1 AND "colors"."company_id" = \$2`).
		WillReturnRows(colorRows().AddRow(uuid.New(), creator, created, creator, created, companyID, "RED", ""))
	mock.ExpectQuery(`SELECT \* FROM "colors" WHERE "colors"."color" = \$1 AND "colors"."company_id" = \$2`).
		WillReturnRows(colorRows())
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "colors" WHERE "colors"."color" = \$1 AND "colors"."company_id" = \$2`).
		WithArgs("RED", companyID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// a concurrent writer took BLUE after the pre-check
	mock.ExpectExec(`INSERT INTO "colors"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	caller := refdata.Caller{CompanyID: companyID, UserID: uuid.New(), Role: identity.RoleAdmin}
	_, err := ctrl.Update(context.Background(), caller, "red", &domain.Color{Color: "blue"})

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormReferenceStore_CreateTranslatesPostgresUniqueViolation(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	store := NewGormReferenceStore[domain.Color, models.ColorModel](db.DB, "color", ColorSortFields)

	mock.ExpectExec(`INSERT INTO "colors"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	rec := &domain.Color{Color: "RED"}
	rec.StampCreated(uuid.New(), uuid.New(), time.Now())
	err := store.Create(context.Background(), rec)

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
