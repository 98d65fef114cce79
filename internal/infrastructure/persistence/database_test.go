package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/distributor/backend/internal/domain/debt"
	"github.com/distributor/backend/internal/domain/shared"
	"github.com/distributor/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
)

func testDatabaseConfig() *config.DatabaseConfig {
	return &config.DatabaseConfig{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	}
}

// setupTestDB opens an in-memory SQLite database with the distributor schema.
// A single connection keeps every query on the same in-memory database.
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := Open(sqlite.Open(":memory:"), testDatabaseConfig(), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// newMockDatabase creates a Database over the Postgres dialect with a mocked connection
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	db, err := Open(dialector, testDatabaseConfig(), zap.NewNop())
	require.NoError(t, err)
	return db, mock, mockDB
}

func TestDatabase_PingAndStats(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Ping())
	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)
}

func TestDatabase_Close(t *testing.T) {
	db, err := Open(sqlite.Open(":memory:"), testDatabaseConfig(), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, db.Close())
	assert.Error(t, db.Ping())
}

func TestGormDebtRepository_FindByIDForUpdate_LocksRow(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	tenantID := uuid.New()
	debtID := uuid.New()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "debts" WHERE tenant_id = \$1 AND id = \$2 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "tenant_id", "sales_person_id", "original_amount", "amount",
			"status", "due_date", "version", "created_at", "updated_at",
		}).AddRow(
			debtID, tenantID, uuid.New(), "1000.00", "400.00",
			"pending", time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), 3, now, now,
		))

	repo := NewGormDebtRepository(db.DB)
	d, err := repo.FindByIDForUpdate(context.Background(), tenantID, debtID)
	require.NoError(t, err)

	assert.Equal(t, debtID, d.ID)
	assert.Equal(t, 3, d.Version)
	assert.True(t, d.Amount.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, debt.DebtStatusPending, d.Status)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), d.DueDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDebtRepository_FindByIDForTenant_DoesNotLock(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "debts" WHERE tenant_id = \$1 AND id = \$2 ORDER BY "debts"."id" LIMIT \$3$`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewGormDebtRepository(db.DB)
	_, err := repo.FindByIDForTenant(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDebtRepository_SaveWithLock_VersionMismatch(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	d, err := debt.NewDebt(uuid.New(), uuid.New(), decimal.NewFromInt(500), time.Now(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, d.ApplyPayment(decimal.NewFromInt(100), time.Now()))

	mock.ExpectExec(`UPDATE "debts" SET .* WHERE tenant_id = \$\d+ AND id = \$\d+ AND version = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewGormDebtRepository(db.DB)
	err = repo.SaveWithLock(context.Background(), d)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "OPTIMISTIC_LOCK_ERROR", domainErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormInvoiceRepository_FindByIDForUpdate_LocksRow(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE tenant_id = \$1 AND id = \$2 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewGormInvoiceRepository(db.DB)
	_, err := repo.FindByIDForUpdate(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreInventoryRepository_FindForUpdate_LocksRow(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "store_inventory" WHERE tenant_id = \$1 AND store_id = \$2 AND product_id = \$3 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewGormStoreInventoryRepository(db.DB)
	_, err := repo.FindByStoreAndProductForUpdate(context.Background(), uuid.New(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransferRepository_FindByIDForUpdate_LocksRow(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "inventory_transfers" WHERE tenant_id = \$1 AND id = \$2 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewGormTransferRepository(db.DB)
	_, err := repo.FindByIDForUpdate(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
