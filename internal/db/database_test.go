package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenRejectsEmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), Options{Dialect: DialectSQLite})
	require.Error(t, err)
}

func TestOpenRejectsUnknownDialect(t *testing.T) {
	_, err := Open(context.Background(), Options{Dialect: "oracle", DSN: "x"})
	require.ErrorContains(t, err, "unsupported DB_DIALECT")
}

func TestMigrateAndDropSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, Options{Dialect: DialectSQLite, DSN: ":memory:"})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(ctx, db))
	for _, table := range []string{"users", "blacklist_tokens", "supplier", "reclamation", "payment_type", "reimbursement_type", "station", "supplier_user_info", "supplier_payment_types"} {
		require.True(t, db.Migrator().HasTable(table), table)
	}

	require.NoError(t, Drop(ctx, db))
	require.False(t, db.Migrator().HasTable("users"))
	require.False(t, db.Migrator().HasTable("supplier_payment_types"))
}
