package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Skotchmaster/travel_compensation/internal/models"
)

const (
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
	DialectSQLite   = "sqlite"
)

type Options struct {
	Dialect string
	// SQLDriver picks the database/sql driver behind the postgres dialect:
	// "pgx" (default) or "postgres" for lib/pq.
	SQLDriver string
	DSN       string
}

func configurePool(sqlDB *sql.DB) {
	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

func dialector(opts Options) (gorm.Dialector, error) {
	switch opts.Dialect {
	case DialectPostgres, "":
		if opts.SQLDriver == "postgres" {
			return postgres.New(postgres.Config{DriverName: "postgres", DSN: opts.DSN}), nil
		}
		return postgres.Open(opts.DSN), nil
	case DialectMySQL:
		return mysql.New(mysql.Config{DSN: opts.DSN}), nil
	case DialectSQLite:
		return sqlite.Open(opts.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DIALECT %q", opts.Dialect)
	}
}

func Open(ctx context.Context, opts Options) (*gorm.DB, error) {
	if opts.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	d, err := dialector(opts)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if opts.Dialect != DialectSQLite {
		configurePool(sqlDB)
	}

	if err := Ping(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Drop removes every managed table including the many2many join tables.
func Drop(ctx context.Context, db *gorm.DB) error {
	tables := []any{"supplier_payment_types", "supplier_reimbursement_types"}
	all := models.All()
	for i := len(all) - 1; i >= 0; i-- {
		tables = append(tables, all[i])
	}
	if err := db.WithContext(ctx).Migrator().DropTable(tables...); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	return nil
}
