package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/Skotchmaster/travel_compensation/internal/config"
	"github.com/Skotchmaster/travel_compensation/internal/db"
	"github.com/Skotchmaster/travel_compensation/internal/es"
	"github.com/Skotchmaster/travel_compensation/internal/hash"
	"github.com/Skotchmaster/travel_compensation/internal/logging"
	"github.com/Skotchmaster/travel_compensation/internal/repo"
	"github.com/Skotchmaster/travel_compensation/internal/service"
	"github.com/Skotchmaster/travel_compensation/internal/service/search"
	"github.com/Skotchmaster/travel_compensation/internal/skanetrafiken"
)

const usage = `usage: manage <command> [flags]

commands:
  migrate              create or update the schema
  create-admin         create the admin account from ADMIN_EMAIL / ADMIN_PASSWORD
  setup-skanetrafiken  register Skånetrafiken and import its stations
  drop                 drop every table
  reset                drop, migrate and create-admin
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cmd := os.Args[1]

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	timeout := fs.Duration("timeout", 10*time.Minute, "overall deadline for the command")
	email := fs.String("email", "", "admin email, overrides ADMIN_EMAIL")
	password := fs.String("password", "", "admin password, overrides ADMIN_PASSWORD")
	_ = fs.Parse(os.Args[2:])

	_ = godotenv.Load()
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	if *email != "" {
		cfg.AdminEmail = *email
	}
	if *password != "" {
		cfg.AdminPassword = *password
	}

	logger := logging.New(cfg.LogLevel).With("command", cmd)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	gdb, err := db.Open(ctx, db.Options{Dialect: cfg.DBDialect, SQLDriver: cfg.DBSQLDriver, DSN: cfg.DatabaseURL})
	if err != nil {
		log.Fatalf("db init: %v", err)
	}
	defer func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	if err := run(ctx, cmd, cfg, gdb); err != nil {
		logger.Error("command_failed", "error", err)
		cancel()
		os.Exit(1)
	}
	logger.Info("command_done")
}

func run(ctx context.Context, cmd string, cfg config.Config, gdb *gorm.DB) error {
	switch cmd {
	case "migrate":
		return db.Migrate(ctx, gdb)
	case "drop":
		return db.Drop(ctx, gdb)
	case "create-admin":
		return createAdmin(ctx, cfg, newSetup(ctx, cfg, gdb, false))
	case "setup-skanetrafiken":
		setup := newSetup(ctx, cfg, gdb, true)
		res, err := setup.SetupSkanetrafiken(ctx, skanetrafiken.NewClient(cfg.SkanetrafikenURL))
		if err != nil {
			return err
		}
		fmt.Printf("stations created: %d, skipped: %d\n", res.Created, res.Skipped)
		return nil
	case "reset":
		if err := db.Drop(ctx, gdb); err != nil {
			return err
		}
		if err := db.Migrate(ctx, gdb); err != nil {
			return err
		}
		return createAdmin(ctx, cfg, newSetup(ctx, cfg, gdb, false))
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func createAdmin(ctx context.Context, cfg config.Config, setup *service.SetupService) error {
	u, err := setup.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return err
	}
	fmt.Printf("admin ready: id=%d email=%s\n", u.ID, u.Email)
	return nil
}

func newSetup(ctx context.Context, cfg config.Config, gdb *gorm.DB, withIndex bool) *service.SetupService {
	suppliers := &repo.SupplierRepo{DB: gdb}
	stations := &service.StationService{Stations: &repo.StationRepo{DB: gdb}, Suppliers: suppliers}

	if withIndex && cfg.ESURL != "" {
		esClient, err := es.NewClient(ctx, es.Options{URL: cfg.ESURL, Username: cfg.ESUser, Password: cfg.ESPassword})
		if err != nil {
			slog.Warn("es_unavailable", "error", err)
		} else {
			stations.Index = search.NewStationIndex(esClient, cfg.ESStationIndex)
		}
	}

	return &service.SetupService{
		Users:        &repo.UserRepo{DB: gdb},
		Suppliers:    suppliers,
		PaymentTypes: service.NewPaymentTypeService(repo.NewPaymentTypeRepo(gdb)),
		Stations:     stations,
		Hasher:       hash.New(cfg.BcryptCost),
	}
}
