package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
	"github.com/Skotchmaster/travel_compensation/internal/hash"
	"github.com/Skotchmaster/travel_compensation/internal/models"
	"github.com/Skotchmaster/travel_compensation/internal/repo"
	"github.com/Skotchmaster/travel_compensation/internal/skanetrafiken"
)

// StopSource lists the stops of the Skånetrafiken network.
type StopSource interface {
	Stops(ctx context.Context) ([]skanetrafiken.Stop, error)
}

type SetupService struct {
	Users        *repo.UserRepo
	Suppliers    *repo.SupplierRepo
	PaymentTypes *CatalogService[models.PaymentType]
	Stations     *StationService
	Hasher       hash.Hasher
}

// EnsureAdmin creates the admin account, or promotes the existing user with
// that email.
func (s *SetupService) EnsureAdmin(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errors.New("admin email and password are required")
	}

	existing, err := s.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Admin {
			return existing, nil
		}
		return s.Users.Update(ctx, existing.ID, map[string]any{"admin": true})
	case !apperr.IsNotFound(err):
		return nil, err
	}

	hashed, err := s.Hasher.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Name:         "admin",
		Email:        email,
		Password:     hashed,
		Admin:        true,
		AgreedTerms:  true,
		RegisteredOn: time.Now().UTC(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SetupSkanetrafiken ensures the supplier and its payment types exist and
// imports its stop areas.
func (s *SetupService) SetupSkanetrafiken(ctx context.Context, src StopSource) (ImportResult, error) {
	sup, err := s.Suppliers.GetByKey(ctx, skanetrafiken.SupplierKey)
	if apperr.IsNotFound(err) {
		sup = &models.Supplier{Name: skanetrafiken.SupplierName, Key: skanetrafiken.SupplierKey}
		err = s.Suppliers.Create(ctx, sup)
	}
	if err != nil {
		return ImportResult{}, err
	}

	for _, pt := range skanetrafiken.PaymentTypes {
		item, err := s.PaymentTypes.Ensure(ctx, pt.Name, pt.Key)
		if err != nil {
			return ImportResult{}, err
		}
		if err := s.Suppliers.ConnectPaymentType(ctx, sup.ID, s.PaymentTypes.ID(item)); err != nil {
			return ImportResult{}, err
		}
	}

	stops, err := src.Stops(ctx)
	if err != nil {
		return ImportResult{}, err
	}
	stations := make([]models.Station, 0, len(stops))
	for _, st := range stops {
		stations = append(stations, models.Station{Name: st.Name, MigrationID: st.ID})
	}

	res, err := s.Stations.Import(ctx, sup.ID, stations)
	if err != nil {
		return res, err
	}
	slog.Info("skanetrafiken_imported", "supplier_id", sup.ID, "created", res.Created, "skipped", res.Skipped)
	return res, nil
}
