package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
	"github.com/Skotchmaster/travel_compensation/internal/filter"
	"github.com/Skotchmaster/travel_compensation/internal/models"
)

type StationRepo struct {
	DB *gorm.DB
}

func (r *StationRepo) Get(ctx context.Context, id uint) (*models.Station, error) {
	var s models.Station
	if err := r.DB.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, wrap("get station", "station", err)
	}
	return &s, nil
}

// nameMatch restricts tx to names containing term and returns the ranking
// that puts earlier, then shorter, matches first.
func (r *StationRepo) nameMatch(tx *gorm.DB, term string) (*gorm.DB, []clause.Expression) {
	term = strings.ToLower(term)
	name := clause.Column{Table: clause.CurrentTable, Name: "name"}
	tx = tx.Where(clause.Expr{SQL: "LOWER(?) LIKE ?", Vars: []any{name, "%" + term + "%"}})

	position := "INSTR(LOWER(?), ?) ASC"
	if r.DB.Dialector.Name() == "postgres" {
		position = "STRPOS(LOWER(?), ?) ASC"
	}
	return tx, []clause.Expression{
		clause.Expr{SQL: position, Vars: []any{name, term}},
		clause.Expr{SQL: "LENGTH(?) ASC", Vars: []any{name}},
	}
}

// ListBySupplier lists the stations of one supplier. When nameFilter is set
// only matching names are returned, best match first unless q orders.
func (r *StationRepo) ListBySupplier(ctx context.Context, supplierID uint, nameFilter string, q filter.Query) (int64, []models.Station, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Station{}).Where("supplier_id = ?", supplierID)
	if nameFilter != "" {
		var rank []clause.Expression
		tx, rank = r.nameMatch(tx, nameFilter)
		q = q.RankedBy(rank...)
	}

	var items []models.Station
	total, err := filter.Find(tx, q, &items)
	if err != nil {
		return 0, nil, apperr.Storage("list stations", err)
	}
	return total, items, nil
}

// SearchBySupplierKey serves the legacy station lookup keyed by supplier.
func (r *StationRepo) SearchBySupplierKey(ctx context.Context, supplierKey, nameFilter string) ([]models.Station, error) {
	tx := r.DB.WithContext(ctx).
		Model(&models.Station{}).
		Where("supplier_id IN (?)", r.DB.WithContext(ctx).
			Model(&models.Supplier{}).
			Select("id").
			Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: supplierKey}))
	tx, rank := r.nameMatch(tx, nameFilter)

	var items []models.Station
	_, err := filter.Find(tx, filter.Query{}.RankedBy(rank...), &items)
	if err != nil {
		return nil, apperr.Storage("search stations", err)
	}
	return items, nil
}

// Upsert inserts the station unless one with the same supplier and
// migration id exists. It reports whether a row was created.
func (r *StationRepo) Upsert(ctx context.Context, s *models.Station) (bool, error) {
	var existing models.Station
	err := r.DB.WithContext(ctx).
		Where("supplier_id = ? AND migration_id = ?", s.SupplierID, s.MigrationID).
		First(&existing).Error
	if err == nil {
		*s = existing
		return false, nil
	}
	if err = wrap("find station", "station", err); !apperr.IsNotFound(err) {
		return false, err
	}
	if err := r.DB.WithContext(ctx).Create(s).Error; err != nil {
		return false, wrap("create station", "station", err)
	}
	return true, nil
}

func (r *StationRepo) ListAllBySupplier(ctx context.Context, supplierID uint) ([]models.Station, error) {
	var items []models.Station
	if err := r.DB.WithContext(ctx).Where("supplier_id = ?", supplierID).Order("id").Find(&items).Error; err != nil {
		return nil, apperr.Storage("list stations", err)
	}
	return items, nil
}
