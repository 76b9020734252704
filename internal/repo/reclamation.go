package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
	"github.com/Skotchmaster/travel_compensation/internal/filter"
	"github.com/Skotchmaster/travel_compensation/internal/models"
)

type ReclamationRepo struct {
	DB *gorm.DB
}

// ReclamationScope narrows a listing. Zero fields are not applied.
type ReclamationScope struct {
	SupplierID uint
	UserID     uint
}

func withSupplier(tx *gorm.DB) *gorm.DB { return tx.Preload("Supplier") }

func (r *ReclamationRepo) Get(ctx context.Context, id uint) (*models.Reclamation, error) {
	var rec models.Reclamation
	if err := r.DB.WithContext(ctx).Scopes(withSupplier).First(&rec, id).Error; err != nil {
		return nil, wrap("get reclamation", "reclamation", err)
	}
	return &rec, nil
}

func (r *ReclamationRepo) List(ctx context.Context, scope ReclamationScope, q filter.Query) (int64, []models.Reclamation, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Reclamation{})
	if scope.SupplierID != 0 {
		tx = tx.Where("supplier_id = ?", scope.SupplierID)
	}
	if scope.UserID != 0 {
		tx = tx.Where("user_id = ?", scope.UserID)
	}

	var items []models.Reclamation
	total, err := filter.Find(tx, q, &items, withSupplier)
	if err != nil {
		return 0, nil, apperr.Storage("list reclamations", err)
	}
	return total, items, nil
}

func (r *ReclamationRepo) Create(ctx context.Context, rec *models.Reclamation) error {
	if err := r.DB.WithContext(ctx).Create(rec).Error; err != nil {
		return wrap("create reclamation", "reclamation", err)
	}
	return nil
}

// Update writes the given columns and returns the fresh row.
func (r *ReclamationRepo) Update(ctx context.Context, id uint, changes map[string]any) (*models.Reclamation, error) {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		err := r.DB.WithContext(ctx).
			Model(&models.Reclamation{}).
			Where("id = ?", rec.ID).
			Updates(changes).Error
		if err != nil {
			return nil, wrap("update reclamation", "reclamation", err)
		}
	}
	return r.Get(ctx, id)
}
