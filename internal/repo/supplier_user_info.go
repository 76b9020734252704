package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
	"github.com/Skotchmaster/travel_compensation/internal/models"
)

type SupplierUserInfoRepo struct {
	DB *gorm.DB
}

func (r *SupplierUserInfoRepo) ListByUser(ctx context.Context, userID uint) ([]models.SupplierUserInfo, error) {
	var items []models.SupplierUserInfo
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&items).Error; err != nil {
		return nil, apperr.Storage("list supplier user info", err)
	}
	return items, nil
}

// Upsert keeps one row per user and supplier.
func (r *SupplierUserInfoRepo) Upsert(ctx context.Context, info *models.SupplierUserInfo) (*models.SupplierUserInfo, error) {
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "supplier_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payment_type_id", "reimbursement_type_id", "jojo_number", "timestamp"}),
		}).
		Create(info).Error
	if err != nil {
		return nil, wrap("upsert supplier user info", "supplier_user_info", err)
	}

	var stored models.SupplierUserInfo
	err = r.DB.WithContext(ctx).
		Where("user_id = ? AND supplier_id = ?", info.UserID, info.SupplierID).
		First(&stored).Error
	if err != nil {
		return nil, wrap("get supplier user info", "supplier_user_info", err)
	}
	return &stored, nil
}
