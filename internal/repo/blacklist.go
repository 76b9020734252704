package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
	"github.com/Skotchmaster/travel_compensation/internal/models"
)

type BlacklistRepo struct {
	DB *gorm.DB
}

func (r *BlacklistRepo) IsRevoked(ctx context.Context, token string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&models.BlacklistToken{}).
		Where("token = ?", token).
		Count(&n).Error
	if err != nil {
		return false, apperr.Storage("check blacklist", err)
	}
	return n > 0, nil
}

// Revoke records token as blacklisted. Revoking the same token twice, even
// concurrently, keeps a single row with the first timestamp.
func (r *BlacklistRepo) Revoke(ctx context.Context, token string, at time.Time) error {
	row := models.BlacklistToken{Token: token, BlacklistedOn: at}
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token"}}, DoNothing: true}).
		Create(&row).Error
	return apperr.Storage("revoke token", err)
}
