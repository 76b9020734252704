package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
	"github.com/Skotchmaster/travel_compensation/internal/filter"
	"github.com/Skotchmaster/travel_compensation/internal/models"
)

type UserRepo struct {
	DB *gorm.DB
}

func (r *UserRepo) Get(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, wrap("get user", "user", err)
	}
	return &u, nil
}

// GetByEmail matches the address case-insensitively.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.DB.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		return nil, wrap("get user by email", "user", err)
	}
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	err := r.DB.WithContext(ctx).Create(u).Error
	if err != nil {
		err = wrap("create user", "user", err)
		if apperr.IsConflict(err) {
			return apperr.ConflictError{Resource: "user", Msg: "User already exists", Err: err}
		}
	}
	return err
}

func (r *UserRepo) List(ctx context.Context, q filter.Query) (int64, []models.User, error) {
	var items []models.User
	total, err := filter.Find(r.DB.WithContext(ctx).Model(&models.User{}), q, &items)
	if err != nil {
		return 0, nil, apperr.Storage("list users", err)
	}
	return total, items, nil
}

// Update writes the given columns. Keys are column names.
func (r *UserRepo) Update(ctx context.Context, id uint, changes map[string]any) (*models.User, error) {
	u, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		if err := r.DB.WithContext(ctx).Model(u).Updates(changes).Error; err != nil {
			return nil, wrap("update user", "user", err)
		}
	}
	return r.Get(ctx, id)
}
