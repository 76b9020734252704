package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
	"github.com/Skotchmaster/travel_compensation/internal/filter"
	"github.com/Skotchmaster/travel_compensation/internal/models"
)

// TypeRepo serves the keyed reference tables a supplier can be linked to.
type TypeRepo[T models.PaymentType | models.ReimbursementType] struct {
	DB         *gorm.DB
	Resource   string
	JoinTable  string
	JoinColumn string
}

func NewPaymentTypeRepo(db *gorm.DB) *TypeRepo[models.PaymentType] {
	return &TypeRepo[models.PaymentType]{
		DB:         db,
		Resource:   "payment_type",
		JoinTable:  "supplier_payment_types",
		JoinColumn: "payment_type_id",
	}
}

func NewReimbursementTypeRepo(db *gorm.DB) *TypeRepo[models.ReimbursementType] {
	return &TypeRepo[models.ReimbursementType]{
		DB:         db,
		Resource:   "reimbursement_type",
		JoinTable:  "supplier_reimbursement_types",
		JoinColumn: "reimbursement_type_id",
	}
}

func (r *TypeRepo[T]) Get(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, wrap("get "+r.Resource, r.Resource, err)
	}
	return &item, nil
}

func (r *TypeRepo[T]) GetByKey(ctx context.Context, key string) (*T, error) {
	var item T
	err := r.DB.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).
		First(&item).Error
	if err != nil {
		return nil, wrap("get "+r.Resource+" by key", r.Resource, err)
	}
	return &item, nil
}

// List runs q over the table. A non-empty supplierKey narrows the result to
// the rows linked to that supplier.
func (r *TypeRepo[T]) List(ctx context.Context, q filter.Query, supplierKey string) (int64, []T, error) {
	tx := r.DB.WithContext(ctx).Model(new(T))
	if supplierKey != "" {
		linked := r.DB.WithContext(ctx).
			Table(r.JoinTable).
			Select(r.JoinTable+"."+r.JoinColumn).
			Joins("JOIN supplier ON supplier.id = "+r.JoinTable+".supplier_id").
			Where(clause.Eq{Column: clause.Column{Table: "supplier", Name: "key"}, Value: supplierKey})
		tx = tx.Where("id IN (?)", linked)
	}

	var items []T
	total, err := filter.Find(tx, q, &items)
	if err != nil {
		return 0, nil, apperr.Storage("list "+r.Resource, err)
	}
	return total, items, nil
}

func (r *TypeRepo[T]) Create(ctx context.Context, item *T) error {
	return wrap("create "+r.Resource, r.Resource, r.DB.WithContext(ctx).Create(item).Error)
}

func (r *TypeRepo[T]) Update(ctx context.Context, id uint, name, key string) (*T, error) {
	if _, err := r.Get(ctx, id); err != nil {
		return nil, err
	}
	err := r.DB.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "key": key}).Error
	if err != nil {
		return nil, wrap("update "+r.Resource, r.Resource, err)
	}
	return r.Get(ctx, id)
}

// Ensure returns the row with key, creating it with name when missing.
func (r *TypeRepo[T]) Ensure(ctx context.Context, item *T, key string) (*T, error) {
	existing, err := r.GetByKey(ctx, key)
	if err == nil {
		return existing, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}
	if err := r.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
