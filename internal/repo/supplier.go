package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
	"github.com/Skotchmaster/travel_compensation/internal/filter"
	"github.com/Skotchmaster/travel_compensation/internal/models"
)

type SupplierRepo struct {
	DB *gorm.DB
}

func (r *SupplierRepo) Get(ctx context.Context, id uint) (*models.Supplier, error) {
	var s models.Supplier
	if err := r.DB.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, wrap("get supplier", "supplier", err)
	}
	return &s, nil
}

func (r *SupplierRepo) GetByKey(ctx context.Context, key string) (*models.Supplier, error) {
	var s models.Supplier
	if err := r.DB.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).First(&s).Error; err != nil {
		return nil, wrap("get supplier by key", "supplier", err)
	}
	return &s, nil
}

func (r *SupplierRepo) List(ctx context.Context, q filter.Query) (int64, []models.Supplier, error) {
	var items []models.Supplier
	total, err := filter.Find(r.DB.WithContext(ctx).Model(&models.Supplier{}), q, &items)
	if err != nil {
		return 0, nil, apperr.Storage("list suppliers", err)
	}
	return total, items, nil
}

func (r *SupplierRepo) Create(ctx context.Context, s *models.Supplier) error {
	return wrap("create supplier", "supplier", r.DB.WithContext(ctx).Create(s).Error)
}

func (r *SupplierRepo) Update(ctx context.Context, id uint, name, key string) (*models.Supplier, error) {
	s, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Name = name
	s.Key = key
	if err := r.DB.WithContext(ctx).Save(s).Error; err != nil {
		return nil, wrap("update supplier", "supplier", err)
	}
	return s, nil
}

func (r *SupplierRepo) Delete(ctx context.Context, id uint) error {
	s, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(s).Association("PaymentTypes").Clear(); err != nil {
			return err
		}
		if err := tx.Model(s).Association("ReimbursementTypes").Clear(); err != nil {
			return err
		}
		return tx.Delete(s).Error
	})
	return wrap("delete supplier", "supplier", err)
}

func (r *SupplierRepo) PaymentTypes(ctx context.Context, id uint) ([]models.PaymentType, error) {
	s, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var items []models.PaymentType
	if err := r.DB.WithContext(ctx).Model(s).Order("id").Association("PaymentTypes").Find(&items); err != nil {
		return nil, apperr.Storage("supplier payment types", err)
	}
	return items, nil
}

func (r *SupplierRepo) ReimbursementTypes(ctx context.Context, id uint) ([]models.ReimbursementType, error) {
	s, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var items []models.ReimbursementType
	if err := r.DB.WithContext(ctx).Model(s).Order("id").Association("ReimbursementTypes").Find(&items); err != nil {
		return nil, apperr.Storage("supplier reimbursement types", err)
	}
	return items, nil
}

func (r *SupplierRepo) ConnectPaymentType(ctx context.Context, supplierID, typeID uint) error {
	s, pt, err := r.supplierAndPaymentType(ctx, supplierID, typeID)
	if err != nil {
		return err
	}
	return apperr.Storage("connect payment type", r.DB.WithContext(ctx).Model(s).Association("PaymentTypes").Append(pt))
}

// DisconnectPaymentType reports a NotFoundError when the two are not linked.
func (r *SupplierRepo) DisconnectPaymentType(ctx context.Context, supplierID, typeID uint) error {
	s, pt, err := r.supplierAndPaymentType(ctx, supplierID, typeID)
	if err != nil {
		return err
	}
	n, err := countLinked(r.DB.WithContext(ctx), "supplier_payment_types", "payment_type_id", supplierID, typeID)
	if err != nil {
		return apperr.Storage("disconnect payment type", err)
	}
	if n == 0 {
		return apperr.NotFoundError{Resource: "payment_type", Msg: "payment_type is not connected to this supplier"}
	}
	return apperr.Storage("disconnect payment type", r.DB.WithContext(ctx).Model(s).Association("PaymentTypes").Delete(pt))
}

func (r *SupplierRepo) ConnectReimbursementType(ctx context.Context, supplierID, typeID uint) error {
	s, rt, err := r.supplierAndReimbursementType(ctx, supplierID, typeID)
	if err != nil {
		return err
	}
	return apperr.Storage("connect reimbursement type", r.DB.WithContext(ctx).Model(s).Association("ReimbursementTypes").Append(rt))
}

func (r *SupplierRepo) DisconnectReimbursementType(ctx context.Context, supplierID, typeID uint) error {
	s, rt, err := r.supplierAndReimbursementType(ctx, supplierID, typeID)
	if err != nil {
		return err
	}
	n, err := countLinked(r.DB.WithContext(ctx), "supplier_reimbursement_types", "reimbursement_type_id", supplierID, typeID)
	if err != nil {
		return apperr.Storage("disconnect reimbursement type", err)
	}
	if n == 0 {
		return apperr.NotFoundError{Resource: "reimbursement_type", Msg: "reimbursement_type is not connected to this supplier"}
	}
	return apperr.Storage("disconnect reimbursement type", r.DB.WithContext(ctx).Model(s).Association("ReimbursementTypes").Delete(rt))
}

func (r *SupplierRepo) supplierAndPaymentType(ctx context.Context, supplierID, typeID uint) (*models.Supplier, *models.PaymentType, error) {
	notFound := apperr.NotFoundError{Resource: "payment_type", Msg: "Could not find supplier or payment_type"}
	s, err := r.Get(ctx, supplierID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, nil, notFound
		}
		return nil, nil, err
	}
	var pt models.PaymentType
	if err := r.DB.WithContext(ctx).First(&pt, typeID).Error; err != nil {
		if err = wrap("get payment type", "payment_type", err); apperr.IsNotFound(err) {
			return nil, nil, notFound
		}
		return nil, nil, err
	}
	return s, &pt, nil
}

func (r *SupplierRepo) supplierAndReimbursementType(ctx context.Context, supplierID, typeID uint) (*models.Supplier, *models.ReimbursementType, error) {
	notFound := apperr.NotFoundError{Resource: "reimbursement_type", Msg: "Could not find supplier or reimbursement_type"}
	s, err := r.Get(ctx, supplierID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, nil, notFound
		}
		return nil, nil, err
	}
	var rt models.ReimbursementType
	if err := r.DB.WithContext(ctx).First(&rt, typeID).Error; err != nil {
		if err = wrap("get reimbursement type", "reimbursement_type", err); apperr.IsNotFound(err) {
			return nil, nil, notFound
		}
		return nil, nil, err
	}
	return s, &rt, nil
}

func countLinked(tx *gorm.DB, joinTable, typeColumn string, supplierID, typeID uint) (int64, error) {
	var n int64
	err := tx.Table(joinTable).
		Where("supplier_id = ? AND "+typeColumn+" = ?", supplierID, typeID).
		Count(&n).Error
	return n, err
}
