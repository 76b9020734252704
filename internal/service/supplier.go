package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
	"github.com/Skotchmaster/travel_compensation/internal/filter"
	"github.com/Skotchmaster/travel_compensation/internal/models"
	"github.com/Skotchmaster/travel_compensation/internal/repo"
)

type SupplierService struct {
	Suppliers *repo.SupplierRepo
}

func (s *SupplierService) Get(ctx context.Context, id uint) (*models.Supplier, error) {
	return s.Suppliers.Get(ctx, id)
}

func (s *SupplierService) List(ctx context.Context, q filter.Query) (int64, []models.Supplier, error) {
	return s.Suppliers.List(ctx, q)
}

func (s *SupplierService) Create(ctx context.Context, req CatalogRequest) (*models.Supplier, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	if err := s.keyFree(ctx, req.Key, 0); err != nil {
		return nil, err
	}
	sup := &models.Supplier{Name: strings.TrimSpace(req.Name), Key: strings.TrimSpace(req.Key)}
	if err := s.Suppliers.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *SupplierService) Update(ctx context.Context, id uint, req CatalogRequest) (*models.Supplier, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	if err := s.keyFree(ctx, req.Key, id); err != nil {
		return nil, err
	}
	return s.Suppliers.Update(ctx, id, strings.TrimSpace(req.Name), strings.TrimSpace(req.Key))
}

func (s *SupplierService) Delete(ctx context.Context, id uint) error {
	return s.Suppliers.Delete(ctx, id)
}

func (s *SupplierService) PaymentTypes(ctx context.Context, id uint) ([]models.PaymentType, error) {
	return s.Suppliers.PaymentTypes(ctx, id)
}

func (s *SupplierService) ReimbursementTypes(ctx context.Context, id uint) ([]models.ReimbursementType, error) {
	return s.Suppliers.ReimbursementTypes(ctx, id)
}

// LinkKind selects which catalog a link request targets.
type LinkKind int

const (
	LinkPaymentType LinkKind = iota
	LinkReimbursementType
)

func (k LinkKind) String() string {
	if k == LinkReimbursementType {
		return "reimbursement_type"
	}
	return "payment_type"
}

func (s *SupplierService) Connect(ctx context.Context, kind LinkKind, supplierID uint, req LinkRequest) error {
	if err := Validate(req); err != nil {
		return err
	}
	if kind == LinkReimbursementType {
		return s.Suppliers.ConnectReimbursementType(ctx, supplierID, req.ID)
	}
	return s.Suppliers.ConnectPaymentType(ctx, supplierID, req.ID)
}

func (s *SupplierService) Disconnect(ctx context.Context, kind LinkKind, supplierID uint, req LinkRequest) error {
	if err := Validate(req); err != nil {
		return err
	}
	if kind == LinkReimbursementType {
		return s.Suppliers.DisconnectReimbursementType(ctx, supplierID, req.ID)
	}
	return s.Suppliers.DisconnectPaymentType(ctx, supplierID, req.ID)
}

func (s *SupplierService) keyFree(ctx context.Context, key string, self uint) error {
	existing, err := s.Suppliers.GetByKey(ctx, strings.TrimSpace(key))
	switch {
	case err == nil && existing.ID != self:
		return apperr.ConflictError{Resource: "supplier"}
	case err == nil, apperr.IsNotFound(err):
		return nil
	default:
		return err
	}
}
