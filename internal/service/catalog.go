package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
	"github.com/Skotchmaster/travel_compensation/internal/filter"
	"github.com/Skotchmaster/travel_compensation/internal/models"
	"github.com/Skotchmaster/travel_compensation/internal/repo"
)

// CatalogService manages one keyed reference table.
type CatalogService[T models.PaymentType | models.ReimbursementType] struct {
	Repo  *repo.TypeRepo[T]
	build func(name, key string) *T
	idOf  func(*T) uint
}

func NewPaymentTypeService(r *repo.TypeRepo[models.PaymentType]) *CatalogService[models.PaymentType] {
	return &CatalogService[models.PaymentType]{
		Repo:  r,
		build: func(name, key string) *models.PaymentType { return &models.PaymentType{Name: name, Key: key} },
		idOf:  func(p *models.PaymentType) uint { return p.ID },
	}
}

func NewReimbursementTypeService(r *repo.TypeRepo[models.ReimbursementType]) *CatalogService[models.ReimbursementType] {
	return &CatalogService[models.ReimbursementType]{
		Repo:  r,
		build: func(name, key string) *models.ReimbursementType { return &models.ReimbursementType{Name: name, Key: key} },
		idOf:  func(p *models.ReimbursementType) uint { return p.ID },
	}
}

func (s *CatalogService[T]) Resource() string { return s.Repo.Resource }

func (s *CatalogService[T]) Get(ctx context.Context, id uint) (*T, error) {
	return s.Repo.Get(ctx, id)
}

func (s *CatalogService[T]) List(ctx context.Context, q filter.Query, supplierKey string) (int64, []T, error) {
	return s.Repo.List(ctx, q, strings.TrimSpace(supplierKey))
}

func (s *CatalogService[T]) Create(ctx context.Context, req CatalogRequest) (*T, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	if err := s.keyFree(ctx, req.Key, 0); err != nil {
		return nil, err
	}
	item := s.build(strings.TrimSpace(req.Name), strings.TrimSpace(req.Key))
	if err := s.Repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CatalogService[T]) Update(ctx context.Context, id uint, req CatalogRequest) (*T, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	if err := s.keyFree(ctx, req.Key, id); err != nil {
		return nil, err
	}
	return s.Repo.Update(ctx, id, strings.TrimSpace(req.Name), strings.TrimSpace(req.Key))
}

// Ensure returns the entry with key, creating it when missing.
func (s *CatalogService[T]) Ensure(ctx context.Context, name, key string) (*T, error) {
	return s.Repo.Ensure(ctx, s.build(name, key), key)
}

func (s *CatalogService[T]) ID(item *T) uint { return s.idOf(item) }

func (s *CatalogService[T]) keyFree(ctx context.Context, key string, self uint) error {
	existing, err := s.Repo.GetByKey(ctx, strings.TrimSpace(key))
	switch {
	case err == nil && s.idOf(existing) != self:
		return apperr.ConflictError{Resource: s.Repo.Resource}
	case err == nil, apperr.IsNotFound(err):
		return nil
	default:
		return err
	}
}
