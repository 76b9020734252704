package service

import (
	"context"

	"github.com/Skotchmaster/travel_compensation/internal/models"
	"github.com/Skotchmaster/travel_compensation/internal/repo"
	"github.com/Skotchmaster/travel_compensation/internal/tokens"
)

type SupplierUserInfoService struct {
	Infos     *repo.SupplierUserInfoRepo
	Suppliers *repo.SupplierRepo
}

func (s *SupplierUserInfoService) List(ctx context.Context, caller tokens.Identity) ([]models.SupplierUserInfo, error) {
	return s.Infos.ListByUser(ctx, caller.SubjectID)
}

// Save creates or replaces the caller's details for one supplier.
func (s *SupplierUserInfoService) Save(ctx context.Context, caller tokens.Identity, req SupplierUserInfoRequest) (*models.SupplierUserInfo, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	if _, err := s.Suppliers.Get(ctx, req.SupplierID); err != nil {
		return nil, err
	}
	return s.Infos.Upsert(ctx, &models.SupplierUserInfo{
		UserID:              caller.SubjectID,
		SupplierID:          req.SupplierID,
		PaymentTypeID:       req.PaymentTypeID,
		ReimbursementTypeID: req.ReimbursementTypeID,
		JojoNumber:          req.JojoNumber,
	})
}
