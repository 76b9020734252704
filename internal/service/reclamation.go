package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
	"github.com/Skotchmaster/travel_compensation/internal/filter"
	"github.com/Skotchmaster/travel_compensation/internal/models"
	"github.com/Skotchmaster/travel_compensation/internal/mykafka"
	"github.com/Skotchmaster/travel_compensation/internal/repo"
	"github.com/Skotchmaster/travel_compensation/internal/tokens"
)

type ReclamationService struct {
	Reclamations *repo.ReclamationRepo
	Suppliers    *repo.SupplierRepo
	Events       Events
}

// Get hides other users' reclamations from non-admins behind a not found.
func (s *ReclamationService) Get(ctx context.Context, caller tokens.Identity, id uint) (*models.Reclamation, error) {
	rec, err := s.Reclamations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin && rec.UserID != caller.SubjectID {
		return nil, apperr.NotFoundError{Resource: "reclamation"}
	}
	return rec, nil
}

// List returns reclamations, of one supplier when supplierID is set.
// Non-admins only see their own.
func (s *ReclamationService) List(ctx context.Context, caller tokens.Identity, supplierID uint, q filter.Query) (int64, []models.Reclamation, error) {
	scope := repo.ReclamationScope{SupplierID: supplierID}
	if !caller.IsAdmin {
		scope.UserID = caller.SubjectID
	}
	if supplierID != 0 {
		if _, err := s.Suppliers.Get(ctx, supplierID); err != nil {
			return 0, nil, err
		}
	}
	return s.Reclamations.List(ctx, scope, q)
}

// Create files a reclamation owned by the caller. New reclamations are
// never approved.
func (s *ReclamationService) Create(ctx context.Context, caller tokens.Identity, supplierID uint, req ReclamationRequest) (*models.Reclamation, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	sup, err := s.Suppliers.Get(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	rec := &models.Reclamation{
		UserID:              caller.SubjectID,
		SupplierID:          sup.ID,
		ExpectedArrival:     utc(req.ExpectedArrival),
		ActualArrival:       utc(req.ActualArrival),
		VehicleNumber:       strings.TrimSpace(req.VehicleNumber),
		BookingNumber:       strings.TrimSpace(req.BookingNumber),
		FromStationID:       req.FromStationID,
		ToStationID:         req.ToStationID,
		PaymentTypeID:       req.PaymentTypeID,
		ReimbursementTypeID: req.ReimbursementTypeID,
	}
	if err := s.Reclamations.Create(ctx, rec); err != nil {
		return nil, err
	}
	if rec, err = s.Reclamations.Get(ctx, rec.ID); err != nil {
		return nil, err
	}

	s.publish(ctx, mykafka.EventReclamationCreated, rec)
	return rec, nil
}

func (s *ReclamationService) Adjudicate(ctx context.Context, id uint, req AdjudicateRequest) (*models.Reclamation, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	changes := map[string]any{}
	if req.Approved != nil {
		changes["approved"] = *req.Approved
	}
	if req.Refund != nil {
		changes["refund"] = *req.Refund
	}
	rec, err := s.Reclamations.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, mykafka.EventReclamationAdjudged, rec)
	return rec, nil
}

func (s *ReclamationService) publish(ctx context.Context, kind string, rec *models.Reclamation) {
	s.Events.publish(ctx, mykafka.TopicReclamationEvents, strconv.FormatUint(uint64(rec.ID), 10), mykafka.ReclamationEvent{
		Type:          kind,
		ReclamationID: rec.ID,
		UserID:        rec.UserID,
		SupplierID:    rec.SupplierID,
		Approved:      rec.Approved,
		Refund:        rec.Refund,
		At:            time.Now().UTC(),
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
