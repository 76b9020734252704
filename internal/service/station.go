package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Skotchmaster/travel_compensation/internal/apperr"
	"github.com/Skotchmaster/travel_compensation/internal/filter"
	"github.com/Skotchmaster/travel_compensation/internal/models"
	"github.com/Skotchmaster/travel_compensation/internal/repo"
	"github.com/Skotchmaster/travel_compensation/internal/service/search"
	"github.com/Skotchmaster/travel_compensation/internal/util"
)

const (
	DeprecatedStationMessage = `This method has been replaced by "../supplier/<id>/station/ and should be considered deprecated.`

	minFilterLength = 2
)

// StationIndex is the full text index behind station search.
type StationIndex interface {
	IndexStations(ctx context.Context, stations []models.Station) error
	SearchStations(ctx context.Context, supplierID uint, query string, from, size int) (int64, []search.StationDoc, error)
}

type StationService struct {
	Stations  *repo.StationRepo
	Suppliers *repo.SupplierRepo
	// Index is nil when search is not configured.
	Index StationIndex
}

func (s *StationService) Get(ctx context.Context, id uint) (*models.Station, error) {
	return s.Stations.Get(ctx, id)
}

func (s *StationService) ListBySupplier(ctx context.Context, supplierID uint, nameFilter string, q filter.Query) (int64, []models.Station, error) {
	if _, err := s.Suppliers.Get(ctx, supplierID); err != nil {
		return 0, nil, err
	}
	return s.Stations.ListBySupplier(ctx, supplierID, strings.TrimSpace(nameFilter), q)
}

// LegacySearch looks stations up by supplier key and a name fragment of at
// least two characters.
func (s *StationService) LegacySearch(ctx context.Context, supplierKey, nameFilter string) ([]models.Station, error) {
	supplierKey = strings.TrimSpace(supplierKey)
	nameFilter = strings.TrimSpace(nameFilter)

	fields := map[string]string{}
	if utf8.RuneCountInString(nameFilter) < minFilterLength {
		fields["filter"] = "must be at least 2 characters"
	}
	if supplierKey == "" {
		fields["supplier_key"] = "cannot be blank"
	}
	if len(fields) > 0 {
		return nil, apperr.ValidationError{Msg: "invalid request", Fields: fields}
	}
	return s.Stations.SearchBySupplierKey(ctx, supplierKey, nameFilter)
}

func (s *StationService) Search(ctx context.Context, supplierID uint, query string, from, size int) (int64, []search.StationDoc, error) {
	if s.Index == nil {
		return 0, nil, apperr.NotFoundError{Resource: "station search", Msg: "station search is not configured"}
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, nil, apperr.ValidationError{Field: "q", Msg: "cannot be blank"}
	}
	from, size = util.Window(from, size)
	if _, err := s.Suppliers.Get(ctx, supplierID); err != nil {
		return 0, nil, err
	}
	return s.Index.SearchStations(ctx, supplierID, query, from, size)
}

// ImportResult counts what an import did.
type ImportResult struct {
	Created int
	Skipped int
}

// Import stores the stations of one supplier, skipping migration ids that
// already exist, and refreshes the search index when one is configured.
func (s *StationService) Import(ctx context.Context, supplierID uint, stations []models.Station) (ImportResult, error) {
	var res ImportResult
	for i := range stations {
		st := stations[i]
		st.SupplierID = supplierID
		created, err := s.Stations.Upsert(ctx, &st)
		if err != nil {
			return res, err
		}
		if created {
			res.Created++
		} else {
			res.Skipped++
		}
	}

	if s.Index == nil {
		return res, nil
	}
	all, err := s.Stations.ListAllBySupplier(ctx, supplierID)
	if err != nil {
		return res, err
	}
	return res, s.Index.IndexStations(ctx, all)
}
