package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/travel_compensation/internal/models"
)

// StationDoc is the indexed form of a station.
type StationDoc struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	SupplierID  uint   `json:"supplier_id"`
	MigrationID string `json:"migration_id,omitempty"`
}

func DocFromStation(s models.Station) StationDoc {
	return StationDoc{ID: s.ID, Name: s.Name, SupplierID: s.SupplierID, MigrationID: s.MigrationID}
}

type StationIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewStationIndex(es *elasticsearch.Client, index string) *StationIndex {
	return &StationIndex{es: es, index: index}
}

// IndexStations writes the stations with one bulk request. Documents are
// keyed by station id so a re-import overwrites.
func (s *StationIndex) IndexStations(ctx context.Context, stations []models.Station) error {
	if len(stations) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, st := range stations {
		meta := map[string]any{"index": map[string]any{"_id": strconv.FormatUint(uint64(st.ID), 10)}}
		if err := enc.Encode(meta); err != nil {
			return fmt.Errorf("search: encode meta: %w", err)
		}
		if err := enc.Encode(DocFromStation(st)); err != nil {
			return fmt.Errorf("search: encode doc: %w", err)
		}
	}

	res, err := s.es.Bulk(&buf,
		s.es.Bulk.WithContext(ctx),
		s.es.Bulk.WithIndex(s.index),
		s.es.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("search: bulk: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("search: bulk: %s: %s", res.Status(), body)
	}

	var r struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return fmt.Errorf("search: decode bulk response: %w", err)
	}
	if r.Errors {
		return fmt.Errorf("search: bulk response reported item errors")
	}
	return nil
}

// SearchStations runs a fuzzy name match limited to one supplier.
func (s *StationIndex) SearchStations(ctx context.Context, supplierID uint, query string, from, size int) (int64, []StationDoc, error) {
	body := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":     query,
						"fields":    []string{"name"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"supplier_id": supplierID},
				},
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(s.index),
		s.es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct{ Value int64 }                    `json:"total"`
			Hits  []struct{ Source StationDoc `json:"_source"` } `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("search: decode response: %w", err)
	}

	docs := make([]StationDoc, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		docs[i] = hit.Source
	}
	return r.Hits.Total.Value, docs, nil
}
