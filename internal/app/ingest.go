package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

// IngestionService pulls normalized place records from an external
// place-search provider and upserts them into the store by external ID.
// Local aggregates are never overwritten by ingested data.
type IngestionService struct {
	source domain.PlaceSource
	places domain.PlaceRepository
	cache  domain.Cache
}

func NewIngestionService(source domain.PlaceSource, places domain.PlaceRepository, cache domain.Cache) *IngestionService {
	return &IngestionService{source: source, places: places, cache: cache}
}

// IngestSearch imports every result of one provider search. A provider 404
// ends the batch gracefully; other provider errors bubble up.
func (s *IngestionService) IngestSearch(ctx context.Context, q domain.PlaceSourceQuery) (int, error) {
	records, err := s.source.SearchPlaces(ctx, q)
	if err != nil {
		if errors.Is(err, domain.ErrSourceNotFound) {
			return 0, nil
		}
		return 0, err
	}

	imported := 0
	for _, rec := range records {
		if rec.ExternalID == "" || rec.Name == "" {
			continue
		}
		if !rec.Category.Valid() {
			rec.Category = domain.CategoryOther
		}
		if err := s.places.UpsertExternal(ctx, rec); err != nil {
			return imported, fmt.Errorf("upsert place %s: %w", rec.ExternalID, err)
		}
		imported++

		if s.cache != nil {
			if existing, err := s.places.FindByExternalID(ctx, rec.ExternalID); err == nil {
				_ = s.cache.Del(ctx, placeCacheKey(existing.ID))
			}
		}
	}
	return imported, nil
}

// IngestDetails refreshes a single place from the provider.
func (s *IngestionService) IngestDetails(ctx context.Context, externalID string) error {
	rec, err := s.source.PlaceDetails(ctx, externalID)
	if err != nil {
		if errors.Is(err, domain.ErrSourceNotFound) {
			return nil
		}
		return err
	}
	rec.ExternalID = externalID
	if !rec.Category.Valid() {
		rec.Category = domain.CategoryOther
	}
	if err := s.places.UpsertExternal(ctx, rec); err != nil {
		return err
	}
	if s.cache != nil {
		if existing, err := s.places.FindByExternalID(ctx, externalID); err == nil {
			_ = s.cache.Del(ctx, placeCacheKey(existing.ID))
		}
	}
	return nil
}
