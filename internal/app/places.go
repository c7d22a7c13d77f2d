package app

import (
	"context"
	"time"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

// PlaceService fronts place reads with a cache-aside layer and guards the
// write paths. Aggregate fields are not writable here.
type PlaceService struct {
	places   domain.PlaceRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewPlaceService(places domain.PlaceRepository, cache domain.Cache, ttl time.Duration) *PlaceService {
	return &PlaceService{places: places, cache: cache, cacheTTL: ttl}
}

func (s *PlaceService) Search(ctx context.Context, q domain.PlacesQuery) ([]domain.Place, error) {
	if q.Sort == "" {
		q.Sort = "-averageRating"
	}
	return s.places.Search(ctx, q)
}

func (s *PlaceService) Get(ctx context.Context, id string) (domain.Place, error) {
	key := placeCacheKey(id)
	if s.cache != nil {
		var cached domain.Place
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	place, err := s.places.FindByID(ctx, id)
	if err != nil {
		return domain.Place{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, place, int(s.cacheTTL.Seconds()))
	}
	return place, nil
}

func (s *PlaceService) GetByExternalID(ctx context.Context, externalID string) (domain.Place, error) {
	return s.places.FindByExternalID(ctx, externalID)
}

func (s *PlaceService) Create(ctx context.Context, p domain.Place) (domain.Place, error) {
	if err := validatePlace(p.Name, p.Category, p.PriceRange); err != nil {
		return domain.Place{}, err
	}
	// New places start unrated; the rating service owns these fields.
	p.AverageRating = 0
	p.ReviewCount = 0
	return s.places.Create(ctx, p)
}

func (s *PlaceService) Update(ctx context.Context, id string, upd domain.PlaceUpdate) (domain.Place, error) {
	if upd.Category != nil && !upd.Category.Valid() {
		return domain.Place{}, domain.Invalid("invalid category: " + string(*upd.Category))
	}
	if upd.PriceRange != nil && !domain.ValidPriceRange(*upd.PriceRange) {
		return domain.Place{}, domain.Invalid("invalid price range: " + *upd.PriceRange)
	}

	place, err := s.places.Update(ctx, id, upd)
	if err != nil {
		return domain.Place{}, err
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, placeCacheKey(id))
	}
	return place, nil
}

func (s *PlaceService) Delete(ctx context.Context, id string) error {
	if err := s.places.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, placeCacheKey(id))
		_ = s.cache.Del(ctx, reviewsCacheKey(id))
	}
	return nil
}

func validatePlace(name string, category domain.Category, priceRange string) error {
	if name == "" {
		return domain.Invalid("place name is required")
	}
	if !category.Valid() {
		return domain.Invalid("invalid category: " + string(category))
	}
	if !domain.ValidPriceRange(priceRange) {
		return domain.Invalid("invalid price range: " + priceRange)
	}
	return nil
}
