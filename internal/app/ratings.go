package app

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/adapters/observability"
	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

// RatingService recomputes a place's derived rating fields from its full
// review set. It is the sole writer of averageRating/reviewCount.
type RatingService struct {
	reviews domain.ReviewRepository
	places  domain.PlaceRepository
	cache   domain.Cache
}

func NewRatingService(reviews domain.ReviewRepository, places domain.PlaceRepository, cache domain.Cache) *RatingService {
	return &RatingService{reviews: reviews, places: places, cache: cache}
}

// Recompute rebuilds the aggregates for one place. It never fails the caller:
// a review create/delete must succeed even when the aggregate write does not,
// so store errors are logged and swallowed. The next recompute for the place
// self-corrects any staleness. Idempotent for an unchanged review set.
func (s *RatingService) Recompute(ctx context.Context, placeID string) {
	reviews, err := s.reviews.ListByPlace(ctx, placeID)
	if err != nil {
		log.Error().Err(err).Str("place", placeID).Msg("rating recompute: list reviews failed")
		observability.ObserveRecompute("error")
		return
	}

	average := 0.0
	if len(reviews) > 0 {
		total := 0
		for _, r := range reviews {
			total += r.Rating
		}
		average = RoundRating(float64(total) / float64(len(reviews)))
	}

	if err := s.places.UpdateAggregates(ctx, placeID, average, len(reviews)); err != nil {
		log.Error().Err(err).Str("place", placeID).Msg("rating recompute: aggregate write failed")
		observability.ObserveRecompute("error")
		return
	}
	observability.ObserveRecompute("ok")

	if s.cache != nil {
		_ = s.cache.Del(ctx, placeCacheKey(placeID))
	}
}

// RoundRating rounds to one decimal, half away from zero (4.666… -> 4.7,
// 4.25 -> 4.3). Ratings are non-negative so this matches round-half-up.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}

func placeCacheKey(id string) string { return fmt.Sprintf("place:%s", id) }

func reviewsCacheKey(placeID string) string { return fmt.Sprintf("reviews:place:%s", placeID) }
