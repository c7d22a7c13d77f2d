package app

import (
	"context"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

// ReviewService orchestrates the review lifecycle. Aggregate recomputation is
// an explicit step here rather than a storage-layer hook: implicit triggers
// proved hard to debug and stay out of this codebase.
type ReviewService struct {
	reviews domain.ReviewRepository
	places  domain.PlaceRepository
	users   domain.UserRepository
	ratings *RatingService
	cache   domain.Cache
}

func NewReviewService(reviews domain.ReviewRepository, places domain.PlaceRepository, users domain.UserRepository, ratings *RatingService, cache domain.Cache) *ReviewService {
	return &ReviewService{reviews: reviews, places: places, users: users, ratings: ratings, cache: cache}
}

// Create validates the referenced user and place, stores the review, then
// recomputes the place's aggregates. A recompute failure never fails the
// create.
func (s *ReviewService) Create(ctx context.Context, userID, placeID string, rating int, content string, isBlogPost bool) (domain.ReviewWithPlace, error) {
	if rating < 1 || rating > 5 {
		return domain.ReviewWithPlace{}, domain.Invalid("rating must be between 1 and 5")
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return domain.ReviewWithPlace{}, err
	}
	place, err := s.places.FindByID(ctx, placeID)
	if err != nil {
		return domain.ReviewWithPlace{}, err
	}

	review, err := s.reviews.Create(ctx, domain.Review{
		UserID:     userID,
		PlaceID:    placeID,
		Rating:     rating,
		Content:    content,
		IsBlogPost: isBlogPost,
	})
	if err != nil {
		return domain.ReviewWithPlace{}, err
	}

	s.ratings.Recompute(ctx, placeID)
	s.invalidate(ctx, placeID)

	return domain.ReviewWithPlace{Review: review, Place: domain.SummarizePlace(place)}, nil
}

// Update applies owner-checked edits. A rating change re-derives the place's
// aggregates; content-only edits do not touch them.
func (s *ReviewService) Update(ctx context.Context, actorID, reviewID string, upd domain.ReviewUpdate) (domain.Review, error) {
	if upd.Rating != nil && (*upd.Rating < 1 || *upd.Rating > 5) {
		return domain.Review{}, domain.Invalid("rating must be between 1 and 5")
	}

	existing, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return domain.Review{}, err
	}
	if existing.UserID != actorID {
		return domain.Review{}, domain.Forbidden("not the review owner")
	}

	review, err := s.reviews.Update(ctx, reviewID, upd)
	if err != nil {
		return domain.Review{}, err
	}

	if upd.Rating != nil && *upd.Rating != existing.Rating {
		s.ratings.Recompute(ctx, review.PlaceID)
	}
	s.invalidate(ctx, review.PlaceID)

	return review, nil
}

// Delete removes an owner's review and recomputes the place's aggregates
// after the removal, so the deleted rating no longer counts.
func (s *ReviewService) Delete(ctx context.Context, actorID, reviewID string) error {
	existing, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if existing.UserID != actorID {
		return domain.Forbidden("not the review owner")
	}

	deleted, err := s.reviews.Delete(ctx, reviewID)
	if err != nil {
		return err
	}

	s.ratings.Recompute(ctx, deleted.PlaceID)
	s.invalidate(ctx, deleted.PlaceID)
	return nil
}

// ListByPlace returns a place's reviews, newest first, with author summaries.
func (s *ReviewService) ListByPlace(ctx context.Context, placeID string) ([]domain.ReviewWithAuthor, error) {
	if s.cache != nil {
		var cached []domain.ReviewWithAuthor
		if ok, _ := s.cache.Get(ctx, reviewsCacheKey(placeID), &cached); ok {
			return cached, nil
		}
	}

	reviews, err := s.reviews.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(reviews))
	seen := make(map[string]struct{}, len(reviews))
	for _, r := range reviews {
		if _, ok := seen[r.UserID]; ok {
			continue
		}
		seen[r.UserID] = struct{}{}
		ids = append(ids, r.UserID)
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]domain.ReviewWithAuthor, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, domain.ReviewWithAuthor{Review: r, Author: domain.SummarizeUser(byID[r.UserID])})
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, reviewsCacheKey(placeID), out, 300)
	}
	return out, nil
}

// ListByUser returns a user's reviews, newest first, with place summaries.
func (s *ReviewService) ListByUser(ctx context.Context, userID string) ([]domain.ReviewWithPlace, error) {
	reviews, err := s.reviews.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withPlaces(ctx, reviews)
}

func (s *ReviewService) withPlaces(ctx context.Context, reviews []domain.Review) ([]domain.ReviewWithPlace, error) {
	ids := make([]string, 0, len(reviews))
	seen := make(map[string]struct{}, len(reviews))
	for _, r := range reviews {
		if _, ok := seen[r.PlaceID]; ok {
			continue
		}
		seen[r.PlaceID] = struct{}{}
		ids = append(ids, r.PlaceID)
	}
	places, err := s.places.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Place, len(places))
	for _, p := range places {
		byID[p.ID] = p
	}

	out := make([]domain.ReviewWithPlace, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, domain.ReviewWithPlace{Review: r, Place: domain.SummarizePlace(byID[r.PlaceID])})
	}
	return out, nil
}

func (s *ReviewService) invalidate(ctx context.Context, placeID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, reviewsCacheKey(placeID))
}
