package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

const (
	// DefaultRecommendationLimit applies when the caller supplies no usable limit.
	DefaultRecommendationLimit = 5

	// candidateRatingFloor excludes weakly rated places from the personalized path.
	candidateRatingFloor = 3.5

	// popularMatchScore is the fixed score for cold-start results, signalling
	// lower confidence than a personalized match.
	popularMatchScore = 75
)

// RecommendationService ranks candidate places for a user from their rating
// history and stored preferences. Read-only; it consumes the aggregates
// maintained by RatingService.
type RecommendationService struct {
	users   domain.UserRepository
	reviews domain.ReviewRepository
	places  domain.PlaceRepository
}

func NewRecommendationService(users domain.UserRepository, reviews domain.ReviewRepository, places domain.PlaceRepository) *RecommendationService {
	return &RecommendationService{users: users, reviews: reviews, places: places}
}

// Recommendations returns up to limit scored places the user has not reviewed.
// Users with review history get the personalized path; new users fall back to
// popular places. An unknown user is a not-found error for the caller.
func (s *RecommendationService) Recommendations(ctx context.Context, userID string, limit int) ([]domain.Recommendation, error) {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.reviews.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(history) == 0 {
		return s.popular(ctx, user.Preferences.FavoriteCategories, limit)
	}
	return s.personalized(ctx, user, history, limit)
}

func (s *RecommendationService) personalized(ctx context.Context, user domain.User, history []domain.Review, limit int) ([]domain.Recommendation, error) {
	reviewedIDs := make([]string, 0, len(history))
	seen := make(map[string]struct{}, len(history))
	for _, r := range history {
		if _, ok := seen[r.PlaceID]; ok {
			continue
		}
		seen[r.PlaceID] = struct{}{}
		reviewedIDs = append(reviewedIDs, r.PlaceID)
	}

	reviewedPlaces, err := s.places.FindByIDs(ctx, reviewedIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Place, len(reviewedPlaces))
	for _, p := range reviewedPlaces {
		byID[p.ID] = p
	}

	// Categories of places the user rated 4+, then the stored favorites,
	// deduplicated in encounter order.
	var liked []domain.Category
	for _, r := range history {
		if r.Rating < 4 {
			continue
		}
		if p, ok := byID[r.PlaceID]; ok {
			liked = append(liked, p.Category)
		}
	}
	preferred := unionCategories(liked, user.Preferences.FavoriteCategories)

	candidates, err := s.places.ListCandidates(ctx, domain.CandidateQuery{
		ExcludeIDs: reviewedIDs,
		Categories: preferred,
		MinRating:  candidateRatingFloor,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Recommendation, 0, len(candidates))
	for _, p := range candidates {
		out = append(out, domain.Recommendation{
			Place:       p,
			Explanation: Explanation(p, user.Preferences, preferred),
			MatchScore:  MatchScore(p, user.Preferences, preferred),
		})
	}
	return out, nil
}

func (s *RecommendationService) popular(ctx context.Context, categories []domain.Category, limit int) ([]domain.Recommendation, error) {
	places, err := s.places.ListPopular(ctx, categories, limit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Recommendation, 0, len(places))
	for _, p := range places {
		out = append(out, domain.Recommendation{
			Place: p,
			Explanation: fmt.Sprintf("Popular %s with %d reviews and %.1f average rating",
				p.Category.Display(), p.ReviewCount, p.AverageRating),
			MatchScore: popularMatchScore,
		})
	}
	return out, nil
}

// MatchScore grades a candidate 0..100. Within each factor only the highest
// matching tier applies; the sum is capped at 100.
func MatchScore(p domain.Place, prefs domain.Preferences, preferred []domain.Category) int {
	score := 0

	if containsCategory(preferred, p.Category) {
		score += 40
	}

	switch {
	case p.AverageRating >= 4.5:
		score += 30
	case p.AverageRating >= 4.0:
		score += 25
	case p.AverageRating >= 3.5:
		score += 20
	}

	if prefs.PriceRange != "" && p.PriceRange == prefs.PriceRange {
		score += 20
	}

	switch {
	case p.ReviewCount >= 20:
		score += 10
	case p.ReviewCount >= 10:
		score += 7
	case p.ReviewCount >= 5:
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}

// Explanation builds the human-readable reason string for a personalized
// recommendation. Fragment order is fixed; a candidate matching nothing gets
// the generic fallback.
func Explanation(p domain.Place, prefs domain.Preferences, preferred []domain.Category) string {
	var reasons []string

	if containsCategory(preferred, p.Category) {
		reasons = append(reasons, fmt.Sprintf("matches your interest in %ss", p.Category.Display()))
	}
	if p.AverageRating >= 4.5 {
		reasons = append(reasons, "highly rated by other users")
	}
	if p.ReviewCount >= 10 {
		reasons = append(reasons, "popular with many reviews")
	}
	if prefs.PriceRange != "" && p.PriceRange == prefs.PriceRange {
		reasons = append(reasons, "fits your price range")
	}

	if len(reasons) == 0 {
		return "Recommended based on your preferences"
	}
	return "Recommended because it " + strings.Join(reasons, ", ")
}

// TasteProfile groups the user's reviews by their place's category and price
// range and reports per-category means, best-rated first.
func (s *RecommendationService) TasteProfile(ctx context.Context, userID string) (domain.TasteProfile, error) {
	history, err := s.reviews.ListByUser(ctx, userID)
	if err != nil {
		return domain.TasteProfile{}, err
	}

	ids := make([]string, 0, len(history))
	seen := make(map[string]struct{}, len(history))
	for _, r := range history {
		if _, ok := seen[r.PlaceID]; ok {
			continue
		}
		seen[r.PlaceID] = struct{}{}
		ids = append(ids, r.PlaceID)
	}
	places, err := s.places.FindByIDs(ctx, ids)
	if err != nil {
		return domain.TasteProfile{}, err
	}
	byID := make(map[string]domain.Place, len(places))
	for _, p := range places {
		byID[p.ID] = p
	}

	type bucket struct {
		total int
		count int
	}
	categoryOrder := make([]domain.Category, 0)
	categories := make(map[domain.Category]*bucket)

	// First price range encountered in history order wins; this mirrors the
	// "first inserted key" behaviour the API has always had.
	var pricePreference *string

	for _, r := range history {
		p, ok := byID[r.PlaceID]
		if !ok {
			continue
		}

		b, ok := categories[p.Category]
		if !ok {
			b = &bucket{}
			categories[p.Category] = b
			categoryOrder = append(categoryOrder, p.Category)
		}
		b.total += r.Rating
		b.count++

		if pricePreference == nil && p.PriceRange != "" {
			pr := p.PriceRange
			pricePreference = &pr
		}
	}

	favorites := make([]domain.CategoryTaste, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		b := categories[c]
		favorites = append(favorites, domain.CategoryTaste{
			Category:      c,
			AverageRating: float64(b.total) / float64(b.count),
		})
	}
	sort.SliceStable(favorites, func(i, j int) bool {
		return favorites[i].AverageRating > favorites[j].AverageRating
	})

	return domain.TasteProfile{
		TotalReviews:         len(history),
		FavoriteCategories:   favorites,
		PriceRangePreference: pricePreference,
	}, nil
}

// unionCategories deduplicates while preserving first-encounter order.
func unionCategories(a, b []domain.Category) []domain.Category {
	out := make([]domain.Category, 0, len(a)+len(b))
	seen := make(map[domain.Category]struct{}, len(a)+len(b))
	for _, c := range append(append([]domain.Category{}, a...), b...) {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func containsCategory(cs []domain.Category, c domain.Category) bool {
	for _, v := range cs {
		if v == c {
			return true
		}
	}
	return false
}
