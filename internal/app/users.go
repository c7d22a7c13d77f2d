package app

import (
	"context"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

const historyReviewLimit = 10

// UserService covers profile, preference and account lifecycle operations.
type UserService struct {
	users     domain.UserRepository
	reviews   domain.ReviewRepository
	favorites domain.FavoriteRepository
	places    domain.PlaceRepository
	auth      *AuthService
}

func NewUserService(users domain.UserRepository, reviews domain.ReviewRepository, favorites domain.FavoriteRepository, places domain.PlaceRepository, auth *AuthService) *UserService {
	return &UserService{users: users, reviews: reviews, favorites: favorites, places: places, auth: auth}
}

func (s *UserService) Get(ctx context.Context, userID string) (domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd domain.ProfileUpdate) (domain.User, error) {
	return s.users.UpdateProfile(ctx, userID, upd)
}

func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if len(next) < 8 {
		return domain.Invalid("password must be at least 8 characters")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.auth.CheckPassword(user, current) {
		return domain.Unauthorized("current password is incorrect")
	}
	hash, err := s.auth.HashPassword(next)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// DeleteAccount removes the user and their reviews and favorites after a
// password confirmation. Place aggregates referencing the removed reviews go
// stale until their next recompute; that window is accepted.
func (s *UserService) DeleteAccount(ctx context.Context, userID, password string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.auth.CheckPassword(user, password) {
		return domain.Unauthorized("password is incorrect")
	}

	if err := s.reviews.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.favorites.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	return s.users.Delete(ctx, userID)
}

func (s *UserService) Preferences(ctx context.Context, userID string) (domain.Preferences, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.Preferences{}, err
	}
	return user.Preferences, nil
}

func (s *UserService) UpdatePreferences(ctx context.Context, userID string, p domain.Preferences) (domain.Preferences, error) {
	for _, c := range p.FavoriteCategories {
		if !c.Valid() {
			return domain.Preferences{}, domain.Invalid("invalid category: " + string(c))
		}
	}
	if !domain.ValidPriceRange(p.PriceRange) {
		return domain.Preferences{}, domain.Invalid("invalid price range: " + p.PriceRange)
	}
	return s.users.UpdatePreferences(ctx, userID, p)
}

// History returns the user with their most recent reviews and all favorite
// places.
func (s *UserService) History(ctx context.Context, userID string) (domain.UserHistory, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.UserHistory{}, err
	}

	reviews, err := s.reviews.ListByUser(ctx, userID)
	if err != nil {
		return domain.UserHistory{}, err
	}
	if len(reviews) > historyReviewLimit {
		reviews = reviews[:historyReviewLimit]
	}

	placeIDs := make([]string, 0, len(reviews))
	seen := make(map[string]struct{}, len(reviews))
	for _, r := range reviews {
		if _, ok := seen[r.PlaceID]; ok {
			continue
		}
		seen[r.PlaceID] = struct{}{}
		placeIDs = append(placeIDs, r.PlaceID)
	}

	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return domain.UserHistory{}, err
	}
	favIDs := make([]string, 0, len(favorites))
	for _, f := range favorites {
		favIDs = append(favIDs, f.PlaceID)
		if _, ok := seen[f.PlaceID]; !ok {
			seen[f.PlaceID] = struct{}{}
			placeIDs = append(placeIDs, f.PlaceID)
		}
	}

	places, err := s.places.FindByIDs(ctx, placeIDs)
	if err != nil {
		return domain.UserHistory{}, err
	}
	byID := make(map[string]domain.Place, len(places))
	for _, p := range places {
		byID[p.ID] = p
	}

	history := domain.UserHistory{User: user}
	for _, r := range reviews {
		history.Reviews = append(history.Reviews, domain.ReviewWithPlace{Review: r, Place: domain.SummarizePlace(byID[r.PlaceID])})
	}
	for _, id := range favIDs {
		if p, ok := byID[id]; ok {
			history.Favorites = append(history.Favorites, p)
		}
	}
	return history, nil
}
