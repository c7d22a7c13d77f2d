package app

import (
	"context"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

// FavoritesService maintains the unique (user, place) favorite pairs.
type FavoritesService struct {
	favorites domain.FavoriteRepository
	places    domain.PlaceRepository
}

func NewFavoritesService(favorites domain.FavoriteRepository, places domain.PlaceRepository) *FavoritesService {
	return &FavoritesService{favorites: favorites, places: places}
}

func (s *FavoritesService) Add(ctx context.Context, userID, placeID string) (domain.Favorite, error) {
	if _, err := s.places.FindByID(ctx, placeID); err != nil {
		return domain.Favorite{}, err
	}

	if _, err := s.favorites.Find(ctx, userID, placeID); err == nil {
		return domain.Favorite{}, domain.Conflict("place already in favorites")
	} else if domain.KindOf(err) != domain.KindNotFound {
		return domain.Favorite{}, err
	}

	return s.favorites.Create(ctx, userID, placeID)
}

func (s *FavoritesService) Remove(ctx context.Context, userID, placeID string) error {
	return s.favorites.Delete(ctx, userID, placeID)
}

// ListPlaces returns the user's favorited places, most recently added first.
func (s *FavoritesService) ListPlaces(ctx context.Context, userID string) ([]domain.Place, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.PlaceID)
	}
	places, err := s.places.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Place, len(places))
	for _, p := range places {
		byID[p.ID] = p
	}

	out := make([]domain.Place, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
