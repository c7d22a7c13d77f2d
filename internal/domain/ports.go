package domain

import "context"

type PlaceRepository interface {
	// Write paths
	Create(ctx context.Context, p Place) (Place, error)
	Update(ctx context.Context, id string, upd PlaceUpdate) (Place, error)
	Delete(ctx context.Context, id string) error
	UpsertExternal(ctx context.Context, p Place) error
	// UpdateAggregates is the only write path for the derived rating fields.
	UpdateAggregates(ctx context.Context, id string, averageRating float64, reviewCount int) error

	// Read paths
	FindByID(ctx context.Context, id string) (Place, error)
	FindByIDs(ctx context.Context, ids []string) ([]Place, error)
	FindByExternalID(ctx context.Context, externalID string) (Place, error)
	Search(ctx context.Context, q PlacesQuery) ([]Place, error)
	ListCandidates(ctx context.Context, q CandidateQuery) ([]Place, error)
	ListPopular(ctx context.Context, categories []Category, limit int) ([]Place, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, r Review) (Review, error)
	Update(ctx context.Context, id string, upd ReviewUpdate) (Review, error)
	// Delete returns the removed review so callers can recompute the
	// affected place's aggregates afterwards.
	Delete(ctx context.Context, id string) (Review, error)
	DeleteByUser(ctx context.Context, userID string) error

	FindByID(ctx context.Context, id string) (Review, error)
	ListByPlace(ctx context.Context, placeID string) ([]Review, error)
	ListByUser(ctx context.Context, userID string) ([]Review, error)
}

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (User, error)
	UpdatePreferences(ctx context.Context, id string, p Preferences) (Preferences, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	Delete(ctx context.Context, id string) error

	FindByID(ctx context.Context, id string) (User, error)
	FindByIDs(ctx context.Context, ids []string) ([]User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}

type FavoriteRepository interface {
	Create(ctx context.Context, userID, placeID string) (Favorite, error)
	Delete(ctx context.Context, userID, placeID string) error
	DeleteByUser(ctx context.Context, userID string) error

	Find(ctx context.Context, userID, placeID string) (Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]Favorite, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// PlaceSource is an opaque external place-search provider returning
// normalized place records keyed by ExternalID.
type PlaceSourceQuery struct {
	Query    string
	Near     string
	Category string
	Limit    int
}

type PlaceSource interface {
	SearchPlaces(ctx context.Context, q PlaceSourceQuery) ([]Place, error)
	PlaceDetails(ctx context.Context, externalID string) (Place, error)
}
