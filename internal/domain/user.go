package domain

import "time"

// Preferences are the user-declared tastes consumed by the recommendation
// engine alongside the review history.
type Preferences struct {
	FavoriteCategories  []Category `json:"favoriteCategories"`
	PriceRange          string     `json:"priceRange"`
	DietaryRestrictions []string   `json:"dietaryRestrictions"`
}

type User struct {
	ID             string      `json:"id"`
	Email          string      `json:"email"`
	PasswordHash   string      `json:"-"`
	Name           string      `json:"name"`
	ProfilePicture string      `json:"profilePicture,omitempty"`
	Preferences    Preferences `json:"preferences"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// ProfileUpdate carries optional profile changes. Email and password are not
// updatable through this path.
type ProfileUpdate struct {
	Name           *string
	ProfilePicture *string
}

type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PlaceID   string    `json:"placeId"`
	CreatedAt time.Time `json:"createdAt"`
}
