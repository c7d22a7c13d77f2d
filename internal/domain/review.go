package domain

import "time"

// Review is one user's rating of one place. The same user may review the
// same place more than once; there is no uniqueness constraint on the pair.
type Review struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	PlaceID    string    `json:"placeId"`
	Rating     int       `json:"rating"` // 1..5
	Content    string    `json:"content,omitempty"`
	IsBlogPost bool      `json:"isBlogPost"`
	Images     []string  `json:"images"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ReviewUpdate carries optional field updates; nil means "leave unchanged".
type ReviewUpdate struct {
	Rating     *int
	Content    *string
	IsBlogPost *bool
	Images     *[]string
}

// Recommendation pairs a candidate place with the reasoning behind it.
type Recommendation struct {
	Place       Place  `json:"place"`
	Explanation string `json:"explanation"`
	MatchScore  int    `json:"matchScore"`
}

// CategoryTaste is one row of a taste profile: how a user rates a category
// on average.
type CategoryTaste struct {
	Category      Category `json:"category"`
	AverageRating float64  `json:"averageRating"`
}

// TasteProfile summarises a user's review history by category and price range.
type TasteProfile struct {
	TotalReviews         int             `json:"totalReviews"`
	FavoriteCategories   []CategoryTaste `json:"favoriteCategories"`
	PriceRangePreference *string         `json:"priceRangePreference"`
}
