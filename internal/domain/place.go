package domain

import (
	"strings"
	"time"
)

// Category is the closed set of place categories the API accepts.
type Category string

const (
	CategoryRestaurant Category = "restaurant"
	CategoryCoffeeShop Category = "coffee_shop"
	CategoryBar        Category = "bar"
	CategoryCafe       Category = "cafe"
	CategoryOther      Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryRestaurant, CategoryCoffeeShop, CategoryBar, CategoryCafe, CategoryOther:
		return true
	}
	return false
}

// Display renders the category for human-readable text ("coffee_shop" -> "coffee shop").
func (c Category) Display() string {
	return strings.ReplaceAll(string(c), "_", " ")
}

// PriceRanges holds the accepted price tiers; "" means unknown/unset.
var PriceRanges = []string{"", "$", "$$", "$$$"}

func ValidPriceRange(p string) bool {
	for _, v := range PriceRanges {
		if p == v {
			return true
		}
	}
	return false
}

type Location struct {
	Address string   `json:"address"`
	City    string   `json:"city"`
	State   string   `json:"state,omitempty"`
	ZipCode string   `json:"zipCode,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// Place is a reviewable venue. AverageRating and ReviewCount are derived from
// the place's review set and are only ever written by the rating service.
type Place struct {
	ID            string    `json:"id"`
	ExternalID    string    `json:"externalId,omitempty"`
	Name          string    `json:"name"`
	Category      Category  `json:"category"`
	Location      Location  `json:"location"`
	Description   string    `json:"description,omitempty"`
	PriceRange    string    `json:"priceRange"`
	AverageRating float64   `json:"averageRating"`
	ReviewCount   int       `json:"reviewCount"`
	Images        []string  `json:"images"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PlaceUpdate carries optional field updates; nil means "leave unchanged".
// Aggregate fields are deliberately absent.
type PlaceUpdate struct {
	Name        *string
	Category    *Category
	Location    *Location
	Description *string
	PriceRange  *string
	Images      *[]string
}

// PlacesQuery filters and sorts a place search. Sort accepts a field name
// with an optional leading '-' for descending order.
type PlacesQuery struct {
	Name       string
	City       string
	Category   string
	PriceRange string
	Sort       string
}

// CandidateQuery selects recommendation candidates: places not yet reviewed
// by the user, in the preferred categories, above the rating floor.
type CandidateQuery struct {
	ExcludeIDs []string
	Categories []Category
	MinRating  float64
	Limit      int
}
