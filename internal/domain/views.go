package domain

// Read models returned by the application services; they join reviews with
// the lightweight author/place projections the API exposes.

type UserSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type PlaceSummary struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	PriceRange    string   `json:"priceRange"`
	AverageRating float64  `json:"averageRating"`
	Location      Location `json:"location"`
}

type ReviewWithAuthor struct {
	Review
	Author UserSummary `json:"user"`
}

type ReviewWithPlace struct {
	Review
	Place PlaceSummary `json:"place"`
}

// UserHistory is the profile page payload: the user plus recent activity.
type UserHistory struct {
	User      User              `json:"user"`
	Reviews   []ReviewWithPlace `json:"reviews"`
	Favorites []Place           `json:"favorites"`
}

func SummarizeUser(u User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, ProfilePicture: u.ProfilePicture}
}

func SummarizePlace(p Place) PlaceSummary {
	return PlaceSummary{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		PriceRange:    p.PriceRange,
		AverageRating: p.AverageRating,
		Location:      p.Location,
	}
}
