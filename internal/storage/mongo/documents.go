package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

// BSON document shapes for the four collections, mapped to and from the
// domain structs. Reviews and favorites keep the `user`/`place` reference
// field names the collections have always used.

type locationDocument struct {
	Address string   `bson:"address,omitempty"`
	City    string   `bson:"city,omitempty"`
	State   string   `bson:"state,omitempty"`
	ZipCode string   `bson:"zipCode,omitempty"`
	Lat     *float64 `bson:"lat,omitempty"`
	Lng     *float64 `bson:"lng,omitempty"`
}

type placeDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ExternalID    string             `bson:"externalId,omitempty"`
	Name          string             `bson:"name"`
	Category      string             `bson:"category"`
	Location      locationDocument   `bson:"location"`
	Description   string             `bson:"description,omitempty"`
	PriceRange    string             `bson:"priceRange,omitempty"`
	AverageRating float64            `bson:"averageRating"`
	ReviewCount   int                `bson:"reviewCount"`
	Images        []string           `bson:"images,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

type reviewDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     primitive.ObjectID `bson:"user"`
	PlaceID    primitive.ObjectID `bson:"place"`
	Rating     int                `bson:"rating"`
	Content    string             `bson:"content,omitempty"`
	IsBlogPost bool               `bson:"isBlogPost"`
	Images     []string           `bson:"images,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

type preferencesDocument struct {
	FavoriteCategories  []string `bson:"favoriteCategories"`
	PriceRange          string   `bson:"priceRange,omitempty"`
	DietaryRestrictions []string `bson:"dietaryRestrictions"`
}

type userDocument struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty"`
	Email          string              `bson:"email"`
	Password       string              `bson:"password"`
	Name           string              `bson:"name"`
	ProfilePicture string              `bson:"profilePicture,omitempty"`
	Preferences    preferencesDocument `bson:"preferences"`
	CreatedAt      time.Time           `bson:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt"`
}

type favoriteDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user"`
	PlaceID   primitive.ObjectID `bson:"place"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func mapPlaceDocument(doc placeDocument) domain.Place {
	return domain.Place{
		ID:            doc.ID.Hex(),
		ExternalID:    doc.ExternalID,
		Name:          doc.Name,
		Category:      domain.Category(doc.Category),
		Location:      domain.Location(doc.Location),
		Description:   doc.Description,
		PriceRange:    doc.PriceRange,
		AverageRating: doc.AverageRating,
		ReviewCount:   doc.ReviewCount,
		Images:        append([]string{}, doc.Images...),
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}

func mapReviewDocument(doc reviewDocument) domain.Review {
	return domain.Review{
		ID:         doc.ID.Hex(),
		UserID:     doc.UserID.Hex(),
		PlaceID:    doc.PlaceID.Hex(),
		Rating:     doc.Rating,
		Content:    doc.Content,
		IsBlogPost: doc.IsBlogPost,
		Images:     append([]string{}, doc.Images...),
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}

func mapUserDocument(doc userDocument) domain.User {
	categories := make([]domain.Category, 0, len(doc.Preferences.FavoriteCategories))
	for _, c := range doc.Preferences.FavoriteCategories {
		categories = append(categories, domain.Category(c))
	}
	return domain.User{
		ID:             doc.ID.Hex(),
		Email:          doc.Email,
		PasswordHash:   doc.Password,
		Name:           doc.Name,
		ProfilePicture: doc.ProfilePicture,
		Preferences: domain.Preferences{
			FavoriteCategories:  categories,
			PriceRange:          doc.Preferences.PriceRange,
			DietaryRestrictions: append([]string{}, doc.Preferences.DietaryRestrictions...),
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func mapFavoriteDocument(doc favoriteDocument) domain.Favorite {
	return domain.Favorite{
		ID:        doc.ID.Hex(),
		UserID:    doc.UserID.Hex(),
		PlaceID:   doc.PlaceID.Hex(),
		CreatedAt: doc.CreatedAt,
	}
}

// objectID parses a client-supplied hex id; malformed ids are not-found
// rather than internal errors.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.NotFound("invalid id: " + id)
	}
	return oid, nil
}

func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

func notFoundOr(err error, msg string) error {
	if err == mongo.ErrNoDocuments {
		return domain.NotFound(msg)
	}
	return err
}

func isDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
