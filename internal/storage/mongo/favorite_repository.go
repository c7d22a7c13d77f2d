package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

// FavoriteRepository implements domain.FavoriteRepository over MongoDB. The
// unique (user, place) index backs the one-favorite-per-pair rule.
type FavoriteRepository struct {
	collection *mongo.Collection
}

func NewFavoriteRepository(db *mongo.Database) *FavoriteRepository {
	return &FavoriteRepository{collection: db.Collection(FavoritesCollection)}
}

func (r *FavoriteRepository) Create(ctx context.Context, userID, placeID string) (domain.Favorite, error) {
	uid, err := objectID(userID)
	if err != nil {
		return domain.Favorite{}, err
	}
	pid, err := objectID(placeID)
	if err != nil {
		return domain.Favorite{}, err
	}

	doc := favoriteDocument{UserID: uid, PlaceID: pid, CreatedAt: time.Now().UTC()}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.Favorite{}, domain.Conflict("place already in favorites")
		}
		return domain.Favorite{}, err
	}

	var inserted favoriteDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&inserted); err != nil {
		return domain.Favorite{}, notFoundOr(err, "favorite not found")
	}
	return mapFavoriteDocument(inserted), nil
}

func (r *FavoriteRepository) Delete(ctx context.Context, userID, placeID string) error {
	uid, err := objectID(userID)
	if err != nil {
		return err
	}
	pid, err := objectID(placeID)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"user": uid, "place": pid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFound("favorite not found")
	}
	return nil
}

func (r *FavoriteRepository) DeleteByUser(ctx context.Context, userID string) error {
	uid, err := objectID(userID)
	if err != nil {
		return err
	}
	_, err = r.collection.DeleteMany(ctx, bson.M{"user": uid})
	return err
}

func (r *FavoriteRepository) Find(ctx context.Context, userID, placeID string) (domain.Favorite, error) {
	uid, err := objectID(userID)
	if err != nil {
		return domain.Favorite{}, err
	}
	pid, err := objectID(placeID)
	if err != nil {
		return domain.Favorite{}, err
	}
	var doc favoriteDocument
	if err := r.collection.FindOne(ctx, bson.M{"user": uid, "place": pid}).Decode(&doc); err != nil {
		return domain.Favorite{}, notFoundOr(err, "favorite not found")
	}
	return mapFavoriteDocument(doc), nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	uid, err := objectID(userID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user": uid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	favorites := make([]domain.Favorite, 0)
	for cursor.Next(ctx) {
		var doc favoriteDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		favorites = append(favorites, mapFavoriteDocument(doc))
	}
	return favorites, cursor.Err()
}
