package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

// ReviewRepository implements domain.ReviewRepository over MongoDB.
type ReviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection(ReviewsCollection)}
}

func (r *ReviewRepository) Create(ctx context.Context, review domain.Review) (domain.Review, error) {
	userID, err := objectID(review.UserID)
	if err != nil {
		return domain.Review{}, err
	}
	placeID, err := objectID(review.PlaceID)
	if err != nil {
		return domain.Review{}, err
	}

	now := time.Now().UTC()
	doc := reviewDocument{
		UserID:     userID,
		PlaceID:    placeID,
		Rating:     review.Rating,
		Content:    review.Content,
		IsBlogPost: review.IsBlogPost,
		Images:     review.Images,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return domain.Review{}, err
	}

	var inserted reviewDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&inserted); err != nil {
		return domain.Review{}, notFoundOr(err, "review not found")
	}
	return mapReviewDocument(inserted), nil
}

func (r *ReviewRepository) Update(ctx context.Context, id string, upd domain.ReviewUpdate) (domain.Review, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.Review{}, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Rating != nil {
		set["rating"] = *upd.Rating
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.IsBlogPost != nil {
		set["isBlogPost"] = *upd.IsBlogPost
	}
	if upd.Images != nil {
		set["images"] = *upd.Images
	}

	var doc reviewDocument
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return domain.Review{}, notFoundOr(err, "review not found")
	}
	return mapReviewDocument(doc), nil
}

// Delete removes the review and returns it, so the caller can recompute the
// affected place's aggregates after the removal.
func (r *ReviewRepository) Delete(ctx context.Context, id string) (domain.Review, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.Review{}, err
	}
	var doc reviewDocument
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return domain.Review{}, notFoundOr(err, "review not found")
	}
	return mapReviewDocument(doc), nil
}

func (r *ReviewRepository) DeleteByUser(ctx context.Context, userID string) error {
	oid, err := objectID(userID)
	if err != nil {
		return err
	}
	_, err = r.collection.DeleteMany(ctx, bson.M{"user": oid})
	return err
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (domain.Review, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.Review{}, err
	}
	var doc reviewDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return domain.Review{}, notFoundOr(err, "review not found")
	}
	return mapReviewDocument(doc), nil
}

func (r *ReviewRepository) ListByPlace(ctx context.Context, placeID string) ([]domain.Review, error) {
	oid, err := objectID(placeID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"place": oid})
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]domain.Review, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"user": oid})
}

func (r *ReviewRepository) find(ctx context.Context, filter bson.M) ([]domain.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := make([]domain.Review, 0)
	for cursor.Next(ctx) {
		var doc reviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		reviews = append(reviews, mapReviewDocument(doc))
	}
	return reviews, cursor.Err()
}
