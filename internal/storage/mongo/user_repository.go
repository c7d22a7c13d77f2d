package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

// UserRepository implements domain.UserRepository over MongoDB.
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection(UsersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, u domain.User) (domain.User, error) {
	now := time.Now().UTC()
	doc := userDocument{
		Email:          u.Email,
		Password:       u.PasswordHash,
		Name:           u.Name,
		ProfilePicture: u.ProfilePicture,
		Preferences:    mapPreferences(u.Preferences),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.User{}, domain.Conflict("email already registered")
		}
		return domain.User{}, err
	}

	var inserted userDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&inserted); err != nil {
		return domain.User{}, notFoundOr(err, "user not found")
	}
	return mapUserDocument(inserted), nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) (domain.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.User{}, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.ProfilePicture != nil {
		set["profilePicture"] = *upd.ProfilePicture
	}

	var doc userDocument
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return domain.User{}, notFoundOr(err, "user not found")
	}
	return mapUserDocument(doc), nil
}

func (r *UserRepository) UpdatePreferences(ctx context.Context, id string, p domain.Preferences) (domain.Preferences, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.Preferences{}, err
	}

	var doc userDocument
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"preferences": mapPreferences(p), "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return domain.Preferences{}, notFoundOr(err, "user not found")
	}
	return mapUserDocument(doc).Preferences, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"password":  passwordHash,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.User{}, err
	}
	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return domain.User{}, notFoundOr(err, "user not found")
	}
	return mapUserDocument(doc), nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs(ids)}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]domain.User, 0)
	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		users = append(users, mapUserDocument(doc))
	}
	return users, cursor.Err()
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return domain.User{}, notFoundOr(err, "user not found")
	}
	return mapUserDocument(doc), nil
}

func mapPreferences(p domain.Preferences) preferencesDocument {
	categories := make([]string, 0, len(p.FavoriteCategories))
	for _, c := range p.FavoriteCategories {
		categories = append(categories, string(c))
	}
	restrictions := p.DietaryRestrictions
	if restrictions == nil {
		restrictions = []string{}
	}
	return preferencesDocument{
		FavoriteCategories:  categories,
		PriceRange:          p.PriceRange,
		DietaryRestrictions: restrictions,
	}
}
