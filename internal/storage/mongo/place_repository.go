package mongo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

// PlaceRepository implements domain.PlaceRepository over MongoDB.
type PlaceRepository struct {
	collection *mongo.Collection
}

func NewPlaceRepository(db *mongo.Database) *PlaceRepository {
	return &PlaceRepository{collection: db.Collection(PlacesCollection)}
}

func (r *PlaceRepository) Create(ctx context.Context, p domain.Place) (domain.Place, error) {
	now := time.Now().UTC()
	doc := placeDocument{
		ExternalID:    p.ExternalID,
		Name:          p.Name,
		Category:      string(p.Category),
		Location:      locationDocument(p.Location),
		Description:   p.Description,
		PriceRange:    p.PriceRange,
		AverageRating: p.AverageRating,
		ReviewCount:   p.ReviewCount,
		Images:        p.Images,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.Place{}, domain.Conflict("place already exists for external id " + p.ExternalID)
		}
		return domain.Place{}, err
	}
	return r.findByObjectID(ctx, res.InsertedID)
}

func (r *PlaceRepository) Update(ctx context.Context, id string, upd domain.PlaceUpdate) (domain.Place, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.Place{}, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Category != nil {
		set["category"] = string(*upd.Category)
	}
	if upd.Location != nil {
		set["location"] = locationDocument(*upd.Location)
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.PriceRange != nil {
		set["priceRange"] = *upd.PriceRange
	}
	if upd.Images != nil {
		set["images"] = *upd.Images
	}

	var doc placeDocument
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return domain.Place{}, notFoundOr(err, "place not found")
	}
	return mapPlaceDocument(doc), nil
}

func (r *PlaceRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFound("place not found")
	}
	return nil
}

// UpsertExternal inserts or refreshes an externally sourced place. Profile
// fields are overwritten; the locally derived aggregates are only seeded on
// first insert and never touched afterwards.
func (r *PlaceRepository) UpsertExternal(ctx context.Context, p domain.Place) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":        p.Name,
			"category":    string(p.Category),
			"location":    locationDocument(p.Location),
			"description": p.Description,
			"priceRange":  p.PriceRange,
			"images":      p.Images,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{
			"averageRating": p.AverageRating,
			"reviewCount":   0,
			"createdAt":     now,
		},
	}
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"externalId": p.ExternalID},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}

// UpdateAggregates writes the two derived rating fields and nothing else.
func (r *PlaceRepository) UpdateAggregates(ctx context.Context, id string, averageRating float64, reviewCount int) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"averageRating": averageRating,
		"reviewCount":   reviewCount,
		"updatedAt":     time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("place not found")
	}
	return nil
}

func (r *PlaceRepository) FindByID(ctx context.Context, id string) (domain.Place, error) {
	oid, err := objectID(id)
	if err != nil {
		return domain.Place{}, err
	}
	var doc placeDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return domain.Place{}, notFoundOr(err, "place not found")
	}
	return mapPlaceDocument(doc), nil
}

func (r *PlaceRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Place, error) {
	if len(ids) == 0 {
		return []domain.Place{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": objectIDs(ids)}}, nil)
}

func (r *PlaceRepository) FindByExternalID(ctx context.Context, externalID string) (domain.Place, error) {
	var doc placeDocument
	if err := r.collection.FindOne(ctx, bson.M{"externalId": externalID}).Decode(&doc); err != nil {
		return domain.Place{}, notFoundOr(err, "place not found")
	}
	return mapPlaceDocument(doc), nil
}

func (r *PlaceRepository) Search(ctx context.Context, q domain.PlacesQuery) ([]domain.Place, error) {
	filter := bson.M{}
	if q.Name != "" {
		filter["name"] = bson.M{"$regex": q.Name, "$options": "i"}
	}
	if q.City != "" {
		filter["location.city"] = bson.M{"$regex": q.City, "$options": "i"}
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.PriceRange != "" {
		filter["priceRange"] = q.PriceRange
	}

	opts := options.Find().SetSort(parseSort(q.Sort))
	return r.find(ctx, filter, opts)
}

// ListCandidates returns places the user has not reviewed, in the preferred
// categories, at or above the rating floor, best first.
func (r *PlaceRepository) ListCandidates(ctx context.Context, q domain.CandidateQuery) ([]domain.Place, error) {
	filter := bson.M{
		"averageRating": bson.M{"$gte": q.MinRating},
	}
	if len(q.ExcludeIDs) > 0 {
		filter["_id"] = bson.M{"$nin": objectIDs(q.ExcludeIDs)}
	}
	categories := make([]string, 0, len(q.Categories))
	for _, c := range q.Categories {
		categories = append(categories, string(c))
	}
	filter["category"] = bson.M{"$in": categories}

	opts := options.Find().SetSort(ratingSort())
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return r.find(ctx, filter, opts)
}

func (r *PlaceRepository) ListPopular(ctx context.Context, categories []domain.Category, limit int) ([]domain.Place, error) {
	filter := bson.M{}
	if len(categories) > 0 {
		names := make([]string, 0, len(categories))
		for _, c := range categories {
			names = append(names, string(c))
		}
		filter["category"] = bson.M{"$in": names}
	}

	opts := options.Find().SetSort(ratingSort())
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, filter, opts)
}

func (r *PlaceRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Place, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection.Find(ctx, filter, opts)
	} else {
		cursor, err = r.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	places := make([]domain.Place, 0)
	for cursor.Next(ctx) {
		var doc placeDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		places = append(places, mapPlaceDocument(doc))
	}
	return places, cursor.Err()
}

func (r *PlaceRepository) findByObjectID(ctx context.Context, id any) (domain.Place, error) {
	var doc placeDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return domain.Place{}, notFoundOr(err, "place not found")
	}
	return mapPlaceDocument(doc), nil
}

// ratingSort orders best-rated first, breaking ties on review volume.
func ratingSort() bson.D {
	return bson.D{{Key: "averageRating", Value: -1}, {Key: "reviewCount", Value: -1}}
}

// parseSort turns "-field" / "field" into a Mongo sort document; unknown
// input falls back to rating descending.
func parseSort(sort string) bson.D {
	field := strings.TrimSpace(sort)
	dir := 1
	if strings.HasPrefix(field, "-") {
		field = field[1:]
		dir = -1
	}
	switch field {
	case "averageRating", "reviewCount", "name", "createdAt":
		return bson.D{{Key: field, Value: dir}}
	default:
		return bson.D{{Key: "averageRating", Value: -1}}
	}
}
