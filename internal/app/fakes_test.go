package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

// In-memory repository fakes. They keep just enough behaviour for the
// services under test: stable iteration order, id allocation, and optional
// injected failures.

type aggregateWrite struct {
	placeID       string
	averageRating float64
	reviewCount   int
}

type fakePlaces struct {
	seq        int
	order      []string
	byID       map[string]domain.Place
	candidates []domain.Place
	popular    []domain.Place

	aggregates   []aggregateWrite
	aggregateErr error

	lastCandidateQuery domain.CandidateQuery
}

func newFakePlaces() *fakePlaces {
	return &fakePlaces{byID: map[string]domain.Place{}}
}

func (f *fakePlaces) add(p domain.Place) domain.Place {
	if p.ID == "" {
		f.seq++
		p.ID = fmt.Sprintf("place-%d", f.seq)
	}
	if _, ok := f.byID[p.ID]; !ok {
		f.order = append(f.order, p.ID)
	}
	f.byID[p.ID] = p
	return p
}

func (f *fakePlaces) Create(_ context.Context, p domain.Place) (domain.Place, error) {
	return f.add(p), nil
}

func (f *fakePlaces) Update(_ context.Context, id string, upd domain.PlaceUpdate) (domain.Place, error) {
	p, ok := f.byID[id]
	if !ok {
		return domain.Place{}, domain.NotFound("place not found")
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.PriceRange != nil {
		p.PriceRange = *upd.PriceRange
	}
	f.byID[id] = p
	return p, nil
}

func (f *fakePlaces) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.NotFound("place not found")
	}
	delete(f.byID, id)
	return nil
}

func (f *fakePlaces) UpsertExternal(_ context.Context, p domain.Place) error {
	for _, id := range f.order {
		if f.byID[id].ExternalID == p.ExternalID {
			p.ID = id
			f.byID[id] = p
			return nil
		}
	}
	f.add(p)
	return nil
}

func (f *fakePlaces) UpdateAggregates(_ context.Context, id string, averageRating float64, reviewCount int) error {
	if f.aggregateErr != nil {
		return f.aggregateErr
	}
	p, ok := f.byID[id]
	if !ok {
		return domain.NotFound("place not found")
	}
	p.AverageRating = averageRating
	p.ReviewCount = reviewCount
	f.byID[id] = p
	f.aggregates = append(f.aggregates, aggregateWrite{placeID: id, averageRating: averageRating, reviewCount: reviewCount})
	return nil
}

func (f *fakePlaces) FindByID(_ context.Context, id string) (domain.Place, error) {
	p, ok := f.byID[id]
	if !ok {
		return domain.Place{}, domain.NotFound("place not found")
	}
	return p, nil
}

func (f *fakePlaces) FindByIDs(_ context.Context, ids []string) ([]domain.Place, error) {
	var out []domain.Place
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlaces) FindByExternalID(_ context.Context, externalID string) (domain.Place, error) {
	for _, id := range f.order {
		if f.byID[id].ExternalID == externalID {
			return f.byID[id], nil
		}
	}
	return domain.Place{}, domain.NotFound("place not found")
}

func (f *fakePlaces) Search(_ context.Context, _ domain.PlacesQuery) ([]domain.Place, error) {
	var out []domain.Place
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out, nil
}

// ListCandidates filters the configured candidate slice the way the store
// would: exclusions, category set, rating floor, limit.
func (f *fakePlaces) ListCandidates(_ context.Context, q domain.CandidateQuery) ([]domain.Place, error) {
	f.lastCandidateQuery = q

	excluded := make(map[string]struct{}, len(q.ExcludeIDs))
	for _, id := range q.ExcludeIDs {
		excluded[id] = struct{}{}
	}

	var out []domain.Place
	for _, p := range f.candidates {
		if _, ok := excluded[p.ID]; ok {
			continue
		}
		if p.AverageRating < q.MinRating {
			continue
		}
		// Category filter applies even when empty, matching the store's $in.
		match := false
		for _, c := range q.Categories {
			if p.Category == c {
				match = true
				break
			}
		}
		if !match {
			continue
		}
		out = append(out, p)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakePlaces) ListPopular(_ context.Context, _ []domain.Category, limit int) ([]domain.Place, error) {
	out := f.popular
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCache struct {
	data map[string][]byte
	gets int
	sets int
	dels []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	f.gets++
	b, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (f *fakeCache) Set(_ context.Context, key string, v any, _ int) error {
	f.sets++
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f.data[key] = b
	return nil
}

func (f *fakeCache) Del(_ context.Context, key string) error {
	f.dels = append(f.dels, key)
	delete(f.data, key)
	return nil
}

type fakeReviews struct {
	seq     int
	order   []string
	byID    map[string]domain.Review
	listErr error
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{byID: map[string]domain.Review{}}
}

func (f *fakeReviews) add(r domain.Review) domain.Review {
	if r.ID == "" {
		f.seq++
		r.ID = fmt.Sprintf("review-%d", f.seq)
	}
	if _, ok := f.byID[r.ID]; !ok {
		f.order = append(f.order, r.ID)
	}
	f.byID[r.ID] = r
	return r
}

func (f *fakeReviews) Create(_ context.Context, r domain.Review) (domain.Review, error) {
	return f.add(r), nil
}

func (f *fakeReviews) Update(_ context.Context, id string, upd domain.ReviewUpdate) (domain.Review, error) {
	r, ok := f.byID[id]
	if !ok {
		return domain.Review{}, domain.NotFound("review not found")
	}
	if upd.Rating != nil {
		r.Rating = *upd.Rating
	}
	if upd.Content != nil {
		r.Content = *upd.Content
	}
	if upd.IsBlogPost != nil {
		r.IsBlogPost = *upd.IsBlogPost
	}
	f.byID[id] = r
	return r, nil
}

func (f *fakeReviews) Delete(_ context.Context, id string) (domain.Review, error) {
	r, ok := f.byID[id]
	if !ok {
		return domain.Review{}, domain.NotFound("review not found")
	}
	delete(f.byID, id)
	for i, rid := range f.order {
		if rid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return r, nil
}

func (f *fakeReviews) DeleteByUser(_ context.Context, userID string) error {
	kept := f.order[:0]
	for _, id := range f.order {
		if f.byID[id].UserID == userID {
			delete(f.byID, id)
			continue
		}
		kept = append(kept, id)
	}
	f.order = kept
	return nil
}

func (f *fakeReviews) FindByID(_ context.Context, id string) (domain.Review, error) {
	r, ok := f.byID[id]
	if !ok {
		return domain.Review{}, domain.NotFound("review not found")
	}
	return r, nil
}

func (f *fakeReviews) ListByPlace(_ context.Context, placeID string) ([]domain.Review, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.Review
	for _, id := range f.order {
		if f.byID[id].PlaceID == placeID {
			out = append(out, f.byID[id])
		}
	}
	return out, nil
}

func (f *fakeReviews) ListByUser(_ context.Context, userID string) ([]domain.Review, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.Review
	for _, id := range f.order {
		if f.byID[id].UserID == userID {
			out = append(out, f.byID[id])
		}
	}
	return out, nil
}

type fakeUsers struct {
	seq  int
	byID map[string]domain.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]domain.User{}}
}

func (f *fakeUsers) add(u domain.User) domain.User {
	if u.ID == "" {
		f.seq++
		u.ID = fmt.Sprintf("user-%d", f.seq)
	}
	f.byID[u.ID] = u
	return u
}

func (f *fakeUsers) Create(_ context.Context, u domain.User) (domain.User, error) {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.User{}, domain.Conflict("email already registered")
		}
	}
	return f.add(u), nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id string, upd domain.ProfileUpdate) (domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.NotFound("user not found")
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.ProfilePicture != nil {
		u.ProfilePicture = *upd.ProfilePicture
	}
	f.byID[id] = u
	return u, nil
}

func (f *fakeUsers) UpdatePreferences(_ context.Context, id string, p domain.Preferences) (domain.Preferences, error) {
	u, ok := f.byID[id]
	if !ok {
		return domain.Preferences{}, domain.NotFound("user not found")
	}
	u.Preferences = p
	f.byID[id] = u
	return p, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.NotFound("user not found")
	}
	u.PasswordHash = passwordHash
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.NotFound("user not found")
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.NotFound("user not found")
	}
	return u, nil
}

func (f *fakeUsers) FindByIDs(_ context.Context, ids []string) ([]domain.User, error) {
	var out []domain.User
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.NotFound("user not found")
}

type fakeFavorites struct {
	seq   int
	order []string
	byKey map[string]domain.Favorite
}

func newFakeFavorites() *fakeFavorites {
	return &fakeFavorites{byKey: map[string]domain.Favorite{}}
}

func favKey(userID, placeID string) string { return userID + "/" + placeID }

func (f *fakeFavorites) Create(_ context.Context, userID, placeID string) (domain.Favorite, error) {
	key := favKey(userID, placeID)
	if _, ok := f.byKey[key]; ok {
		return domain.Favorite{}, domain.Conflict("place already in favorites")
	}
	f.seq++
	fav := domain.Favorite{ID: fmt.Sprintf("fav-%d", f.seq), UserID: userID, PlaceID: placeID}
	f.byKey[key] = fav
	f.order = append(f.order, key)
	return fav, nil
}

func (f *fakeFavorites) Delete(_ context.Context, userID, placeID string) error {
	key := favKey(userID, placeID)
	if _, ok := f.byKey[key]; !ok {
		return domain.NotFound("favorite not found")
	}
	delete(f.byKey, key)
	for i, k := range f.order {
		if k == key {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeFavorites) DeleteByUser(_ context.Context, userID string) error {
	kept := f.order[:0]
	for _, key := range f.order {
		if f.byKey[key].UserID == userID {
			delete(f.byKey, key)
			continue
		}
		kept = append(kept, key)
	}
	f.order = kept
	return nil
}

func (f *fakeFavorites) Find(_ context.Context, userID, placeID string) (domain.Favorite, error) {
	fav, ok := f.byKey[favKey(userID, placeID)]
	if !ok {
		return domain.Favorite{}, domain.NotFound("favorite not found")
	}
	return fav, nil
}

func (f *fakeFavorites) ListByUser(_ context.Context, userID string) ([]domain.Favorite, error) {
	var out []domain.Favorite
	for _, key := range f.order {
		if f.byKey[key].UserID == userID {
			out = append(out, f.byKey[key])
		}
	}
	return out, nil
}
