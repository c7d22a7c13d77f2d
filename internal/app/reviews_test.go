package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

func reviewFixture(t *testing.T) (*fakeUsers, *fakePlaces, *fakeReviews, *ReviewService, domain.User, domain.Place) {
	t.Helper()
	users := newFakeUsers()
	places := newFakePlaces()
	reviews := newFakeReviews()

	user := users.add(domain.User{Name: "Monique", Email: "monique@example.com"})
	place := places.add(domain.Place{Name: "Franklin Barbecue", Category: domain.CategoryRestaurant})

	ratings := NewRatingService(reviews, places, nil)
	svc := NewReviewService(reviews, places, users, ratings, nil)
	return users, places, reviews, svc, user, place
}

func TestCreateReviewRecomputesAggregates(t *testing.T) {
	ctx := context.Background()
	_, places, _, svc, user, place := reviewFixture(t)

	created, err := svc.Create(ctx, user.ID, place.ID, 5, "brisket worth the line", false)
	require.NoError(t, err)
	assert.Equal(t, place.ID, created.Review.PlaceID)
	assert.Equal(t, place.Name, created.Place.Name)

	require.Len(t, places.aggregates, 1)
	assert.Equal(t, 5.0, places.aggregates[0].averageRating)
	assert.Equal(t, 1, places.aggregates[0].reviewCount)

	_, err = svc.Create(ctx, user.ID, place.ID, 4, "still great", false)
	require.NoError(t, err)
	require.Len(t, places.aggregates, 2)
	assert.Equal(t, 4.5, places.aggregates[1].averageRating)
	assert.Equal(t, 2, places.aggregates[1].reviewCount)
}

func TestCreateReviewValidation(t *testing.T) {
	ctx := context.Background()
	_, _, _, svc, user, place := reviewFixture(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(ctx, user.ID, place.ID, rating, "", false)
		assert.Equal(t, domain.KindInvalid, domain.KindOf(err))
	}

	_, err := svc.Create(ctx, "no-such-user", place.ID, 4, "", false)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = svc.Create(ctx, user.ID, "no-such-place", 4, "", false)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestCreateReviewSurvivesAggregateFailure(t *testing.T) {
	ctx := context.Background()
	_, places, reviews, svc, user, place := reviewFixture(t)

	places.aggregateErr = errors.New("write timeout")
	created, err := svc.Create(ctx, user.ID, place.ID, 5, "review sticks even if stats lag", false)
	require.NoError(t, err)

	stored, err := reviews.FindByID(ctx, created.Review.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Rating)
	assert.Empty(t, places.aggregates)
}

func TestUpdateReviewOwnerOnly(t *testing.T) {
	ctx := context.Background()
	users, _, _, svc, user, place := reviewFixture(t)
	other := users.add(domain.User{Name: "Someone Else", Email: "else@example.com"})

	created, err := svc.Create(ctx, user.ID, place.ID, 4, "solid", false)
	require.NoError(t, err)

	newRating := 2
	_, err = svc.Update(ctx, other.ID, created.Review.ID, domain.ReviewUpdate{Rating: &newRating})
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	err = svc.Delete(ctx, other.ID, created.Review.ID)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
}

func TestUpdateReviewRecomputesOnlyOnRatingChange(t *testing.T) {
	ctx := context.Background()
	_, places, _, svc, user, place := reviewFixture(t)

	created, err := svc.Create(ctx, user.ID, place.ID, 4, "solid", false)
	require.NoError(t, err)
	writesAfterCreate := len(places.aggregates)

	content := "edited the text only"
	_, err = svc.Update(ctx, user.ID, created.Review.ID, domain.ReviewUpdate{Content: &content})
	require.NoError(t, err)
	assert.Len(t, places.aggregates, writesAfterCreate, "content edit must not touch aggregates")

	sameRating := 4
	_, err = svc.Update(ctx, user.ID, created.Review.ID, domain.ReviewUpdate{Rating: &sameRating})
	require.NoError(t, err)
	assert.Len(t, places.aggregates, writesAfterCreate, "unchanged rating must not touch aggregates")

	newRating := 2
	_, err = svc.Update(ctx, user.ID, created.Review.ID, domain.ReviewUpdate{Rating: &newRating})
	require.NoError(t, err)
	require.Len(t, places.aggregates, writesAfterCreate+1)
	last := places.aggregates[len(places.aggregates)-1]
	assert.Equal(t, 2.0, last.averageRating)
}

func TestDeleteReviewRecomputesAfterRemoval(t *testing.T) {
	ctx := context.Background()
	users, places, _, svc, user, place := reviewFixture(t)
	other := users.add(domain.User{Name: "Second Reviewer", Email: "second@example.com"})

	first, err := svc.Create(ctx, user.ID, place.ID, 5, "", false)
	require.NoError(t, err)
	_, err = svc.Create(ctx, other.ID, place.ID, 3, "", false)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID, first.Review.ID))

	last := places.aggregates[len(places.aggregates)-1]
	assert.Equal(t, 3.0, last.averageRating)
	assert.Equal(t, 1, last.reviewCount)
}

func TestListByPlaceJoinsAuthors(t *testing.T) {
	ctx := context.Background()
	_, _, _, svc, user, place := reviewFixture(t)

	_, err := svc.Create(ctx, user.ID, place.ID, 5, "great", false)
	require.NoError(t, err)

	out, err := svc.ListByPlace(ctx, place.ID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, user.ID, out[0].Author.ID)
	assert.Equal(t, user.Name, out[0].Author.Name)
}

func TestListByUserJoinsPlaces(t *testing.T) {
	ctx := context.Background()
	_, _, _, svc, user, place := reviewFixture(t)

	_, err := svc.Create(ctx, user.ID, place.ID, 5, "great", false)
	require.NoError(t, err)

	out, err := svc.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, place.ID, out[0].Place.ID)
	assert.Equal(t, place.Name, out[0].Place.Name)
}
