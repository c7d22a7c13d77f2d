package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

func userFixture(t *testing.T) (context.Context, *fakeUsers, *fakeReviews, *fakeFavorites, *fakePlaces, *UserService, domain.User) {
	t.Helper()
	ctx := context.Background()
	users := newFakeUsers()
	reviews := newFakeReviews()
	favorites := newFakeFavorites()
	places := newFakePlaces()
	auth := NewAuthService(users, "test-secret", time.Hour)

	registered, err := auth.Register(ctx, "monique@example.com", "s3cretpass", "Monique")
	require.NoError(t, err)

	svc := NewUserService(users, reviews, favorites, places, auth)
	return ctx, users, reviews, favorites, places, svc, registered.User
}

func TestChangePassword(t *testing.T) {
	ctx, _, _, _, _, svc, user := userFixture(t)

	err := svc.ChangePassword(ctx, user.ID, "wrong-password", "newpassword1")
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	err = svc.ChangePassword(ctx, user.ID, "s3cretpass", "short")
	assert.Equal(t, domain.KindInvalid, domain.KindOf(err))

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "s3cretpass", "newpassword1"))

	updated, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, svc.auth.CheckPassword(updated, "newpassword1"))
	assert.False(t, svc.auth.CheckPassword(updated, "s3cretpass"))
}

func TestDeleteAccountCascades(t *testing.T) {
	ctx, users, reviews, favorites, places, svc, user := userFixture(t)

	place := places.add(domain.Place{Name: "Franklin Barbecue"})
	reviews.add(domain.Review{UserID: user.ID, PlaceID: place.ID, Rating: 5})
	_, err := favorites.Create(ctx, user.ID, place.ID)
	require.NoError(t, err)

	err = svc.DeleteAccount(ctx, user.ID, "wrong-password")
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	require.NoError(t, svc.DeleteAccount(ctx, user.ID, "s3cretpass"))

	_, err = users.FindByID(ctx, user.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	left, err := reviews.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	favs, err := favorites.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestUpdatePreferencesValidation(t *testing.T) {
	ctx, _, _, _, _, svc, user := userFixture(t)

	_, err := svc.UpdatePreferences(ctx, user.ID, domain.Preferences{
		FavoriteCategories: []domain.Category{"nightclub"},
	})
	assert.Equal(t, domain.KindInvalid, domain.KindOf(err))

	_, err = svc.UpdatePreferences(ctx, user.ID, domain.Preferences{PriceRange: "$$$$$"})
	assert.Equal(t, domain.KindInvalid, domain.KindOf(err))

	prefs, err := svc.UpdatePreferences(ctx, user.ID, domain.Preferences{
		FavoriteCategories: []domain.Category{domain.CategoryCoffeeShop, domain.CategoryBar},
		PriceRange:         "$$",
	})
	require.NoError(t, err)
	assert.Equal(t, "$$", prefs.PriceRange)

	stored, err := svc.Preferences(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, prefs, stored)
}

func TestHistoryLimitsReviews(t *testing.T) {
	ctx, _, reviews, favorites, places, svc, user := userFixture(t)

	place := places.add(domain.Place{Name: "Franklin Barbecue", Category: domain.CategoryRestaurant})
	for i := 0; i < historyReviewLimit+4; i++ {
		reviews.add(domain.Review{UserID: user.ID, PlaceID: place.ID, Rating: 4})
	}
	fav := places.add(domain.Place{Name: "Houndstooth", Category: domain.CategoryCoffeeShop})
	_, err := favorites.Create(ctx, user.ID, fav.ID)
	require.NoError(t, err)

	history, err := svc.History(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, history.User.ID)
	assert.Len(t, history.Reviews, historyReviewLimit)
	require.Len(t, history.Favorites, 1)
	assert.Equal(t, fav.ID, history.Favorites[0].ID)
}

func TestFavoritesAddRemoveList(t *testing.T) {
	ctx := context.Background()
	favorites := newFakeFavorites()
	places := newFakePlaces()
	svc := NewFavoritesService(favorites, places)

	first := places.add(domain.Place{Name: "Franklin Barbecue"})
	second := places.add(domain.Place{Name: "Houndstooth"})

	_, err := svc.Add(ctx, "user-1", "no-such-place")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = svc.Add(ctx, "user-1", first.ID)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "user-1", second.ID)
	require.NoError(t, err)

	_, err = svc.Add(ctx, "user-1", first.ID)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	listed, err := svc.ListPlaces(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, listed, 2)

	require.NoError(t, svc.Remove(ctx, "user-1", first.ID))
	listed, err = svc.ListPlaces(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, second.ID, listed[0].ID)
}
