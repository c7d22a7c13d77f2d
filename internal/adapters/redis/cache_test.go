package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "github.com/baileyjas4/MoniquesCritique-backend/internal/adapters/redis"
	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

func TestCache_SetGetDel(t *testing.T) {
	srv := miniredis.RunT(t)
	cache := redisad.New(srv.Addr(), "", 0)
	ctx := context.Background()

	in := domain.Place{ID: "p1", Name: "Blue Bottle", Category: domain.CategoryCoffeeShop, AverageRating: 4.7, ReviewCount: 12}
	if err := cache.Set(ctx, "place:p1", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out domain.Place
	ok, err := cache.Get(ctx, "place:p1", &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if out.Name != "Blue Bottle" || out.AverageRating != 4.7 || out.ReviewCount != 12 {
		t.Fatalf("unexpected value: %+v", out)
	}

	if err := cache.Del(ctx, "place:p1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, err = cache.Get(ctx, "place:p1", &out)
	if err != nil {
		t.Fatalf("get after del: %v", err)
	}
	if ok {
		t.Fatalf("expected miss after del")
	}
}

func TestCache_MissIsNotError(t *testing.T) {
	srv := miniredis.RunT(t)
	cache := redisad.New(srv.Addr(), "", 0)

	var out domain.Place
	ok, err := cache.Get(context.Background(), "absent", &out)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ok {
		t.Fatalf("expected miss")
	}
}
