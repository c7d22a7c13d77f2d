package placesource

import (
	"fmt"
	"strings"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

// normalizePlace maps one opaque provider record onto the place schema.
// Provider ratings are 0-10, halved to our 0-5 scale; provider price tiers
// (1-4) collapse to the three local tiers.
func normalizePlace(raw map[string]any) domain.Place {
	category := mapCategory(firstCategoryName(raw))
	city := lookupStr(raw, "location.locality")

	description := lookupStr(raw, "description")
	if description == "" {
		in := city
		if in == "" {
			in = "the area"
		}
		description = fmt.Sprintf("%s in %s", category.Display(), in)
	}

	p := domain.Place{
		ExternalID:  lookupStr(raw, "fsq_place_id"),
		Name:        lookupStr(raw, "name"),
		Category:    category,
		Description: description,
		PriceRange:  mapPriceRange(lookupNum(raw, "price")),
		Location: domain.Location{
			Address: lookupStr(raw, "location.address"),
			City:    city,
			State:   lookupStr(raw, "location.region"),
			ZipCode: lookupStr(raw, "location.postcode"),
		},
	}

	if lat, ok := lookupFloat(raw, "latitude"); ok {
		p.Location.Lat = &lat
	}
	if lng, ok := lookupFloat(raw, "longitude"); ok {
		p.Location.Lng = &lng
	}
	if rating, ok := lookupFloat(raw, "rating"); ok {
		p.AverageRating = rating / 2
	}

	if photos, ok := raw["photos"].([]any); ok {
		for _, ph := range photos {
			m, ok := ph.(map[string]any)
			if !ok {
				continue
			}
			prefix, suffix := lookupStr(m, "prefix"), lookupStr(m, "suffix")
			if prefix != "" && suffix != "" {
				p.Images = append(p.Images, prefix+"original"+suffix)
			}
		}
	}
	return p
}

func firstCategoryName(raw map[string]any) string {
	cats, ok := raw["categories"].([]any)
	if !ok || len(cats) == 0 {
		return ""
	}
	first, ok := cats[0].(map[string]any)
	if !ok {
		return ""
	}
	return lookupStr(first, "name")
}

func mapCategory(providerCategory string) domain.Category {
	c := strings.ToLower(providerCategory)
	switch {
	case c == "":
		return domain.CategoryOther
	case containsAny(c, "restaurant", "dining", "pizzeria", "pizza", "eatery", "bistro", "grill", "diner"):
		return domain.CategoryRestaurant
	case containsAny(c, "coffee"):
		return domain.CategoryCoffeeShop
	case containsAny(c, "café", "cafe", "tea room", "bakery"):
		return domain.CategoryCafe
	case containsAny(c, "bar", "pub", "lounge", "tavern", "brewery"):
		return domain.CategoryBar
	default:
		return domain.CategoryOther
	}
}

func mapPriceRange(price float64) string {
	switch {
	case price <= 0:
		return ""
	case price <= 1:
		return "$"
	case price <= 2:
		return "$$"
	default:
		return "$$$"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// lookupStr returns the string at a dot path, or "".
func lookupStr(m map[string]any, path string) string {
	v := lookupAny(m, path)
	s, _ := v.(string)
	return s
}

func lookupNum(m map[string]any, path string) float64 {
	f, _ := lookupFloat(m, path)
	return f
}

func lookupFloat(m map[string]any, path string) (float64, bool) {
	switch v := lookupAny(m, path).(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}
