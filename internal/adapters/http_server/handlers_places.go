package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

func (h *Handlers) searchPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	places, err := h.Places.Search(r.Context(), domain.PlacesQuery{
		Name:       q.Get("name"),
		City:       q.Get("city"),
		Category:   q.Get("category"),
		PriceRange: q.Get("priceRange"),
		Sort:       q.Get("sort"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, places)
}

func (h *Handlers) getPlace(w http.ResponseWriter, r *http.Request) {
	place, err := h.Places.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, place)
}

type placeRequest struct {
	Name        string          `json:"name"`
	Category    domain.Category `json:"category"`
	Location    domain.Location `json:"location"`
	Description string          `json:"description"`
	PriceRange  string          `json:"priceRange"`
	Images      []string        `json:"images"`
}

func (h *Handlers) createPlace(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	place, err := h.Places.Create(r.Context(), domain.Place{
		Name:        req.Name,
		Category:    req.Category,
		Location:    req.Location,
		Description: req.Description,
		PriceRange:  req.PriceRange,
		Images:      req.Images,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, place)
}

type placeUpdateRequest struct {
	Name        *string          `json:"name"`
	Category    *domain.Category `json:"category"`
	Location    *domain.Location `json:"location"`
	Description *string          `json:"description"`
	PriceRange  *string          `json:"priceRange"`
	Images      *[]string        `json:"images"`
}

func (h *Handlers) updatePlace(w http.ResponseWriter, r *http.Request) {
	var req placeUpdateRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	place, err := h.Places.Update(r.Context(), chi.URLParam(r, "id"), domain.PlaceUpdate{
		Name:        req.Name,
		Category:    req.Category,
		Location:    req.Location,
		Description: req.Description,
		PriceRange:  req.PriceRange,
		Images:      req.Images,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, place)
}

func (h *Handlers) deletePlace(w http.ResponseWriter, r *http.Request) {
	if err := h.Places.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "place deleted"})
}
