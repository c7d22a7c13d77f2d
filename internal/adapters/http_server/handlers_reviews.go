package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/app"
	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

func (h *Handlers) listPlaceReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.ListByPlace(r.Context(), chi.URLParam(r, "placeId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, reviews)
}

func (h *Handlers) listUserReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.ListByUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

type reviewRequest struct {
	PlaceID    string `json:"placeId"`
	Rating     int    `json:"rating"`
	Content    string `json:"content"`
	IsBlogPost bool   `json:"isBlogPost"`
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	review, err := h.Reviews.Create(r.Context(), UserID(r), req.PlaceID, req.Rating, req.Content, req.IsBlogPost)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

type reviewUpdateRequest struct {
	Rating     *int      `json:"rating"`
	Content    *string   `json:"content"`
	IsBlogPost *bool     `json:"isBlogPost"`
	Images     *[]string `json:"images"`
}

func (h *Handlers) updateReview(w http.ResponseWriter, r *http.Request) {
	var req reviewUpdateRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	review, err := h.Reviews.Update(r.Context(), UserID(r), chi.URLParam(r, "id"), domain.ReviewUpdate{
		Rating:     req.Rating,
		Content:    req.Content,
		IsBlogPost: req.IsBlogPost,
		Images:     req.Images,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.Reviews.Delete(r.Context(), UserID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "review deleted"})
}

func (h *Handlers) getRecommendations(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, app.DefaultRecommendationLimit)
	recs, err := h.Recommendations.Recommendations(r.Context(), UserID(r), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *Handlers) getTasteProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Recommendations.TasteProfile(r.Context(), UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
