package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/app"
	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

type Handlers struct {
	Auth            *app.AuthService
	Users           *app.UserService
	Places          *app.PlaceService
	Reviews         *app.ReviewService
	Favorites       *app.FavoritesService
	Recommendations *app.RecommendationService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	authed := Auth(h.Auth)

	s.mux.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)

			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Put("/profile", h.updateProfile)
				r.Put("/password", h.changePassword)
				r.Delete("/account", h.deleteAccount)
				r.Get("/preferences", h.getPreferences)
				r.Put("/preferences", h.updatePreferences)
				r.Get("/history", h.getHistory)
			})

			// Keep last so "profile" etc. are not swallowed by the id param.
			r.Get("/{id}", h.getUser)
		})

		r.Route("/places", func(r chi.Router) {
			r.Get("/", h.searchPlaces)
			r.Get("/{id}", h.getPlace)

			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Post("/", h.createPlace)
				r.Put("/{id}", h.updatePlace)
				r.Delete("/{id}", h.deletePlace)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/place/{placeId}", h.listPlaceReviews)
			r.Get("/user/{userId}", h.listUserReviews)

			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Post("/", h.createReview)
				r.Put("/{id}", h.updateReview)
				r.Delete("/{id}", h.deleteReview)
			})
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Use(authed)
			r.Get("/", h.listFavorites)
			r.Post("/{placeId}", h.addFavorite)
			r.Delete("/{placeId}", h.removeFavorite)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Use(authed)
			r.Get("/", h.getRecommendations)
			r.Get("/taste-profile", h.getTasteProfile)
		})
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps a service error to a problem response using its kind.
func writeError(w http.ResponseWriter, err error) {
	status := domain.HTTPStatus(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		// Untyped errors stay in the logs, not the wire.
		log.Error().Err(err).Msg("internal error")
		detail = "internal error"
	}
	writeProblem(w, status, http.StatusText(status), detail)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// parseLimit reads a ?limit= query value, falling back to def when the value
// is missing, malformed, or out of range.
func parseLimit(r *http.Request, def int) int {
	ls := r.URL.Query().Get("limit")
	if ls == "" {
		return def
	}
	l, err := strconv.Atoi(ls)
	if err != nil || l <= 0 || l > 50 {
		return def
	}
	return l
}
