package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	res, err := h.Auth.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	res, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, domain.SummarizeUser(user))
}

type profileRequest struct {
	Name           *string `json:"name"`
	ProfilePicture *string `json:"profilePicture"`
}

func (h *Handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	user, err := h.Users.UpdateProfile(r.Context(), UserID(r), domain.ProfileUpdate{
		Name:           req.Name,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handlers) changePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.Users.ChangePassword(r.Context(), UserID(r), req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

func (h *Handlers) deleteAccount(w http.ResponseWriter, r *http.Request) {
	var req deleteAccountRequest
	if err := decode(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.Users.DeleteAccount(r.Context(), UserID(r), req.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
}

func (h *Handlers) getPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.Users.Preferences(r.Context(), UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (h *Handlers) updatePreferences(w http.ResponseWriter, r *http.Request) {
	var prefs domain.Preferences
	if err := decode(r, &prefs); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	out, err := h.Users.UpdatePreferences(r.Context(), UserID(r), prefs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.Users.History(r.Context(), UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *Handlers) listFavorites(w http.ResponseWriter, r *http.Request) {
	places, err := h.Favorites.ListPlaces(r.Context(), UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, places)
}

func (h *Handlers) addFavorite(w http.ResponseWriter, r *http.Request) {
	fav, err := h.Favorites.Add(r.Context(), UserID(r), chi.URLParam(r, "placeId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fav)
}

func (h *Handlers) removeFavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.Favorites.Remove(r.Context(), UserID(r), chi.URLParam(r, "placeId")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "favorite removed"})
}
