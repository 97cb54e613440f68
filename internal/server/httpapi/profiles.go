package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/go-chi/chi/v5"
)

// AvatarRequest is the body of POST /api/profiles/me/avatar.
type AvatarRequest struct {
	ContentType string `json:"contentType" validate:"required"`
}

// GetProfile handles GET /api/profiles/{id}.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	u, err := s.deps.Profiles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, u)
}

// ListProfiles handles GET /api/profiles?role=.
func (s *Server) ListProfiles(w http.ResponseWriter, r *http.Request) {
	users, err := s.deps.Profiles.ListByRole(r.Context(), models.Role(r.URL.Query().Get("role")))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, users)
}

// ListResidents handles GET /api/residents.
func (s *Server) ListResidents(w http.ResponseWriter, r *http.Request) {
	users, err := s.deps.Profiles.Residents(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, users)
}

// CreateProfile takes a partial profile; id and email default to the
// caller. The service validates once defaults are filled in.
func (s *Server) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var u models.User
	if err := decodeBody(r, w, &u); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	saved, err := s.deps.Profiles.Create(r.Context(), CurrentClaims(r), u)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, saved)
}

// RequestAvatarUpload handles POST /api/profiles/me/avatar and returns a
// presigned PUT URL for the caller's new picture.
func (s *Server) RequestAvatarUpload(w http.ResponseWriter, r *http.Request) {
	var req AvatarRequest
	if err := decodeJSON(r, w, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	up, err := s.deps.Avatars.RequestUpload(r.Context(), CurrentClaims(r).ID, req.ContentType)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, up)
}
