package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/go-chi/chi/v5"
)

// ListNotices handles GET /api/notices.
func (s *Server) ListNotices(w http.ResponseWriter, r *http.Request) {
	items, err := s.deps.Notices.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// CreateNotice handles POST /api/notices.
func (s *Server) CreateNotice(w http.ResponseWriter, r *http.Request) {
	var n models.Notice
	if err := decodeBody(r, w, &n); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	saved, err := s.deps.Notices.Create(r.Context(), CurrentClaims(r), n)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, saved)
}

// DeleteNotice handles DELETE /api/notices/{id} (administrators only).
func (s *Server) DeleteNotice(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Notices.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
