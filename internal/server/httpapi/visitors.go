package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/go-chi/chi/v5"
)

// ListVisitors handles GET /api/visitors.
func (s *Server) ListVisitors(w http.ResponseWriter, r *http.Request) {
	items, err := s.deps.Visitors.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// CreateVisitor handles POST /api/visitors.
func (s *Server) CreateVisitor(w http.ResponseWriter, r *http.Request) {
	var v models.Visitor
	if err := decodeBody(r, w, &v); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	saved, err := s.deps.Visitors.Create(r.Context(), v)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, saved)
}

// LogVisitorExit handles PUT /api/visitors/{id}/exit.
func (s *Server) LogVisitorExit(w http.ResponseWriter, r *http.Request) {
	var exit models.VisitorExit
	if err := decodeBody(r, w, &exit); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	updated, err := s.deps.Visitors.Exit(r.Context(), chi.URLParam(r, "id"), exit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}
