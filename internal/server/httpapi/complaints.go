package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/go-chi/chi/v5"
)

// ListComplaints handles GET /api/complaints.
func (s *Server) ListComplaints(w http.ResponseWriter, r *http.Request) {
	items, err := s.deps.Complaints.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// CreateComplaint handles POST /api/complaints.
func (s *Server) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	var c models.Complaint
	if err := decodeBody(r, w, &c); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	saved, err := s.deps.Complaints.Create(r.Context(), CurrentClaims(r), c)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, saved)
}

// UpdateComplaintStatus handles PUT /api/complaints/{id}/status. The
// server stamps resolvedAt itself when the status becomes RESOLVED.
func (s *Server) UpdateComplaintStatus(w http.ResponseWriter, r *http.Request) {
	var patch models.ComplaintPatch
	if err := decodeJSON(r, w, &patch); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	updated, err := s.deps.Complaints.UpdateStatus(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}
