package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListPayments handles GET /api/payments.
func (s *Server) ListPayments(w http.ResponseWriter, r *http.Request) {
	items, err := s.deps.Payments.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// PayBill handles PUT /api/payments/{id}/pay.
func (s *Server) PayBill(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Payments.Pay(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}
