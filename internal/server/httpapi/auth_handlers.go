package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/civichub/internal/models"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest mirrors the client's sign-up form. Only the credentials
// are stored here; the profile fields are posted to /profiles afterwards.
type RegisterRequest struct {
	Email      string      `json:"email" validate:"required,email"`
	Password   string      `json:"password" validate:"required,min=6"`
	Name       string      `json:"name" validate:"required"`
	Role       models.Role `json:"role" validate:"required,oneof=ADMIN RESIDENT"`
	UnitNumber string      `json:"unitNumber,omitempty"`
}

// AuthResponse carries the session token and, once it exists, the profile.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login handles POST /api/auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, w, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	session, err := s.deps.Accounts.Login(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, AuthResponse{Token: session.Token, User: session.User})
}

// Register handles POST /api/auth/register. Only the account is created;
// the client posts the profile next with the returned token.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, w, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	session, err := s.deps.Accounts.Register(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "account registered", "email", req.Email)
	WriteJSON(w, http.StatusCreated, AuthResponse{Token: session.Token, User: session.User})
}

// Logout is a no-op for stateless tokens; the client drops its copy.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
