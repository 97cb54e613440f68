package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/civichub/internal/auth"
	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/dmitrijs2005/civichub/internal/repositories/repomanager"
)

// ProfileService manages resident and administrator profiles.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewProfileService constructs a ProfileService over db.
func NewProfileService(db *sql.DB, m repomanager.RepositoryManager) *ProfileService {
	return &ProfileService{db: db, repomanager: m}
}

// Get returns the profile for id, or common.ErrorNotFound.
func (s *ProfileService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Profiles(s.db).Get(ctx, id)
}

// Role looks the caller's role up in the profile table. Token claims may
// predate the profile, so authorization never trusts them for the role.
func (s *ProfileService) Role(ctx context.Context, id string) (models.Role, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return p.Role, nil
}

// ListByRole returns profiles with the given role. An unknown role is a
// validation error.
func (s *ProfileService) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrorValidation, role)
	}
	return s.repomanager.Profiles(s.db).ListByRole(ctx, role)
}

// Residents is ListByRole(RoleResident).
func (s *ProfileService) Residents(ctx context.Context) ([]models.User, error) {
	return s.ListByRole(ctx, models.RoleResident)
}

// Create stores a profile. Callers may only create their own unless they
// are an administrator.
func (s *ProfileService) Create(ctx context.Context, caller *auth.Claims, u models.User) (*models.User, error) {
	if u.ID == "" {
		u.ID = caller.ID
	}
	if u.ID != caller.ID {
		role, err := s.Role(ctx, caller.ID)
		if err != nil || role != models.RoleAdmin {
			return nil, common.ErrorForbidden
		}
	}
	if u.Email == "" && u.ID == caller.ID {
		u.Email = caller.Email
	}
	if u.UnitNumber == "" {
		u.UnitNumber = common.UnitNotAvailable
	}

	if err := validate(&u); err != nil {
		return nil, err
	}

	return s.repomanager.Profiles(s.db).Insert(ctx, &u)
}

// SetAvatar points the profile's avatar at url.
func (s *ProfileService) SetAvatar(ctx context.Context, id, url string) error {
	return s.repomanager.Profiles(s.db).SetAvatar(ctx, id, url)
}
