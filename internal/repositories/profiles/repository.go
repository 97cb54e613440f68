package profiles

import (
	"context"

	"github.com/dmitrijs2005/civichub/internal/models"
)

// Repository persists user profiles.
type Repository interface {
	Get(ctx context.Context, id string) (*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	Insert(ctx context.Context, u *models.User) (*models.User, error)
	SetAvatar(ctx context.Context, id, avatar string) error
}
