package notices

import (
	"context"

	"github.com/dmitrijs2005/civichub/internal/models"
)

// Repository persists notices.
type Repository interface {
	List(ctx context.Context) ([]models.Notice, error)
	Insert(ctx context.Context, n *models.Notice) (*models.Notice, error)
	Delete(ctx context.Context, id string) error
}
