package visitors

import (
	"context"
	"time"

	"github.com/dmitrijs2005/civichub/internal/models"
)

// Repository persists the visitor log.
type Repository interface {
	// List returns visitors newest entry first.
	List(ctx context.Context) ([]models.Visitor, error)
	Insert(ctx context.Context, v *models.Visitor) (*models.Visitor, error)
	MarkExit(ctx context.Context, id string, exitTime time.Time) (*models.Visitor, error)
}
