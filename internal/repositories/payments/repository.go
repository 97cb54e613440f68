package payments

import (
	"context"

	"github.com/dmitrijs2005/civichub/internal/models"
)

// Repository persists maintenance bills.
type Repository interface {
	List(ctx context.Context) ([]models.Payment, error)
	MarkPaid(ctx context.Context, id string) (*models.Payment, error)
}
