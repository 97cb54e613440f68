package complaints

import (
	"context"

	"github.com/dmitrijs2005/civichub/internal/models"
)

// Repository persists complaints.
type Repository interface {
	// List returns complaints newest first.
	List(ctx context.Context) ([]models.Complaint, error)
	Insert(ctx context.Context, c *models.Complaint) (*models.Complaint, error)
	// Update applies patch. Moving to RESOLVED stamps resolved_at when the
	// patch carries none; any other status clears it.
	Update(ctx context.Context, id string, patch models.ComplaintPatch) (*models.Complaint, error)
}
