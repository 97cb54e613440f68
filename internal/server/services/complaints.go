package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/civichub/internal/auth"
	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/dmitrijs2005/civichub/internal/repositories/repomanager"
)

// ComplaintService manages resident complaints.
type ComplaintService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewComplaintService constructs a ComplaintService over db.
func NewComplaintService(db *sql.DB, m repomanager.RepositoryManager) *ComplaintService {
	return &ComplaintService{db: db, repomanager: m}
}

// List returns every complaint, newest first.
func (s *ComplaintService) List(ctx context.Context) ([]models.Complaint, error) {
	return s.repomanager.Complaints(s.db).List(ctx)
}

// Create stores c under a fresh id and fills in what the caller left blank.
// New tickets always start OPEN.
func (s *ComplaintService) Create(ctx context.Context, caller *auth.Claims, c models.Complaint) (*models.Complaint, error) {
	c.ID = newID()
	if c.UserID == "" {
		c.UserID = caller.ID
	}
	if c.UserName == "" {
		c.UserName = caller.Name
	}
	if c.UnitNumber == "" {
		c.UnitNumber = common.UnitNotAvailable
	}
	if c.Category == "" {
		c.Category = models.DefaultComplaintCategory
	}
	if c.Priority == "" {
		c.Priority = models.PriorityMedium
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now()
	}
	c.Status = models.ComplaintOpen
	c.ResolvedAt = nil

	if err := validate(&c); err != nil {
		return nil, err
	}

	return s.repomanager.Complaints(s.db).Insert(ctx, &c)
}

// UpdateStatus applies patch. The repository stamps resolved_at when a
// RESOLVED patch carries none.
func (s *ComplaintService) UpdateStatus(ctx context.Context, id string, patch models.ComplaintPatch) (*models.Complaint, error) {
	if err := validate(&patch); err != nil {
		return nil, err
	}
	if patch.Status != models.ComplaintResolved {
		patch.ResolvedAt = nil
	}
	return s.repomanager.Complaints(s.db).Update(ctx, id, patch)
}
