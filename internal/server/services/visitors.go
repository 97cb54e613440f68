package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/dmitrijs2005/civichub/internal/repositories/repomanager"
)

// VisitorService keeps the gate log.
type VisitorService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewVisitorService constructs a VisitorService over db.
func NewVisitorService(db *sql.DB, m repomanager.RepositoryManager) *VisitorService {
	return &VisitorService{db: db, repomanager: m}
}

// List returns every visitor entry, latest entry time first.
func (s *VisitorService) List(ctx context.Context) ([]models.Visitor, error) {
	return s.repomanager.Visitors(s.db).List(ctx)
}

// Create logs an entry. Visitors always arrive IN with no exit time.
func (s *VisitorService) Create(ctx context.Context, v models.Visitor) (*models.Visitor, error) {
	v.ID = newID()
	v.Status = models.VisitorIn
	v.ExitTime = nil
	if v.EntryTime.IsZero() {
		v.EntryTime = now()
	}

	if err := validate(&v); err != nil {
		return nil, err
	}

	return s.repomanager.Visitors(s.db).Insert(ctx, &v)
}

// Exit marks the visitor OUT. A zero exit time means now.
func (s *VisitorService) Exit(ctx context.Context, id string, exit models.VisitorExit) (*models.Visitor, error) {
	at := exit.ExitTime
	if at.IsZero() {
		at = now()
	}
	return s.repomanager.Visitors(s.db).MarkExit(ctx, id, at)
}
