package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/civichub/internal/auth"
	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/dmitrijs2005/civichub/internal/repositories/repomanager"
)

// NoticeService manages the community notice board.
type NoticeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewNoticeService constructs a NoticeService over db.
func NewNoticeService(db *sql.DB, m repomanager.RepositoryManager) *NoticeService {
	return &NoticeService{db: db, repomanager: m}
}

// List returns every notice, newest first.
func (s *NoticeService) List(ctx context.Context) ([]models.Notice, error) {
	return s.repomanager.Notices(s.db).List(ctx)
}

// Create posts a notice. The server assigns the id and timestamp; an empty
// category becomes "General" and an empty author becomes the caller's name.
func (s *NoticeService) Create(ctx context.Context, caller *auth.Claims, n models.Notice) (*models.Notice, error) {
	n.ID = newID()
	if n.Category == "" {
		n.Category = models.NoticeGeneral
	}
	if n.PostedBy == "" {
		n.PostedBy = caller.Name
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now()
	}

	if err := validate(&n); err != nil {
		return nil, err
	}

	return s.repomanager.Notices(s.db).Insert(ctx, &n)
}

// Delete removes a notice. Returns common.ErrorNotFound for unknown ids.
func (s *NoticeService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Notices(s.db).Delete(ctx, id)
}
