package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/dmitrijs2005/civichub/internal/repositories/repomanager"
)

// PaymentService exposes maintenance bills.
type PaymentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewPaymentService constructs a PaymentService over db.
func NewPaymentService(db *sql.DB, m repomanager.RepositoryManager) *PaymentService {
	return &PaymentService{db: db, repomanager: m}
}

// List returns every bill, latest due date first.
func (s *PaymentService) List(ctx context.Context) ([]models.Payment, error) {
	return s.repomanager.Payments(s.db).List(ctx)
}

// Pay marks a bill PAID whatever its previous status.
func (s *PaymentService) Pay(ctx context.Context, id string) (*models.Payment, error) {
	return s.repomanager.Payments(s.db).MarkPaid(ctx, id)
}
