package payments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/dbx"
	"github.com/dmitrijs2005/civichub/internal/models"
)

// PostgresRepository implements payments storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const columns = `id, user_id, user_name, unit_number, amount, month, due_date, status`

func scanPayment(row dbx.RowScanner) (models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.UserID, &p.UserName, &p.UnitNumber, &p.Amount, &p.Month, &p.DueDate, &p.Status)
	return p, err
}

// List returns all bills, latest due date first.
func (r *PostgresRepository) List(ctx context.Context) ([]models.Payment, error) {
	query := `SELECT ` + columns + ` FROM payments ORDER BY due_date DESC, id`

	list, err := dbx.CollectRows(ctx, r.db, query, scanPayment)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

// MarkPaid sets status PAID. Unknown ids return common.ErrorNotFound.
func (r *PostgresRepository) MarkPaid(ctx context.Context, id string) (*models.Payment, error) {
	query :=
		`UPDATE payments SET status = 'PAID'
		 WHERE id = $1
		 RETURNING ` + columns

	saved, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &saved, nil
}
