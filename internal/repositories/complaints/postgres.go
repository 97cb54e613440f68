package complaints

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/dbx"
	"github.com/dmitrijs2005/civichub/internal/models"
)

// PostgresRepository implements complaints storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const columns = `id, user_id, user_name, unit_number, title, description, category, priority, status, created_at, resolved_at`

func scanComplaint(row dbx.RowScanner) (models.Complaint, error) {
	var (
		c          models.Complaint
		resolvedAt sql.NullTime
	)
	err := row.Scan(&c.ID, &c.UserID, &c.UserName, &c.UnitNumber, &c.Title, &c.Description,
		&c.Category, &c.Priority, &c.Status, &c.CreatedAt, &resolvedAt)
	if err != nil {
		return c, err
	}
	if resolvedAt.Valid {
		t := resolvedAt.Time
		c.ResolvedAt = &t
	}
	return c, nil
}

// List returns all complaints, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]models.Complaint, error) {
	query := `SELECT ` + columns + ` FROM complaints ORDER BY created_at DESC`

	list, err := dbx.CollectRows(ctx, r.db, query, scanComplaint)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

// Insert stores c as given; ids and defaults are the caller's job.
func (r *PostgresRepository) Insert(ctx context.Context, c *models.Complaint) (*models.Complaint, error) {
	query :=
		`INSERT INTO complaints (id, user_id, user_name, unit_number, title, description, category, priority, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING ` + columns

	saved, err := scanComplaint(r.db.QueryRowContext(ctx, query,
		c.ID, c.UserID, c.UserName, c.UnitNumber, c.Title, c.Description,
		c.Category, c.Priority, c.Status, c.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &saved, nil
}

// Update sets the status. resolved_at follows it in the same statement: a
// RESOLVED row keeps the patch time, else its previous time, else now(); any
// other status clears it. Unknown ids return common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.ComplaintPatch) (*models.Complaint, error) {
	query :=
		`UPDATE complaints
		 SET status = $2,
		     resolved_at = CASE WHEN $2 = 'RESOLVED' THEN COALESCE($3, resolved_at, now()) ELSE NULL END
		 WHERE id = $1
		 RETURNING ` + columns

	var resolvedAt sql.NullTime
	if patch.ResolvedAt != nil {
		resolvedAt = sql.NullTime{Time: *patch.ResolvedAt, Valid: true}
	}

	saved, err := scanComplaint(r.db.QueryRowContext(ctx, query, id, patch.Status, resolvedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &saved, nil
}
