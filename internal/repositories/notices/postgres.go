package notices

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/dbx"
	"github.com/dmitrijs2005/civichub/internal/models"
)

// PostgresRepository implements notices storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const columns = `id, title, content, category, posted_by, created_at`

func scanNotice(row dbx.RowScanner) (models.Notice, error) {
	var n models.Notice
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.Category, &n.PostedBy, &n.CreatedAt)
	return n, err
}

// List returns all notices, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]models.Notice, error) {
	query := `SELECT ` + columns + ` FROM notices ORDER BY created_at DESC`

	list, err := dbx.CollectRows(ctx, r.db, query, scanNotice)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

// Insert stores n as given.
func (r *PostgresRepository) Insert(ctx context.Context, n *models.Notice) (*models.Notice, error) {
	query :=
		`INSERT INTO notices (` + columns + `)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING ` + columns

	saved, err := scanNotice(r.db.QueryRowContext(ctx, query,
		n.ID, n.Title, n.Content, n.Category, n.PostedBy, n.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &saved, nil
}

// Delete removes the notice. Unknown ids return common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
