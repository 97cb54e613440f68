package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/dbx"
	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/dmitrijs2005/civichub/internal/repositories"
)

// PostgresRepository implements profiles storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const columns = `id, name, email, role, unit_number, phone, avatar`

// scanUser reads one row in column order.
func scanUser(row dbx.RowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.UnitNumber, &u.Phone, &u.Avatar)
	return u, err
}

// Get returns the profile for id, or common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + columns + ` FROM profiles WHERE id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &u, nil
}

// ListByRole returns profiles with role, ordered by name.
func (r *PostgresRepository) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	query := `SELECT ` + columns + ` FROM profiles WHERE role = $1 ORDER BY name`

	users, err := dbx.CollectRows(ctx, r.db, query, scanUser, role)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return users, nil
}

// Insert stores a new profile. A duplicate id returns
// common.ErrorAlreadyExists.
func (r *PostgresRepository) Insert(ctx context.Context, u *models.User) (*models.User, error) {
	query :=
		`INSERT INTO profiles (` + columns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `

	_, err := r.db.ExecContext(ctx, query, u.ID, u.Name, u.Email, u.Role, u.UnitNumber, u.Phone, u.Avatar)
	if err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

// SetAvatar updates the avatar URL. Exactly one row must be affected,
// otherwise common.ErrorNotFound is returned.
func (r *PostgresRepository) SetAvatar(ctx context.Context, id, avatar string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE profiles SET avatar = $2 WHERE id = $1`, id, avatar)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
