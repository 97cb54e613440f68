package visitors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/dbx"
	"github.com/dmitrijs2005/civichub/internal/models"
)

// PostgresRepository implements visitors storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const columns = `id, name, phone, purpose, resident_id, resident_name, unit_number, entry_time, exit_time, status`

func scanVisitor(row dbx.RowScanner) (models.Visitor, error) {
	var (
		v        models.Visitor
		exitTime sql.NullTime
	)
	err := row.Scan(&v.ID, &v.Name, &v.Phone, &v.Purpose, &v.ResidentID, &v.ResidentName,
		&v.UnitNumber, &v.EntryTime, &exitTime, &v.Status)
	if err != nil {
		return v, err
	}
	if exitTime.Valid {
		t := exitTime.Time
		v.ExitTime = &t
	}
	return v, nil
}

// List returns all visitor entries, latest entry first.
func (r *PostgresRepository) List(ctx context.Context) ([]models.Visitor, error) {
	query := `SELECT ` + columns + ` FROM visitors ORDER BY entry_time DESC`

	list, err := dbx.CollectRows(ctx, r.db, query, scanVisitor)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

// Insert stores v as given.
func (r *PostgresRepository) Insert(ctx context.Context, v *models.Visitor) (*models.Visitor, error) {
	query :=
		`INSERT INTO visitors (id, name, phone, purpose, resident_id, resident_name, unit_number, entry_time, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING ` + columns

	saved, err := scanVisitor(r.db.QueryRowContext(ctx, query,
		v.ID, v.Name, v.Phone, v.Purpose, v.ResidentID, v.ResidentName, v.UnitNumber, v.EntryTime, v.Status))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &saved, nil
}

// MarkExit sets status OUT and the exit time. Calling it again overwrites
// the exit time.
func (r *PostgresRepository) MarkExit(ctx context.Context, id string, exitTime time.Time) (*models.Visitor, error) {
	query :=
		`UPDATE visitors SET status = 'OUT', exit_time = $2
		 WHERE id = $1
		 RETURNING ` + columns

	saved, err := scanVisitor(r.db.QueryRowContext(ctx, query, id, exitTime))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &saved, nil
}
