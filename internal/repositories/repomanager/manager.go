// Package repomanager vends the Postgres repositories for the CivicHub schema
// and runs the embedded goose migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/civichub/internal/dbx"
	"github.com/dmitrijs2005/civichub/internal/migrations"
	"github.com/dmitrijs2005/civichub/internal/repositories/accounts"
	"github.com/dmitrijs2005/civichub/internal/repositories/complaints"
	"github.com/dmitrijs2005/civichub/internal/repositories/notices"
	"github.com/dmitrijs2005/civichub/internal/repositories/payments"
	"github.com/dmitrijs2005/civichub/internal/repositories/profiles"
	"github.com/dmitrijs2005/civichub/internal/repositories/visitors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RepositoryManager hands out repositories bound to a DBTX, so the same code
// runs against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Complaints(db dbx.DBTX) complaints.Repository
	Notices(db dbx.DBTX) notices.Repository
	Visitors(db dbx.DBTX) visitors.Repository
	Payments(db dbx.DBTX) payments.Repository
}

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Accounts returns the accounts repository bound to db.
func (m *PostgresRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

// Profiles returns the profiles repository bound to db.
func (m *PostgresRepositoryManager) Profiles(db dbx.DBTX) profiles.Repository {
	return profiles.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Complaints(db dbx.DBTX) complaints.Repository {
	return complaints.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Notices(db dbx.DBTX) notices.Repository {
	return notices.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Visitors(db dbx.DBTX) visitors.Repository {
	return visitors.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Payments(db dbx.DBTX) payments.Repository {
	return payments.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// Open opens a pgx-backed *sql.DB and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
