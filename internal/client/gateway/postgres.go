package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/civichub/internal/auth"
	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/dbx"
	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/dmitrijs2005/civichub/internal/repositories/accounts"
	"github.com/dmitrijs2005/civichub/internal/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

// PostgresOptions configures a PostgresGateway.
type PostgresOptions struct {
	// SigningKey signs the session tokens the binding hands out.
	SigningKey    []byte
	TokenValidity time.Duration
}

// PostgresGateway is the hosted-database binding. It reads and writes the
// CivicHub schema directly.
type PostgresGateway struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	opts  PostgresOptions

	mu      sync.RWMutex
	session *Session
}

var _ Gateway = (*PostgresGateway)(nil)

// NewPostgresGateway binds db through repos. Tokens are valid for 24 hours
// unless opts says otherwise.
func NewPostgresGateway(db *sql.DB, repos repomanager.RepositoryManager, opts PostgresOptions) *PostgresGateway {
	if opts.TokenValidity == 0 {
		opts.TokenValidity = 24 * time.Hour
	}
	return &PostgresGateway{db: db, repos: repos, opts: opts}
}

// mapDBError translates repository errors to gateway sentinels. Errors
// reported by Postgres itself become ErrServer; anything else the
// repositories do not classify is treated as a transport failure.
func mapDBError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, common.ErrorAlreadyExists):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return fmt.Errorf("%w: %v", ErrServer, err)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

// issue signs a token for accountID and records the session. The claims
// carry the profile when one exists and a plain resident otherwise.
func (g *PostgresGateway) issue(ctx context.Context, accountID, email string) (*Session, error) {
	claims := auth.Claims{ID: accountID, Role: models.RoleResident, Email: email}
	if p, err := g.repos.Profiles(g.db).Get(ctx, accountID); err == nil {
		claims = auth.ClaimsFor(*p)
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, mapDBError(err)
	}

	token, err := auth.GenerateToken(claims, g.opts.SigningKey, g.opts.TokenValidity)
	if err != nil {
		return nil, err
	}
	s := &Session{Token: token, UserID: accountID, Email: email}
	g.mu.Lock()
	g.session = s
	g.mu.Unlock()
	return s, nil
}

// SignIn checks the bcrypt hash of the account registered under email.
// Unknown emails and wrong passwords both return ErrUnauthorized.
func (g *PostgresGateway) SignIn(ctx context.Context, email, password string) (*Session, error) {
	acc, err := g.repos.Accounts(g.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrUnauthorized, common.ErrorInvalidCredentials)
		}
		return nil, mapDBError(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, common.ErrorInvalidCredentials)
	}
	return g.issue(ctx, acc.ID, acc.Email)
}

// SignUp creates the account in a transaction and signs it in. The profile
// is inserted separately by the caller.
func (g *PostgresGateway) SignUp(ctx context.Context, req SignUpRequest) (*Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	acc := &accounts.Account{ID: uuid.NewString(), Email: req.Email, PasswordHash: string(hash)}

	err = dbx.WithTx(ctx, g.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return g.repos.Accounts(tx).Create(ctx, acc)
	})
	if err != nil {
		return nil, mapDBError(err)
	}
	return g.issue(ctx, acc.ID, acc.Email)
}

func (g *PostgresGateway) SignOut(ctx context.Context) error {
	g.mu.Lock()
	g.session = nil
	g.mu.Unlock()
	return nil
}

// RestoreSession verifies token with the signing key.
func (g *PostgresGateway) RestoreSession(ctx context.Context, token string) (*Session, error) {
	claims, err := auth.ParseToken(token, g.opts.SigningKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	s := &Session{Token: token, UserID: claims.ID, Email: claims.Email}
	g.mu.Lock()
	g.session = s
	g.mu.Unlock()
	return s, nil
}

// Ping checks the database connection.
func (g *PostgresGateway) Ping(ctx context.Context) error {
	if err := g.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (g *PostgresGateway) GetProfile(ctx context.Context, id string) (*models.User, error) {
	u, err := g.repos.Profiles(g.db).Get(ctx, id)
	return u, mapDBError(err)
}

func (g *PostgresGateway) ListProfilesByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	list, err := g.repos.Profiles(g.db).ListByRole(ctx, role)
	return list, mapDBError(err)
}

func (g *PostgresGateway) InsertProfile(ctx context.Context, u models.User) (*models.User, error) {
	if err := models.Validate(&u); err != nil {
		return nil, err
	}
	saved, err := g.repos.Profiles(g.db).Insert(ctx, &u)
	return saved, mapDBError(err)
}

func (g *PostgresGateway) ListComplaints(ctx context.Context) ([]models.Complaint, error) {
	list, err := g.repos.Complaints(g.db).List(ctx)
	return list, mapDBError(err)
}

// InsertComplaint stores c under a database-assigned id.
func (g *PostgresGateway) InsertComplaint(ctx context.Context, c models.Complaint) (*models.Complaint, error) {
	c.ID = uuid.NewString()
	saved, err := g.repos.Complaints(g.db).Insert(ctx, &c)
	return saved, mapDBError(err)
}

func (g *PostgresGateway) UpdateComplaint(ctx context.Context, id string, patch models.ComplaintPatch) error {
	_, err := g.repos.Complaints(g.db).Update(ctx, id, patch)
	return mapDBError(err)
}

func (g *PostgresGateway) ListNotices(ctx context.Context) ([]models.Notice, error) {
	list, err := g.repos.Notices(g.db).List(ctx)
	return list, mapDBError(err)
}

func (g *PostgresGateway) InsertNotice(ctx context.Context, n models.Notice) (*models.Notice, error) {
	n.ID = uuid.NewString()
	saved, err := g.repos.Notices(g.db).Insert(ctx, &n)
	return saved, mapDBError(err)
}

func (g *PostgresGateway) DeleteNotice(ctx context.Context, id string) error {
	return mapDBError(g.repos.Notices(g.db).Delete(ctx, id))
}

func (g *PostgresGateway) ListVisitors(ctx context.Context) ([]models.Visitor, error) {
	list, err := g.repos.Visitors(g.db).List(ctx)
	return list, mapDBError(err)
}

func (g *PostgresGateway) InsertVisitor(ctx context.Context, v models.Visitor) (*models.Visitor, error) {
	v.ID = uuid.NewString()
	saved, err := g.repos.Visitors(g.db).Insert(ctx, &v)
	return saved, mapDBError(err)
}

func (g *PostgresGateway) UpdateVisitorExit(ctx context.Context, id string, exit models.VisitorExit) error {
	_, err := g.repos.Visitors(g.db).MarkExit(ctx, id, exit.ExitTime)
	return mapDBError(err)
}

func (g *PostgresGateway) ListPayments(ctx context.Context) ([]models.Payment, error) {
	list, err := g.repos.Payments(g.db).List(ctx)
	return list, mapDBError(err)
}

func (g *PostgresGateway) MarkPaymentPaid(ctx context.Context, id string) error {
	_, err := g.repos.Payments(g.db).MarkPaid(ctx, id)
	return mapDBError(err)
}

// Close closes the database handle.
func (g *PostgresGateway) Close() error {
	return g.db.Close()
}
