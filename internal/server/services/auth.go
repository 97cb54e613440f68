package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/civichub/internal/auth"
	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/dbx"
	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/dmitrijs2005/civichub/internal/repositories/accounts"
	"github.com/dmitrijs2005/civichub/internal/repositories/repomanager"
	"github.com/dmitrijs2005/civichub/internal/server/config"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is lowered by tests.
var bcryptCost = bcrypt.DefaultCost

// Session is what a successful sign-in hands back. User is nil until the
// account has a profile.
type Session struct {
	Token string
	User  *models.User
}

// AuthService signs users in and out of the backend. Passwords are bcrypt
// hashes in the accounts table; sessions are stateless HS256 tokens.
type AuthService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
}

// NewAuthService constructs an AuthService that signs tokens with
// cfg.SecretKey for cfg.TokenValidity.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidity,
	}
}

// issue signs a token for the account. Claims come from the profile when
// one exists; a fresh account is a resident until its profile says otherwise.
func (s *AuthService) issue(ctx context.Context, accountID, email string) (*Session, error) {
	claims := auth.Claims{ID: accountID, Role: models.RoleResident, Email: email}

	profile, err := s.repomanager.Profiles(s.db).Get(ctx, accountID)
	switch {
	case err == nil:
		claims = auth.ClaimsFor(*profile)
	case errors.Is(err, common.ErrorNotFound):
		profile = nil
	default:
		return nil, err
	}

	token, err := auth.GenerateToken(claims, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("token error: %w", err)
	}
	return &Session{Token: token, User: profile}, nil
}

// Login checks the password for email and issues a token.
//
// An unknown email and a wrong password both return
// common.ErrorInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	acc, err := s.repomanager.Accounts(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorInvalidCredentials
	}

	return s.issue(ctx, acc.ID, acc.Email)
}

// Register creates the sign-in account only. The caller attaches a profile
// afterwards with the returned token.
func (s *AuthService) Register(ctx context.Context, email, password string) (*Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash error: %w", err)
	}

	acc := &accounts.Account{ID: newID(), Email: email, PasswordHash: string(hash)}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Accounts(tx).Create(ctx, acc)
	})
	if err != nil {
		return nil, err
	}

	return s.issue(ctx, acc.ID, acc.Email)
}

// Authenticate verifies a bearer token.
func (s *AuthService) Authenticate(token string) (*auth.Claims, error) {
	return auth.ParseToken(token, s.jwtSecret)
}
