package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/civichub/internal/client/gateway"
	"github.com/dmitrijs2005/civichub/internal/client/mock"
	"github.com/dmitrijs2005/civichub/internal/client/state"
	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/logging"
	"github.com/dmitrijs2005/civichub/internal/models"
)

// AuthService maps remote sessions to the store's identity.
//
// Contract:
//   - Authenticate: sign in remotely and resolve the profile. When sign-in
//     fails for any reason, a demo email still succeeds in mock mode.
//   - ResolveProfile: load the profile for an account id, creating a minimal
//     one and retrying once if the account has none.
//   - Register: create an account and its profile.
//   - Logout: always succeeds locally; remote failures are ignored.
//   - Restore: resume the session persisted by a previous run.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	ResolveProfile(ctx context.Context, rawID, email string) (*models.User, error)
	Register(ctx context.Context, req gateway.SignUpRequest) error
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (*models.User, error)
}

// authService implements AuthService on top of a Gateway. Identity changes
// go through the shared store so the data service can react to them.
type authService struct {
	gw      gateway.Gateway
	store   *state.Store
	tokens  TokenStore
	alerter Alerter
	log     logging.Logger
}

// NewAuthService returns an AuthService.
//
// Parameters:
//   - gw: the backend gateway used for sign-in and profile reads
//   - store: the shared state store that receives the signed-in identity
//   - tokens: where the session token is persisted between runs
//   - alerter: receives user-facing messages
//   - log: the logger, tagged with module=auth
func NewAuthService(gw gateway.Gateway, store *state.Store, tokens TokenStore, alerter Alerter, log logging.Logger) AuthService {
	return &authService{
		gw:      gw,
		store:   store,
		tokens:  tokens,
		alerter: alerter,
		log:     log.With("module", "auth"),
	}
}

// useDemo signs in the demo identity registered under email, if any.
func (a *authService) useDemo(ctx context.Context, email string) (*models.User, bool) {
	demo, ok := mock.DemoByEmail(email)
	if !ok {
		return nil, false
	}
	a.log.Info(ctx, "using demo identity", "user_id", demo.ID)
	a.store.SetIdentity(&demo)
	return &demo, true
}

// Authenticate signs in with email and password and resolves the profile.
// A failed sign-in falls back to the demo identity for demo emails and
// returns ErrAuthenticationFailed otherwise.
func (a *authService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	sess, err := a.gw.SignIn(ctx, email, password)
	if err != nil {
		a.log.Warn(ctx, "remote sign-in failed", "error", err)
		if u, ok := a.useDemo(ctx, email); ok {
			return u, nil
		}
		a.alerter.Alert("Login failed: " + err.Error())
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	if err := a.tokens.Save(ctx, sess.Token); err != nil {
		a.log.Warn(ctx, "failed to persist session token", "error", err)
	}

	u, err := a.ResolveProfile(ctx, sess.UserID, email)
	if err != nil {
		a.alerter.Alert("Login failed: " + err.Error())
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	return u, nil
}

// localPart returns the part of email before "@", or email itself.
func localPart(email string) string {
	name, _, _ := strings.Cut(email, "@")
	if name == "" {
		return email
	}
	return name
}

// ResolveProfile loads the profile for rawID and makes it the current
// identity. A missing profile is created from email with the resident role
// and fetched once more.
func (a *authService) ResolveProfile(ctx context.Context, rawID, email string) (*models.User, error) {
	u, err := a.gw.GetProfile(ctx, rawID)
	if err == nil {
		a.store.SetIdentity(u)
		return u, nil
	}

	if errors.Is(err, gateway.ErrNotFound) {
		a.log.Warn(ctx, "profile missing, creating a minimal one", "user_id", rawID)
		minimal := models.User{
			ID:         rawID,
			Name:       localPart(email),
			Email:      email,
			Role:       models.RoleResident,
			UnitNumber: common.UnitNotAvailable,
		}
		if _, ierr := a.gw.InsertProfile(ctx, minimal); ierr != nil {
			a.log.Warn(ctx, "profile insert failed", "user_id", rawID, "error", ierr)
		}

		u, err = a.gw.GetProfile(ctx, rawID)
		if err == nil {
			a.store.SetIdentity(u)
			return u, nil
		}
	}

	a.log.Warn(ctx, "profile fetch failed", "user_id", rawID, "error", err)
	if u, ok := a.useDemo(ctx, email); ok {
		return u, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrProfileUnavailable, err)
}

// Register creates the account and its profile, then signs the new user in
// when the backend returned a session. Profile creation failures are logged
// but do not fail registration.
func (a *authService) Register(ctx context.Context, req gateway.SignUpRequest) error {
	sess, err := a.gw.SignUp(ctx, req)
	if err != nil {
		a.log.Error(ctx, "registration failed", "error", err)
		a.alerter.Alert(err.Error())
		return fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	// accounts created without a session have no id to attach a profile to
	if sess == nil {
		a.alerter.Alert("Account created! Please log in.")
		return nil
	}

	profile := models.User{
		ID:         sess.UserID,
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		UnitNumber: req.UnitNumber,
	}
	if _, err := a.gw.InsertProfile(ctx, profile); err != nil {
		a.log.Error(ctx, "profile creation failed", "user_id", sess.UserID, "error", err)
	}

	a.alerter.Alert("Account created! Please log in.")

	if err := a.tokens.Save(ctx, sess.Token); err != nil {
		a.log.Warn(ctx, "failed to persist session token", "error", err)
	}
	if _, err := a.ResolveProfile(ctx, sess.UserID, req.Email); err != nil {
		a.log.Warn(ctx, "could not resolve profile after registration", "error", err)
	}
	return nil
}

// Logout clears the token and the local state. It never fails.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.gw.SignOut(ctx); err != nil {
		a.log.Info(ctx, "remote sign-out failed, signing out locally", "error", err)
	}
	if err := a.tokens.Clear(ctx); err != nil {
		a.log.Warn(ctx, "failed to clear stored token", "error", err)
	}
	a.store.Reset()
	return nil
}

// Restore resumes the session saved by a previous run. ErrNoSession is
// returned when nothing was saved; a rejected token is cleared.
func (a *authService) Restore(ctx context.Context) (*models.User, error) {
	token, err := a.tokens.Load(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNoSession
	}

	sess, err := a.gw.RestoreSession(ctx, token)
	if err != nil {
		a.log.Warn(ctx, "stored session rejected", "error", err)
		if cerr := a.tokens.Clear(ctx); cerr != nil {
			a.log.Warn(ctx, "failed to clear stored token", "error", cerr)
		}
		return nil, err
	}

	return a.ResolveProfile(ctx, sess.UserID, sess.Email)
}
