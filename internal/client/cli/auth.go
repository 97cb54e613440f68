package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/civichub/internal/client/gateway"
	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/models"
)

// getSimpleText, getPassword, getMultiline and getChoice are indirections
// used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	getChoice     = GetChoice
)

// Register prompts for account details and creates the account. The
// password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	unit, err := getSimpleText(a.reader, "Unit number (e.g. B-402)", a.out)
	if err != nil {
		return err
	}
	role, err := getChoice(a.reader, "Role", []string{string(models.RoleResident), string(models.RoleAdmin)}, string(models.RoleResident), a.out)
	if err != nil {
		return err
	}

	return a.auth.Register(ctx, gateway.SignUpRequest{
		Email:      strings.TrimSpace(email),
		Password:   string(password),
		Name:       name,
		Role:       models.Role(role),
		UnitNumber: unit,
	})
}

// Login prompts for credentials and signs in. Demo accounts work even when
// the backend is down.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.Authenticate(ctx, email, string(password))
	if err != nil {
		return err
	}
	a.printf("Logged in as %s (%s)\n", u.Name, u.Role)
	return nil
}

// Logout signs out and clears the local state.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.printf("Logged out\n")
	return nil
}

// Refresh reloads every collection and prints where the data came from.
func (a *App) Refresh(ctx context.Context) error {
	src := a.data.LoadAll(ctx)
	a.printf("Data loaded (%s)\n", src)
	return nil
}
