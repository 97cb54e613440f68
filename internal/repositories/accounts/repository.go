package accounts

import "context"

// Account is a sign-in credential. Its ID is shared with the profile.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
}

// Repository persists sign-in accounts.
type Repository interface {
	Create(ctx context.Context, a *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
}
