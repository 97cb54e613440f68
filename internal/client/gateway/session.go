package gateway

import (
	"fmt"

	"github.com/dmitrijs2005/civichub/internal/auth"
)

// sessionFromToken decodes the identity claims of token without verifying
// its signature.
func sessionFromToken(token string) (*Session, error) {
	claims, err := auth.DecodeUnverified(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &Session{Token: token, UserID: claims.ID, Email: claims.Email}, nil
}
