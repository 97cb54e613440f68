// Package auth issues and reads CivicHub session tokens. Tokens are HS256
// JWTs whose claims carry the identity fields the client needs without an
// extra profile round trip.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/civichub/internal/common"
	"github.com/dmitrijs2005/civichub/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries identity fields next to the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	ID         string      `json:"id"`
	Role       models.Role `json:"role"`
	Name       string      `json:"name,omitempty"`
	Email      string      `json:"email,omitempty"`
	UnitNumber string      `json:"unitNumber,omitempty"`
}

// ClaimsFor builds claims for user.
func ClaimsFor(u models.User) Claims {
	return Claims{
		ID:         u.ID,
		Role:       u.Role,
		Name:       u.Name,
		Email:      u.Email,
		UnitNumber: u.UnitNumber,
	}
}

// GenerateToken signs claims with HS256. Subject, issue time and expiry are
// set here; validityDuration is counted from now.
func GenerateToken(claims Claims, secretKey []byte, validityDuration time.Duration) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.ID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry of tokenString.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.ID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// DecodeUnverified reads the claims segment without checking the signature.
// The client uses it to learn its own identity from a stored token.
func DecodeUnverified(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, common.ErrInvalidToken
	}
	if claims.ID == "" || !claims.Role.Valid() {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
