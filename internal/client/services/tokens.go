package services

import (
	"context"

	"github.com/dmitrijs2005/civichub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/civichub/internal/common"
)

// TokenStore persists the session credential between runs.
type TokenStore interface {
	// Load returns "" when nothing is stored.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type metadataTokenStore struct {
	repo metadata.Repository
}

// NewTokenStore keeps the token in the local metadata table.
func NewTokenStore(repo metadata.Repository) TokenStore {
	return &metadataTokenStore{repo: repo}
}

// Load returns "" when no token was saved.
func (s *metadataTokenStore) Load(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *metadataTokenStore) Save(ctx context.Context, token string) error {
	return s.repo.Set(ctx, common.TokenStorageKey, []byte(token))
}

func (s *metadataTokenStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, common.TokenStorageKey)
}
