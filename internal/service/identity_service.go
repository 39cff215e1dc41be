package service

import (
	"context"
	"errors"

	"github.com/iyhunko/inventory-tracker/internal/model"
	"github.com/iyhunko/inventory-tracker/internal/repository"
)

// IdentityService resolves bearer tokens to users. Read-only.
type IdentityService struct {
	repo   UserRepository
	tokens TokenIssuer
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(repo UserRepository, tokens TokenIssuer) *IdentityService {
	return &IdentityService{repo: repo, tokens: tokens}
}

// Resolve validates the token and loads the authenticated user.
// Any failure, including a user deleted after token issuance, yields
// ErrUnauthenticated.
func (is *IdentityService) Resolve(ctx context.Context, token string) (*model.User, error) {
	userID, err := is.tokens.Validate(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := is.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	return user, nil
}
