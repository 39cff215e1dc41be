package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/iyhunko/inventory-tracker/internal/auth"
	"github.com/iyhunko/inventory-tracker/internal/model"
	"github.com/iyhunko/inventory-tracker/internal/repository"
)

// UserRepository is the persistence surface the user service needs.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// TokenIssuer issues and validates bearer credentials.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
	Validate(token string) (uuid.UUID, error)
}

// UserService implements registration and login.
type UserService struct {
	repo   UserRepository
	tokens TokenIssuer
}

// NewUserService creates a new UserService.
func NewUserService(repo UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

// Register creates a new user with a hashed password.
func (us *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	digest, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    email,
		Password: digest,
	}

	if err := us.repo.Create(ctx, user); err != nil {
		var uniqueErr *repository.UniqueConstraintError
		if errors.As(err, &uniqueErr) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	slog.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// Login verifies the credentials and returns a bearer token.
// Unknown email and wrong password produce the same error.
func (us *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := us.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.CheckPassword(password, user.Password) {
		return "", ErrInvalidCredentials
	}

	token, err := us.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}

	return token, nil
}
