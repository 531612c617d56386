package services

import (
	"context"

	"github.com/tasklist-app/tasklist/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, username string) (types.User, error)
	List(ctx context.Context) ([]types.User, error)
	IDByUsername(ctx context.Context, username string) (int64, error)
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates a user; store.ErrDuplicateUsername is passed through.
func (s *UserService) Register(ctx context.Context, username string) (types.User, error) {
	return s.repo.Create(ctx, username)
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Lookup(ctx context.Context, username string) (int64, error) {
	return s.repo.IDByUsername(ctx, username)
}
