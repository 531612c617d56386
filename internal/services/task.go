package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tasklist-app/tasklist/internal/store"
	"github.com/tasklist-app/tasklist/types"
)

// ErrUnknownUser is returned when a task is created for a username that
// was never registered.
var ErrUnknownUser = errors.New("unknown user")

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task types.Task) (types.Task, error)
	ListForUser(ctx context.Context, username string) ([]types.Task, error)
	Get(ctx context.Context, id int64, username string) (types.Task, error)
	Update(ctx context.Context, id int64, username, name, description string) (int64, error)
	Delete(ctx context.Context, id int64, username string) (int64, error)
}

// TaskService encapsulates task use-cases. All reads and writes are scoped
// to the username taken from the request path.
type TaskService struct {
	repo  TaskRepository
	users UserRepository
}

func NewTaskService(repo TaskRepository, users UserRepository) *TaskService {
	return &TaskService{repo: repo, users: users}
}

// CreateForUser resolves the owner and inserts the task. Nothing is written
// when the username is unknown.
func (s *TaskService) CreateForUser(ctx context.Context, username, name, description string) (types.Task, error) {
	ownerID, err := s.users.IDByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.Task{}, fmt.Errorf("%w: %q", ErrUnknownUser, username)
		}
		return types.Task{}, err
	}

	return s.repo.Create(ctx, types.Task{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	})
}

func (s *TaskService) List(ctx context.Context, username string) ([]types.Task, error) {
	return s.repo.ListForUser(ctx, username)
}

func (s *TaskService) Get(ctx context.Context, id int64, username string) (types.Task, error) {
	return s.repo.Get(ctx, id, username)
}

func (s *TaskService) Update(ctx context.Context, id int64, username, name, description string) (int64, error) {
	return s.repo.Update(ctx, id, username, name, description)
}

func (s *TaskService) Delete(ctx context.Context, id int64, username string) (int64, error) {
	return s.repo.Delete(ctx, id, username)
}
