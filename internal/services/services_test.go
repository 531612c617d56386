package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tasklist-app/tasklist/internal/store"
	"github.com/tasklist-app/tasklist/types"
)

type fakeUserRepo struct {
	users   []types.User
	lookErr error
}

func (f *fakeUserRepo) Create(ctx context.Context, username string) (types.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return types.User{}, store.ErrDuplicateUsername
		}
	}
	user := types.User{ID: int64(len(f.users) + 1), Username: username}
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]types.User, error) {
	return f.users, nil
}

func (f *fakeUserRepo) IDByUsername(ctx context.Context, username string) (int64, error) {
	if f.lookErr != nil {
		return 0, f.lookErr
	}
	for _, u := range f.users {
		if u.Username == username {
			return u.ID, nil
		}
	}
	return 0, store.ErrNotFound
}

type fakeTaskRepo struct {
	created []types.Task
}

func (f *fakeTaskRepo) Create(ctx context.Context, task types.Task) (types.Task, error) {
	task.ID = int64(len(f.created) + 1)
	f.created = append(f.created, task)
	return task, nil
}

func (f *fakeTaskRepo) ListForUser(ctx context.Context, username string) ([]types.Task, error) {
	return f.created, nil
}

func (f *fakeTaskRepo) Get(ctx context.Context, id int64, username string) (types.Task, error) {
	return types.Task{}, store.ErrNotFound
}

func (f *fakeTaskRepo) Update(ctx context.Context, id int64, username, name, description string) (int64, error) {
	return 0, nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id int64, username string) (int64, error) {
	return 0, nil
}

func TestRegisterPassesDuplicateThrough(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "alice"); !errors.Is(err, store.ErrDuplicateUsername) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestCreateForUserResolvesOwner(t *testing.T) {
	users := &fakeUserRepo{users: []types.User{{ID: 7, Username: "alice"}}}
	tasks := &fakeTaskRepo{}
	svc := NewTaskService(tasks, users)

	task, err := svc.CreateForUser(context.Background(), "alice", "Buy milk", "2%")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.OwnerID != 7 {
		t.Fatalf("expected owner 7, got %d", task.OwnerID)
	}
	if len(tasks.created) != 1 {
		t.Fatalf("expected one task written, got %d", len(tasks.created))
	}
}

func TestCreateForUnknownUserWritesNothing(t *testing.T) {
	tasks := &fakeTaskRepo{}
	svc := NewTaskService(tasks, &fakeUserRepo{})

	_, err := svc.CreateForUser(context.Background(), "alice", "Buy milk", "2%")
	if !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
	if len(tasks.created) != 0 {
		t.Fatalf("expected no task written, got %d", len(tasks.created))
	}
}

func TestCreateForUserPropagatesStoreFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	tasks := &fakeTaskRepo{}
	svc := NewTaskService(tasks, &fakeUserRepo{lookErr: boom})

	_, err := svc.CreateForUser(context.Background(), "alice", "x", "y")
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if errors.Is(err, ErrUnknownUser) {
		t.Fatalf("store failure must not look like an unknown user")
	}
	if len(tasks.created) != 0 {
		t.Fatalf("expected no task written")
	}
}
