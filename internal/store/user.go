package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tasklist-app/tasklist/internal/db"
	"github.com/tasklist-app/tasklist/types"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user. A taken username yields ErrDuplicateUsername and
// leaves the table unchanged.
func (r *UserRepository) Create(ctx context.Context, username string) (types.User, error) {
	q, err := db.QuerierFrom(ctx, r.db)
	if err != nil {
		return types.User{}, err
	}

	const query = `INSERT INTO users (username) VALUES (?)`
	result, err := q.ExecContext(ctx, query, username)
	if err != nil {
		if isUniqueViolation(err) {
			return types.User{}, fmt.Errorf("%w: %q", ErrDuplicateUsername, username)
		}
		return types.User{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return types.User{}, err
	}
	return types.User{ID: id, Username: username}, nil
}

func (r *UserRepository) List(ctx context.Context) ([]types.User, error) {
	q, err := db.QuerierFrom(ctx, r.db)
	if err != nil {
		return nil, err
	}

	const query = `SELECT id, username FROM users ORDER BY id`
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]types.User, 0)
	for rows.Next() {
		var user types.User
		if err := rows.Scan(&user.ID, &user.Username); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) IDByUsername(ctx context.Context, username string) (int64, error) {
	q, err := db.QuerierFrom(ctx, r.db)
	if err != nil {
		return 0, err
	}

	const query = `SELECT id FROM users WHERE username = ?`
	var id int64
	if err := q.QueryRowContext(ctx, query, username).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return id, nil
}
