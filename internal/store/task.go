package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tasklist-app/tasklist/internal/db"
	"github.com/tasklist-app/tasklist/types"
)

// TaskRepository handles persistence for tasks.
//
// Every method that takes a username resolves the owner inside the same
// statement, so a task id belonging to another user never matches.
type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task types.Task) (types.Task, error) {
	q, err := db.QuerierFrom(ctx, r.db)
	if err != nil {
		return types.Task{}, err
	}

	const query = `
		INSERT INTO tasks (task_name, task_description, user_id)
		VALUES (?, ?, ?)`
	result, err := q.ExecContext(ctx, query, task.Name, task.Description, task.OwnerID)
	if err != nil {
		return types.Task{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return types.Task{}, err
	}
	task.ID = id
	return task, nil
}

// ListForUser returns the user's tasks ordered by id. Unknown users have no
// tasks.
func (r *TaskRepository) ListForUser(ctx context.Context, username string) ([]types.Task, error) {
	q, err := db.QuerierFrom(ctx, r.db)
	if err != nil {
		return nil, err
	}

	const query = `
		SELECT t.id, t.task_name, t.task_description, t.user_id
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		WHERE u.username = ?
		ORDER BY t.id`
	rows, err := q.QueryContext(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]types.Task, 0)
	for rows.Next() {
		var task types.Task
		if err := rows.Scan(&task.ID, &task.Name, &task.Description, &task.OwnerID); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Get(ctx context.Context, id int64, username string) (types.Task, error) {
	q, err := db.QuerierFrom(ctx, r.db)
	if err != nil {
		return types.Task{}, err
	}

	const query = `
		SELECT t.id, t.task_name, t.task_description, t.user_id
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		WHERE t.id = ? AND u.username = ?`
	var task types.Task
	err = q.QueryRowContext(ctx, query, id, username).Scan(
		&task.ID,
		&task.Name,
		&task.Description,
		&task.OwnerID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Task{}, ErrNotFound
		}
		return types.Task{}, err
	}
	return task, nil
}

// Update rewrites name and description and reports how many rows matched.
func (r *TaskRepository) Update(ctx context.Context, id int64, username, name, description string) (int64, error) {
	q, err := db.QuerierFrom(ctx, r.db)
	if err != nil {
		return 0, err
	}

	const query = `
		UPDATE tasks
		SET task_name = ?,
			task_description = ?
		WHERE id = ? AND user_id = (
			SELECT id FROM users WHERE username = ?
		)`
	result, err := q.ExecContext(ctx, query, name, description, id, username)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Delete removes the task and reports how many rows matched.
func (r *TaskRepository) Delete(ctx context.Context, id int64, username string) (int64, error) {
	q, err := db.QuerierFrom(ctx, r.db)
	if err != nil {
		return 0, err
	}

	const query = `
		DELETE FROM tasks
		WHERE id = ? AND user_id = (
			SELECT id FROM users WHERE username = ?
		)`
	result, err := q.ExecContext(ctx, query, id, username)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
