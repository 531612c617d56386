package types

// Task represents a single to-do item owned by a user.
type Task struct {
	// ID is the unique identifier of the task, assigned by the store.
	// IDs are global across users; lookups always pair the ID with the
	// owner's username.
	ID int64 `json:"id" db:"id"`

	// Name is the short title of the task.
	Name string `json:"name" db:"task_name"`

	// Description holds the free-form body of the task.
	Description string `json:"description" db:"task_description"`

	// OwnerID references the User that created the task.
	OwnerID int64 `json:"owner_id" db:"user_id"`
}
