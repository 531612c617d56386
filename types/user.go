package types

// User represents a registered account.
// Users are created once through registration and are never updated or
// deleted by the application.
type User struct {
	// ID is the unique identifier of the user, assigned by the store.
	ID int64 `json:"id" db:"id"`

	// Username is the unique, case-sensitive name chosen at registration.
	// It is also the first path segment of every user-scoped URL.
	Username string `json:"username" db:"username"`
}
