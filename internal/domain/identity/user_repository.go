package identity

import "context"

// UserRepository defines persistence for users
type UserRepository interface {
	// Create stores a new user; a duplicate username yields shared.ErrAlreadyExists
	Create(ctx context.Context, user *User) error

	// FindByUsername looks a user up across companies (usernames are global)
	FindByUsername(ctx context.Context, username string) (*User, error)
}
