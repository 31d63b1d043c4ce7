package users

import "context"

// Repository persists users. Lookups of a missing user return nil, nil.
type Repository interface {
	// Create stores the user and assigns the generated identifier back onto it.
	Create(context context.Context, user *User) (int, error)
	GetByID(context context.Context, id int) (*User, error)
	Exists(context context.Context, id int) (bool, error)
	// GetByName matches the whole name exactly.
	GetByName(context context.Context, name string) ([]*User, error)
	GetAll(context context.Context) ([]*User, error)
}
