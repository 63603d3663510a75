package repository

import (
	"context"
	"errors"

	"github.com/travelbuddy/journal-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a record does not exist or is owned by
	// somebody else. Repositories never reveal which of the two happened.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when creating a user whose email is taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
