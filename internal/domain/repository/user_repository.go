package repository

import (
	"context"
	"errors"

	"github.com/QuentinDoniczka/SeriousGameBack/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when an insert hits the unique
	// constraint on email. The constraint, not the service pre-check,
	// is the source of truth for uniqueness under concurrent registration.
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository is the credential store contract consumed by the
// application service. Create receives the plaintext password and owns
// hashing; nothing above this interface ever sees a stored hash being made.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User, password string) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	UpdateDescription(ctx context.Context, email, description string) error
}
