package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-hexagonal-users/internal/domain/entity"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/valueobject"
)

var (
	// ErrNotFound indicates no row matched the lookup.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicateEmail indicates the store's unique email constraint rejected a write.
	ErrDuplicateEmail = errors.New("repository: duplicate email")
)

// UserRepository defines the interface for user-related database operations.
// Implementations return copies; callers own the instances they receive.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error)
	Insert(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	// ListPaginated returns users in creation order.
	ListPaginated(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
