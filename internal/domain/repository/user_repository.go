package repository

import (
	"context"

	"github.com/oksasatya/task-manager-pro/internal/domain/entity"
)

// UserRepository defines user-related document store operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail matches case-insensitively; callers pass addresses
	// trimmed and lowercased.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.User, error)
}
