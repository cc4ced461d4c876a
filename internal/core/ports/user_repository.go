package ports

import (
	"context"

	"github.com/pokerface/networking-api/internal/core/domain"
)

// UserRepository defines persistence operations for users. All lookups
// exclude soft-deleted accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
