package ports

import (
	"context"

	"github.com/pokerface/networking-api/internal/core/domain"
)

// AuthService defines registration and login.
type AuthService interface {
	Register(ctx context.Context, displayName, email, password, roleTag, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
