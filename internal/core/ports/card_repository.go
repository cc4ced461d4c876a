package ports

import (
	"context"

	"github.com/pokerface/networking-api/internal/core/domain"
)

// CardRepository defines persistence operations for profile cards.
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	FindByID(ctx context.Context, id string) (*domain.Card, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Card, error)
	// AddRevealedTo appends viewerID to the card's revealed set (no-op when
	// already present).
	AddRevealedTo(ctx context.Context, cardID, viewerID string) error
	// ClearRevealedTo empties the card's revealed set (owner retraction).
	ClearRevealedTo(ctx context.Context, cardID string) error
	// HasRevealedProject reports whether ownerID has at least one
	// project-kind card currently revealed to viewerID.
	HasRevealedProject(ctx context.Context, ownerID, viewerID string) (bool, error)
}
