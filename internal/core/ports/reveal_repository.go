package ports

import (
	"context"
	"time"

	"github.com/pokerface/networking-api/internal/core/domain"
)

// RevealRequestRepository defines persistence for reveal requests. The
// at-most-one-pending-per-pair invariant is the repository's to enforce:
// Create must fail with domain.ErrDuplicateRequest when a pending request
// for the same (card, requester) pair already exists, even under
// concurrent callers.
type RevealRequestRepository interface {
	Create(ctx context.Context, req *domain.RevealRequest) error
	FindByID(ctx context.Context, id string) (*domain.RevealRequest, error)
	// FindPending returns the pending request for (cardID, requesterID),
	// or domain.ErrRequestNotFound when none exists.
	FindPending(ctx context.Context, cardID, requesterID string) (*domain.RevealRequest, error)
	// ListPendingByRequester returns all pending requests the requester has open.
	ListPendingByRequester(ctx context.Context, requesterID string) ([]*domain.RevealRequest, error)
	// Resolve transitions the request from pending to status atomically.
	// It fails with domain.ErrRequestNotPending when the request exists but
	// has already been resolved, and domain.ErrRequestNotFound otherwise.
	Resolve(ctx context.Context, id string, status domain.RequestStatus, at time.Time) error
	// ExpireAllForCard marks every pending request for the card expired.
	ExpireAllForCard(ctx context.Context, cardID string, at time.Time) error
}
