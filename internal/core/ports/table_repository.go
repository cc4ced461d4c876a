package ports

import (
	"context"
	"time"

	"github.com/pokerface/networking-api/internal/core/domain"
)

// TableRepository defines persistence for networking tables. AddMember
// carries the capacity invariant: the capacity check and the append must be
// one atomic unit so two concurrent joins never both take the last seat.
type TableRepository interface {
	Create(ctx context.Context, table *domain.Table) error
	FindByID(ctx context.Context, id string) (*domain.Table, error)
	// AddMember atomically appends userID when the table is open, has a
	// free seat, and the user is not already seated. It returns the table
	// as of after the update, and whether this call performed the append:
	// joining a table one is already seated at is a no-op returning the
	// current state with inserted == false, and concurrent joins by the
	// same user yield inserted == true for at most one caller. Fails with
	// domain.ErrTableFull, domain.ErrTableClosed or domain.ErrTableNotFound.
	AddMember(ctx context.Context, tableID, userID string) (table *domain.Table, inserted bool, err error)
	// RemoveMember removes userID if seated; no-op otherwise. Fails only
	// when the table does not exist.
	RemoveMember(ctx context.Context, tableID, userID string) error
	// Close marks the session ended. Idempotent.
	Close(ctx context.Context, tableID string, at time.Time) error
}
