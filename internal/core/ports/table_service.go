package ports

import (
	"context"
	"time"
)

// CreateTableInput carries all data needed to open a networking table.
type CreateTableInput struct {
	Name        string
	Capacity    int
	DurationMin int
	Focus       []string
	OrganizerID string
}

// TableView is the table representation returned to callers.
type TableView struct {
	ID          string
	Name        string
	Capacity    int
	DurationMin int
	Focus       []string
	OrganizerID string
	Members     []string
	MemberCount int
	Open        bool
	CreatedAt   time.Time
}

// TableService defines use-case operations for table membership.
type TableService interface {
	Create(ctx context.Context, input CreateTableInput) (*TableView, error)
	Get(ctx context.Context, tableID string) (*TableView, error)
	// Join seats the user and returns the member count after joining.
	Join(ctx context.Context, tableID, userID string) (int, error)
	// Leave removes the user if seated; no-op otherwise.
	Leave(ctx context.Context, tableID, userID string) error
	// End closes the session. Organizer only.
	End(ctx context.Context, tableID, organizerID string) error
}
