package ports

import (
	"context"
	"time"

	"github.com/pokerface/networking-api/internal/core/domain"
)

// NotificationInput is the DTO a producer hands to the dispatcher. The
// producer stamps CreatedAt at emission time so the feed's causal order is
// independent of when a worker persists the entry.
type NotificationInput struct {
	RecipientID string
	Kind        domain.NotificationKind
	Title       string
	Message     string
	SenderID    string
	SenderName  string
	ActionURL   string
	CreatedAt   time.Time
}

// Notifier is the emission port used by the reveal and table services.
// Implementations may deliver asynchronously but must preserve
// per-recipient ordering.
type Notifier interface {
	Notify(n NotificationInput)
}

// FeedResult is returned by List.
type FeedResult struct {
	Items  []*domain.Notification
	Unread int64
}

// NotificationService manages the per-user feed.
type NotificationService interface {
	// Deliver persists one notification. Called by dispatcher workers, not
	// by the transport layer.
	Deliver(ctx context.Context, n NotificationInput) error
	List(ctx context.Context, recipientID string) (*FeedResult, error)
	MarkRead(ctx context.Context, id, recipientID string) error
	// MarkAllRead marks everything existing at call time read and returns
	// the number of notifications updated.
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	Clear(ctx context.Context, id, recipientID string) error
}
