package ports

import (
	"context"
	"time"

	"github.com/pokerface/networking-api/internal/core/domain"
)

// NotificationRepository defines persistence for the per-user feed.
// Insert is the only creation path; entries are immutable apart from the
// read flag and deletion.
type NotificationRepository interface {
	// Insert appends the notification and assigns it an identifier that is
	// monotonically increasing within the recipient's feed.
	Insert(ctx context.Context, n *domain.Notification) error
	// ListByRecipient returns the active feed ordered by created_at
	// descending, ties broken by descending identifier.
	ListByRecipient(ctx context.Context, recipientID string) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	// MarkRead sets read=true. No-op when already read; fails with
	// domain.ErrNotificationNotFound when the id does not exist or does not
	// belong to recipientID.
	MarkRead(ctx context.Context, id, recipientID string) error
	// MarkAllRead sets read=true on every notification created at or before
	// cutoff and returns the number updated. Entries arriving after the
	// cutoff stay unread.
	MarkAllRead(ctx context.Context, recipientID string, cutoff time.Time) (int64, error)
	// Delete removes the notification regardless of read state.
	Delete(ctx context.Context, id, recipientID string) error
}
