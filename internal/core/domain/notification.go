package domain

import (
	"errors"
	"time"
)

// NotificationKind enumerates the feed event types.
type NotificationKind string

const (
	NotifyRevealRequest   NotificationKind = "reveal_request"
	NotifyRevealAccepted  NotificationKind = "reveal_accepted"
	NotifyRevealDeclined  NotificationKind = "reveal_declined"
	NotifyTableInvitation NotificationKind = "table_invitation"
	NotifyMatch           NotificationKind = "match"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification is one entry in a recipient's append-only feed. Only the
// Read flag ever mutates; Clear removes the entry permanently. Feeds are
// listed most-recent-first, ties broken by descending identifier.
type Notification struct {
	ID          string           `json:"id" bson:"_id,omitempty"`
	RecipientID string           `json:"recipient_id" bson:"recipient_id"`
	Kind        NotificationKind `json:"kind" bson:"kind"`
	Title       string           `json:"title" bson:"title"`
	Message     string           `json:"message" bson:"message"`
	SenderID    string           `json:"sender_id,omitempty" bson:"sender_id,omitempty"`
	SenderName  string           `json:"sender_name,omitempty" bson:"sender_name,omitempty"`
	ActionURL   string           `json:"action_url,omitempty" bson:"action_url,omitempty"`
	CreatedAt   time.Time        `json:"created_at" bson:"created_at"`
	Read        bool             `json:"read" bson:"read"`
}
