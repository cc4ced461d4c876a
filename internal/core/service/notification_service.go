package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pokerface/networking-api/internal/core/domain"
	"github.com/pokerface/networking-api/internal/core/ports"
)

type notificationService struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
}

// NewNotificationService returns a NotificationService implementation.
func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) ports.NotificationService {
	return &notificationService{repo: repo, log: log}
}

// Deliver persists one notification into the recipient's feed. CreatedAt is
// the producer's emission time; it is never re-stamped here so deferred
// delivery cannot reorder the feed against its causes.
func (s *notificationService) Deliver(ctx context.Context, in ports.NotificationInput) error {
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	n := &domain.Notification{
		RecipientID: in.RecipientID,
		Kind:        in.Kind,
		Title:       in.Title,
		Message:     in.Message,
		SenderID:    in.SenderID,
		SenderName:  in.SenderName,
		ActionURL:   in.ActionURL,
		CreatedAt:   createdAt,
	}

	if err := s.repo.Insert(ctx, n); err != nil {
		s.log.Error().Err(err).
			Str("recipient_id", in.RecipientID).
			Str("kind", string(in.Kind)).
			Msg("failed to insert notification")
		return fmt.Errorf("deliver notification: %w", err)
	}

	s.log.Debug().
		Str("notification_id", n.ID).
		Str("recipient_id", in.RecipientID).
		Str("kind", string(in.Kind)).
		Msg("notification delivered")

	return nil
}

// List returns the recipient's active feed, most recent first, with the
// unread count.
func (s *notificationService) List(ctx context.Context, recipientID string) (*ports.FeedResult, error) {
	items, err := s.repo.ListByRecipient(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	unread, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return &ports.FeedResult{Items: items, Unread: unread}, nil
}

// MarkRead sets read=true on one notification. Already-read is a no-op.
func (s *notificationService) MarkRead(ctx context.Context, id, recipientID string) error {
	if err := s.repo.MarkRead(ctx, id, recipientID); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

// MarkAllRead marks everything existing at call time read. The cutoff is
// captured before the bulk update so notifications emitted concurrently,
// after the call, stay unread.
func (s *notificationService) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	cutoff := time.Now().UTC()
	updated, err := s.repo.MarkAllRead(ctx, recipientID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	s.log.Debug().Str("recipient_id", recipientID).Int64("updated", updated).Msg("feed marked read")
	return updated, nil
}

// Clear removes the notification from the recipient's feed regardless of
// read state. Cleared entries are gone for good.
func (s *notificationService) Clear(ctx context.Context, id, recipientID string) error {
	if err := s.repo.Delete(ctx, id, recipientID); err != nil {
		return fmt.Errorf("clear notification: %w", err)
	}
	return nil
}
