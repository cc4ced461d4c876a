package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pokerface/networking-api/internal/core/domain"
	"github.com/pokerface/networking-api/internal/core/ports"
)

// TableSessions abstracts the session-lifetime store (Redis). A table is
// open while its session key lives; the key expires after the table's
// duration.
type TableSessions interface {
	Open(ctx context.Context, tableID string, duration time.Duration) error
	IsOpen(ctx context.Context, tableID string) (bool, error)
	Close(ctx context.Context, tableID string) error
}

type tableService struct {
	tables   ports.TableRepository
	users    ports.UserRepository
	sessions TableSessions
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewTableService returns a TableService implementation.
func NewTableService(
	tables ports.TableRepository,
	users ports.UserRepository,
	sessions TableSessions,
	notifier ports.Notifier,
	log zerolog.Logger,
) ports.TableService {
	return &tableService{
		tables:   tables,
		users:    users,
		sessions: sessions,
		notifier: notifier,
		log:      log,
	}
}

// Create opens a new networking table and starts its session clock.
func (s *tableService) Create(ctx context.Context, input ports.CreateTableInput) (*ports.TableView, error) {
	if _, err := s.users.FindByID(ctx, input.OrganizerID); err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}

	table := &domain.Table{
		ID:          newID(),
		Name:        input.Name,
		Capacity:    input.Capacity,
		DurationMin: input.DurationMin,
		Focus:       input.Focus,
		OrganizerID: input.OrganizerID,
		Members:     []string{},
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.tables.Create(ctx, table); err != nil {
		s.log.Error().Err(err).Str("organizer_id", input.OrganizerID).Msg("failed to create table")
		return nil, err
	}

	duration := time.Duration(table.DurationMin) * time.Minute
	if err := s.sessions.Open(ctx, table.ID, duration); err != nil {
		s.log.Warn().Err(err).Str("table_id", table.ID).Msg("failed to open table session")
	}

	s.log.Info().
		Str("table_id", table.ID).
		Int("capacity", table.Capacity).
		Int("duration_min", table.DurationMin).
		Msg("table created")

	view := tableView(table, true)
	return &view, nil
}

// Get returns the table with its current membership and open flag.
func (s *tableService) Get(ctx context.Context, tableID string) (*ports.TableView, error) {
	table, err := s.tables.FindByID(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("get table: %w", err)
	}
	open, err := s.isOpen(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("get table: %w", err)
	}
	view := tableView(table, open)
	return &view, nil
}

// Join seats the user. The capacity check and the append happen in one
// atomic repository operation; only the session check runs ahead of it.
func (s *tableService) Join(ctx context.Context, tableID, userID string) (int, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("join table: %w", err)
	}
	table, err := s.tables.FindByID(ctx, tableID)
	if err != nil {
		return 0, fmt.Errorf("join table: %w", err)
	}

	open, err := s.isOpen(ctx, table)
	if err != nil {
		return 0, fmt.Errorf("join table: %w", err)
	}
	if !open {
		return 0, domain.ErrTableClosed
	}

	updated, inserted, err := s.tables.AddMember(ctx, tableID, userID)
	if err != nil {
		return 0, fmt.Errorf("join table: %w", err)
	}
	count := len(updated.Members)

	// Fan-out is gated on the atomic append: a repeated join, even one
	// racing with itself, notifies at most once.
	if inserted {
		now := time.Now().UTC()
		for _, memberID := range updated.Members {
			if memberID == userID {
				continue
			}
			s.notifier.Notify(ports.NotificationInput{
				RecipientID: memberID,
				Kind:        domain.NotifyTableInvitation,
				Title:       "New Table Participant",
				Message:     fmt.Sprintf("%s joined %q", user.DisplayName, updated.Name),
				SenderID:    user.ID,
				SenderName:  user.DisplayName,
				ActionURL:   "/tables/" + updated.ID,
				CreatedAt:   now,
			})
		}

		s.log.Info().
			Str("table_id", tableID).
			Str("user_id", userID).
			Int("member_count", count).
			Msg("user joined table")
	}

	return count, nil
}

// Leave removes the user if seated. Leaving a table one never joined is a
// no-op; re-joining later appends at the current tail.
func (s *tableService) Leave(ctx context.Context, tableID, userID string) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return fmt.Errorf("leave table: %w", err)
	}
	if err := s.tables.RemoveMember(ctx, tableID, userID); err != nil {
		return fmt.Errorf("leave table: %w", err)
	}
	s.log.Info().Str("table_id", tableID).Str("user_id", userID).Msg("user left table")
	return nil
}

// End closes the session. Only the organizer may end a table.
func (s *tableService) End(ctx context.Context, tableID, organizerID string) error {
	table, err := s.tables.FindByID(ctx, tableID)
	if err != nil {
		return fmt.Errorf("end table: %w", err)
	}
	if table.OrganizerID != organizerID {
		return domain.ErrNotOwner
	}

	if err := s.tables.Close(ctx, tableID, time.Now().UTC()); err != nil {
		return fmt.Errorf("end table: %w", err)
	}
	if err := s.sessions.Close(ctx, tableID); err != nil {
		s.log.Warn().Err(err).Str("table_id", tableID).Msg("failed to close table session")
	}

	s.log.Info().Str("table_id", tableID).Str("organizer_id", organizerID).Msg("table ended")
	return nil
}

// isOpen resolves the table's open state, lazily persisting closure once
// the session's duration has elapsed.
func (s *tableService) isOpen(ctx context.Context, table *domain.Table) (bool, error) {
	if table.IsClosed() {
		return false, nil
	}
	open, err := s.sessions.IsOpen(ctx, table.ID)
	if err != nil {
		return false, err
	}
	if !open {
		if closeErr := s.tables.Close(ctx, table.ID, time.Now().UTC()); closeErr != nil {
			s.log.Warn().Err(closeErr).Str("table_id", table.ID).Msg("failed to persist table closure")
		}
	}
	return open, nil
}

func tableView(table *domain.Table, open bool) ports.TableView {
	return ports.TableView{
		ID:          table.ID,
		Name:        table.Name,
		Capacity:    table.Capacity,
		DurationMin: table.DurationMin,
		Focus:       table.Focus,
		OrganizerID: table.OrganizerID,
		Members:     table.Members,
		MemberCount: len(table.Members),
		Open:        open,
		CreatedAt:   table.CreatedAt,
	}
}
