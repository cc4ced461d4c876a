package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TableSessions tracks table session lifetimes in Redis.
// Key format: table_open:<table_id>, expiring after the table's duration so
// a table closes itself when time runs out.
type TableSessions struct {
	client *redis.Client
}

// NewTableSessions creates a TableSessions wrapping the given Redis client.
func NewTableSessions(client *redis.Client) *TableSessions {
	return &TableSessions{client: client}
}

// Open starts the session clock for the table.
func (s *TableSessions) Open(ctx context.Context, tableID string, duration time.Duration) error {
	return s.client.Set(ctx, s.key(tableID), "1", duration).Err()
}

// IsOpen reports whether the table's session is still running.
func (s *TableSessions) IsOpen(ctx context.Context, tableID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(tableID)).Result()
	if err != nil {
		return false, fmt.Errorf("session check: %w", err)
	}
	return n > 0, nil
}

// Close ends the session immediately (organizer ended the table).
func (s *TableSessions) Close(ctx context.Context, tableID string) error {
	return s.client.Del(ctx, s.key(tableID)).Err()
}

func (s *TableSessions) key(tableID string) string {
	return "table_open:" + tableID
}
