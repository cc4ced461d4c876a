package domain

import (
	"errors"
	"time"
)

const (
	MinTableCapacity = 2
	MaxTableCapacity = 12
)

var ErrTableNotFound = errors.New("table not found")
var ErrTableFull = errors.New("table has reached its maximum capacity")
var ErrTableClosed = errors.New("table is closed")

// Table is a capacity-bounded networking session. Members is kept in join
// order for display; the order carries no precedence. The capacity bound
// len(Members) <= Capacity holds at every observable instant and is
// enforced by the repository with an atomic check-and-append.
type Table struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Name        string     `json:"name" bson:"name"`
	Capacity    int        `json:"capacity" bson:"capacity"`
	DurationMin int        `json:"duration_min" bson:"duration_min"`
	Focus       []string   `json:"focus,omitempty" bson:"focus,omitempty"`
	OrganizerID string     `json:"organizer_id" bson:"organizer_id"`
	Members     []string   `json:"members" bson:"members"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	ClosedAt    *time.Time `json:"closed_at,omitempty" bson:"closed_at,omitempty"`
}

// HasMember reports whether userID is currently seated at the table.
func (t *Table) HasMember(userID string) bool {
	for _, id := range t.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// IsFull reports whether the table has no free seats.
func (t *Table) IsFull() bool {
	return len(t.Members) >= t.Capacity
}

// IsClosed reports whether the session has ended.
func (t *Table) IsClosed() bool {
	return t.ClosedAt != nil
}
