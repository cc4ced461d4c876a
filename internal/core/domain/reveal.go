package domain

import (
	"errors"
	"time"
)

// RequestStatus represents the lifecycle state of a reveal request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestDeclined RequestStatus = "declined"
	RequestExpired  RequestStatus = "expired"
)

// validResolutions defines the allowed state machine transitions.
// Every non-pending status is terminal.
var validResolutions = map[RequestStatus][]RequestStatus{
	RequestPending: {RequestAccepted, RequestDeclined, RequestExpired},
}

var ErrRequestNotFound = errors.New("reveal request not found")
var ErrRequestNotPending = errors.New("reveal request already resolved")
var ErrDuplicateRequest = errors.New("reveal request already pending for this pair")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range validResolutions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// RevealRequest tracks one reveal exchange between a card owner and a
// requester. At most one request per (card, requester) pair may be pending
// at any time.
type RevealRequest struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	CardID      string        `json:"card_id" bson:"card_id"`
	OwnerID     string        `json:"owner_id" bson:"owner_id"`
	RequesterID string        `json:"requester_id" bson:"requester_id"`
	Status      RequestStatus `json:"status" bson:"status"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	ResolvedAt  *time.Time    `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
}
