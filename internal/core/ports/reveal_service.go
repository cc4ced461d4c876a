package ports

import (
	"context"
	"time"
)

// AddCardInput carries all data needed to create a profile card.
type AddCardInput struct {
	OwnerID     string
	Kind        string
	Name        string
	Description string
	Level       string // skills only
}

// CardView is a card as seen by a specific viewer. For hidden cards the
// payload fields are redacted (face-down card).
type CardView struct {
	ID          string
	OwnerID     string
	Kind        string
	Name        string
	Description string
	Level       string
	Visibility  string
	CreatedAt   time.Time
}

// RevealRequestResult is returned by RequestReveal.
type RevealRequestResult struct {
	RequestID string
	// AlreadyPending is true when an identical pending request existed and
	// its identifier was returned instead of creating a duplicate.
	AlreadyPending bool
}

// RespondResult is returned by Respond.
type RespondResult struct {
	Status string
	// Visibility is the requester's resulting visibility of the card.
	Visibility string
	// MatchAnnounced is true when this acceptance completed a mutual
	// project reveal and the pair's match was announced by this call.
	MatchAnnounced bool
}

// RevealService defines the use-case operations of the reveal protocol.
type RevealService interface {
	AddCard(ctx context.Context, input AddCardInput) (*CardView, error)
	// ListCards returns ownerID's cards with visibility computed for viewerID.
	ListCards(ctx context.Context, ownerID, viewerID string) ([]CardView, error)
	RequestReveal(ctx context.Context, cardID, requesterID string) (*RevealRequestResult, error)
	Respond(ctx context.Context, requestID, ownerID string, accept bool) (*RespondResult, error)
	// Retract forces every viewer-specific reveal of the card back to
	// hidden and expires outstanding pending requests.
	Retract(ctx context.Context, cardID, ownerID string) error
}
