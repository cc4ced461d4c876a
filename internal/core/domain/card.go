package domain

import (
	"errors"
	"time"
)

// CardKind distinguishes the two profile card types.
type CardKind string

const (
	KindSkill   CardKind = "skill"
	KindProject CardKind = "project"
)

// Skill proficiency levels. Project cards carry no level.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelExpert       = "expert"
)

// Visibility is what a specific viewer is allowed to see of a card.
// It is a per-viewer relation, never a card-global flag.
type Visibility string

const (
	VisibilityHidden        Visibility = "hidden"
	VisibilityPendingReveal Visibility = "pending_reveal"
	VisibilityRevealed      Visibility = "revealed"
)

var ErrCardNotFound = errors.New("card not found")
var ErrSelfReveal = errors.New("cannot request a reveal on your own card")
var ErrAlreadyRevealed = errors.New("card already revealed to requester")
var ErrNotOwner = errors.New("only the card owner may perform this action")

// Card is a unit of profile information with per-viewer visibility.
// RevealedTo is the authoritative set of viewers the owner has accepted;
// pending state lives on the RevealRequest, not on the card.
type Card struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	Kind        CardKind  `json:"kind" bson:"kind"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Level       string    `json:"level,omitempty" bson:"level,omitempty"`
	RevealedTo  []string  `json:"revealed_to" bson:"revealed_to"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// IsRevealedTo reports whether viewerID is in the card's revealed set.
// The owner always sees their own cards.
func (c *Card) IsRevealedTo(viewerID string) bool {
	if viewerID == c.OwnerID {
		return true
	}
	for _, id := range c.RevealedTo {
		if id == viewerID {
			return true
		}
	}
	return false
}

// VisibilityFor computes the viewer-specific visibility state.
// hasPending is whether the viewer currently has a pending reveal request
// for this card.
func (c *Card) VisibilityFor(viewerID string, hasPending bool) Visibility {
	if c.IsRevealedTo(viewerID) {
		return VisibilityRevealed
	}
	if hasPending {
		return VisibilityPendingReveal
	}
	return VisibilityHidden
}
