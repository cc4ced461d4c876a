package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pokerface/networking-api/internal/core/domain"
	"github.com/pokerface/networking-api/internal/core/ports"
)

type revealService struct {
	users    ports.UserRepository
	cards    ports.CardRepository
	requests ports.RevealRequestRepository
	matches  ports.MatchRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewRevealService returns a RevealService implementation.
func NewRevealService(
	users ports.UserRepository,
	cards ports.CardRepository,
	requests ports.RevealRequestRepository,
	matches ports.MatchRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) ports.RevealService {
	return &revealService{
		users:    users,
		cards:    cards,
		requests: requests,
		matches:  matches,
		notifier: notifier,
		log:      log,
	}
}

// AddCard creates a new profile card owned by input.OwnerID.
func (s *revealService) AddCard(ctx context.Context, input ports.AddCardInput) (*ports.CardView, error) {
	owner, err := s.users.FindByID(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("add card: %w", err)
	}

	kind := domain.CardKind(input.Kind)
	card := &domain.Card{
		ID:          newID(),
		OwnerID:     owner.ID,
		Kind:        kind,
		Name:        input.Name,
		Description: input.Description,
		RevealedTo:  []string{},
		CreatedAt:   time.Now().UTC(),
	}
	if kind == domain.KindSkill {
		card.Level = input.Level
	}

	if err := s.cards.Create(ctx, card); err != nil {
		s.log.Error().Err(err).Str("owner_id", owner.ID).Msg("failed to create card")
		return nil, err
	}

	s.log.Info().Str("card_id", card.ID).Str("owner_id", owner.ID).Str("kind", input.Kind).Msg("card created")

	view := cardView(card, owner.ID, false)
	return &view, nil
}

// ListCards returns ownerID's cards with visibility computed for viewerID.
// Hidden cards come back redacted.
func (s *revealService) ListCards(ctx context.Context, ownerID, viewerID string) ([]ports.CardView, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	cards, err := s.cards.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	pending := map[string]bool{}
	if viewerID != ownerID {
		open, err := s.requests.ListPendingByRequester(ctx, viewerID)
		if err != nil {
			return nil, fmt.Errorf("list cards: %w", err)
		}
		for _, req := range open {
			pending[req.CardID] = true
		}
	}

	views := make([]ports.CardView, 0, len(cards))
	for _, card := range cards {
		views = append(views, cardView(card, viewerID, pending[card.ID]))
	}
	return views, nil
}

// RequestReveal opens a pending reveal request for (cardID, requesterID) and
// notifies the card owner. When a pending request for the pair already
// exists the call is idempotent and returns the existing identifier.
func (s *revealService) RequestReveal(ctx context.Context, cardID, requesterID string) (*ports.RevealRequestResult, error) {
	card, err := s.cards.FindByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("request reveal: %w", err)
	}
	requester, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("request reveal: %w", err)
	}

	if card.OwnerID == requesterID {
		return nil, domain.ErrSelfReveal
	}
	if card.IsRevealedTo(requesterID) {
		return nil, domain.ErrAlreadyRevealed
	}

	if existing, err := s.requests.FindPending(ctx, cardID, requesterID); err == nil {
		return &ports.RevealRequestResult{RequestID: existing.ID, AlreadyPending: true}, nil
	} else if !errors.Is(err, domain.ErrRequestNotFound) {
		return nil, fmt.Errorf("request reveal: %w", err)
	}

	now := time.Now().UTC()
	req := &domain.RevealRequest{
		ID:          newID(),
		CardID:      card.ID,
		OwnerID:     card.OwnerID,
		RequesterID: requesterID,
		Status:      domain.RequestPending,
		CreatedAt:   now,
	}

	if err := s.requests.Create(ctx, req); err != nil {
		// Lost the race against a concurrent identical request: the winner's
		// request is the one we report, same as the sequential replay.
		if errors.Is(err, domain.ErrDuplicateRequest) {
			existing, findErr := s.requests.FindPending(ctx, cardID, requesterID)
			if findErr != nil {
				return nil, fmt.Errorf("request reveal: %w", findErr)
			}
			return &ports.RevealRequestResult{RequestID: existing.ID, AlreadyPending: true}, nil
		}
		s.log.Error().Err(err).Str("card_id", cardID).Msg("failed to create reveal request")
		return nil, err
	}

	s.notifier.Notify(ports.NotificationInput{
		RecipientID: card.OwnerID,
		Kind:        domain.NotifyRevealRequest,
		Title:       "New Reveal Request",
		Message:     fmt.Sprintf("%s wants to see your hidden %s card", requester.DisplayName, card.Kind),
		SenderID:    requester.ID,
		SenderName:  requester.DisplayName,
		ActionURL:   "/profile/" + requester.ID,
		CreatedAt:   now,
	})

	s.log.Info().
		Str("request_id", req.ID).
		Str("card_id", card.ID).
		Str("requester_id", requesterID).
		Msg("reveal requested")

	return &ports.RevealRequestResult{RequestID: req.ID}, nil
}

// Respond resolves a pending reveal request. Only the card owner may
// respond; either outcome is terminal for the request.
func (s *revealService) Respond(ctx context.Context, requestID, ownerID string, accept bool) (*ports.RespondResult, error) {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("respond: %w", err)
	}
	card, err := s.cards.FindByID(ctx, req.CardID)
	if err != nil {
		return nil, fmt.Errorf("respond: %w", err)
	}
	owner, err := s.users.FindByID(ctx, card.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("respond: %w", err)
	}

	if ownerID != card.OwnerID {
		return nil, domain.ErrNotOwner
	}
	if req.Status != domain.RequestPending {
		return nil, domain.ErrRequestNotPending
	}

	now := time.Now().UTC()

	if !accept {
		// Conditional on the request still being pending; a concurrent
		// respond loses here instead of double-applying.
		if err := s.requests.Resolve(ctx, req.ID, domain.RequestDeclined, now); err != nil {
			return nil, fmt.Errorf("respond: %w", err)
		}
		s.notifier.Notify(ports.NotificationInput{
			RecipientID: req.RequesterID,
			Kind:        domain.NotifyRevealDeclined,
			Title:       "Reveal Declined",
			Message:     fmt.Sprintf("%s has declined to reveal their %q card", owner.DisplayName, card.Name),
			SenderID:    owner.ID,
			SenderName:  owner.DisplayName,
			CreatedAt:   now,
		})
		s.log.Info().Str("request_id", req.ID).Str("card_id", card.ID).Msg("reveal declined")
		return &ports.RespondResult{
			Status:     string(domain.RequestDeclined),
			Visibility: string(domain.VisibilityHidden),
		}, nil
	}

	// Reveal first: a failed reveal write leaves the request pending so the
	// owner can simply respond again.
	if err := s.cards.AddRevealedTo(ctx, card.ID, req.RequesterID); err != nil {
		return nil, fmt.Errorf("respond: reveal card: %w", err)
	}
	if err := s.requests.Resolve(ctx, req.ID, domain.RequestAccepted, now); err != nil {
		return nil, fmt.Errorf("respond: %w", err)
	}

	s.notifier.Notify(ports.NotificationInput{
		RecipientID: req.RequesterID,
		Kind:        domain.NotifyRevealAccepted,
		Title:       "Card Revealed",
		Message:     fmt.Sprintf("%s has revealed their %q card to you", owner.DisplayName, card.Name),
		SenderID:    owner.ID,
		SenderName:  owner.DisplayName,
		ActionURL:   "/profile/" + owner.ID,
		CreatedAt:   now,
	})

	announced, err := s.checkMutualMatch(ctx, card, req.RequesterID, now)
	if err != nil {
		// Announcement is best-effort on top of a completed reveal; the
		// reveal itself stands.
		s.log.Warn().Err(err).Str("card_id", card.ID).Msg("mutual match check failed")
	}

	s.log.Info().
		Str("request_id", req.ID).
		Str("card_id", card.ID).
		Str("requester_id", req.RequesterID).
		Bool("match_announced", announced).
		Msg("reveal accepted")

	return &ports.RespondResult{
		Status:         string(domain.RequestAccepted),
		Visibility:     string(domain.VisibilityRevealed),
		MatchAnnounced: announced,
	}, nil
}

// checkMutualMatch announces the (owner, requester) pair when each has now
// revealed at least one project card to the other. The match record keyed
// by the sorted pair guarantees at-most-once announcement.
func (s *revealService) checkMutualMatch(ctx context.Context, card *domain.Card, requesterID string, now time.Time) (bool, error) {
	if card.Kind != domain.KindProject {
		return false, nil
	}

	mutual, err := s.cards.HasRevealedProject(ctx, requesterID, card.OwnerID)
	if err != nil {
		return false, err
	}
	if !mutual {
		return false, nil
	}

	a, b := domain.PairKey(card.OwnerID, requesterID)
	first, err := s.matches.MarkAnnounced(ctx, a, b, now)
	if err != nil || !first {
		return false, err
	}

	users := [2]string{card.OwnerID, requesterID}
	for i, recipient := range users {
		other, err := s.users.FindByID(ctx, users[1-i])
		if err != nil {
			return true, err
		}
		s.notifier.Notify(ports.NotificationInput{
			RecipientID: recipient,
			Kind:        domain.NotifyMatch,
			Title:       "It's a Match",
			Message:     fmt.Sprintf("You and %s have mutually revealed Project cards", other.DisplayName),
			SenderID:    other.ID,
			SenderName:  other.DisplayName,
			ActionURL:   "/profile/" + other.ID,
			CreatedAt:   now,
		})
	}

	s.log.Info().Str("user_a", a).Str("user_b", b).Msg("match announced")
	return true, nil
}

// Retract clears every viewer-specific reveal of the card and expires any
// outstanding pending requests. Expiry emits no notifications.
func (s *revealService) Retract(ctx context.Context, cardID, ownerID string) error {
	card, err := s.cards.FindByID(ctx, cardID)
	if err != nil {
		return fmt.Errorf("retract: %w", err)
	}
	if card.OwnerID != ownerID {
		return domain.ErrNotOwner
	}

	now := time.Now().UTC()
	if err := s.cards.ClearRevealedTo(ctx, cardID); err != nil {
		return fmt.Errorf("retract: %w", err)
	}
	if err := s.requests.ExpireAllForCard(ctx, cardID, now); err != nil {
		return fmt.Errorf("retract: expire requests: %w", err)
	}

	s.log.Info().Str("card_id", cardID).Str("owner_id", ownerID).Msg("card retracted")
	return nil
}

// cardView maps a card to its viewer-specific representation, redacting the
// payload when the card is hidden from the viewer.
func cardView(card *domain.Card, viewerID string, hasPending bool) ports.CardView {
	visibility := card.VisibilityFor(viewerID, hasPending)
	view := ports.CardView{
		ID:         card.ID,
		OwnerID:    card.OwnerID,
		Kind:       string(card.Kind),
		Visibility: string(visibility),
		CreatedAt:  card.CreatedAt,
	}
	if visibility == domain.VisibilityRevealed {
		view.Name = card.Name
		view.Description = card.Description
		view.Level = card.Level
	}
	return view
}
