package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pokerface/networking-api/internal/core/domain"
)

const collectionRevealRequests = "reveal_requests"

type RevealRequestRepository struct {
	col *mongo.Collection
}

func NewRevealRequestRepository(db *mongo.Database) *RevealRequestRepository {
	return &RevealRequestRepository{col: db.Collection(collectionRevealRequests)}
}

// Create inserts a new reveal request. The partial unique index on
// (card_id, requester_id) over pending documents makes a concurrent
// duplicate insert fail, which is surfaced as domain.ErrDuplicateRequest.
func (r *RevealRequestRepository) Create(ctx context.Context, req *domain.RevealRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, req); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateRequest
		}
		return err
	}
	return nil
}

// FindByID retrieves a reveal request by id.
func (r *RevealRequestRepository) FindByID(ctx context.Context, id string) (*domain.RevealRequest, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindPending returns the pending request for (cardID, requesterID).
func (r *RevealRequestRepository) FindPending(ctx context.Context, cardID, requesterID string) (*domain.RevealRequest, error) {
	return r.findOne(ctx, bson.M{
		"card_id":      cardID,
		"requester_id": requesterID,
		"status":       domain.RequestPending,
	})
}

func (r *RevealRequestRepository) findOne(ctx context.Context, filter bson.M) (*domain.RevealRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.RevealRequest
	if err := r.col.FindOne(ctx, filter).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// ListPendingByRequester returns all pending requests opened by requesterID.
func (r *RevealRequestRepository) ListPendingByRequester(ctx context.Context, requesterID string) ([]*domain.RevealRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{
		"requester_id": requesterID,
		"status":       domain.RequestPending,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reqs []*domain.RevealRequest
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// Resolve transitions the request from pending to status. The filter pins
// the pending status so concurrent responders cannot both apply; the loser
// is told the request was already resolved.
func (r *RevealRequestRepository) Resolve(ctx context.Context, id string, status domain.RequestStatus, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": domain.RequestPending},
		bson.M{"$set": bson.M{"status": status, "resolved_at": at}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish missing from already-resolved.
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return findErr
		}
		return domain.ErrRequestNotPending
	}
	return nil
}

// ExpireAllForCard marks every pending request for the card expired.
func (r *RevealRequestRepository) ExpireAllForCard(ctx context.Context, cardID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateMany(ctx,
		bson.M{"card_id": cardID, "status": domain.RequestPending},
		bson.M{"$set": bson.M{"status": domain.RequestExpired, "resolved_at": at}},
	)
	return err
}

// EnsureIndexes creates necessary indexes on the reveal_requests collection.
// The partial unique index is what upholds the one-pending-per-pair
// invariant under concurrent creation.
func (r *RevealRequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "card_id", Value: 1}, {Key: "requester_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": domain.RequestPending}),
		},
		{Keys: bson.D{{Key: "requester_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "card_id", Value: 1}, {Key: "status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
