package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pokerface/networking-api/internal/core/domain"
)

const collectionCards = "cards"

type CardRepository struct {
	col *mongo.Collection
}

func NewCardRepository(db *mongo.Database) *CardRepository {
	return &CardRepository{col: db.Collection(collectionCards)}
}

// Create inserts a new card document.
func (r *CardRepository) Create(ctx context.Context, card *domain.Card) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, card)
	return err
}

// FindByID retrieves a card by id.
func (r *CardRepository) FindByID(ctx context.Context, id string) (*domain.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Card
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCardNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByOwner returns all cards owned by ownerID in creation order.
func (r *CardRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cards []*domain.Card
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// AddRevealedTo appends viewerID to the revealed set. $addToSet keeps the
// operation idempotent.
func (r *CardRepository) AddRevealedTo(ctx context.Context, cardID, viewerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": cardID},
		bson.M{"$addToSet": bson.M{"revealed_to": viewerID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

// ClearRevealedTo empties the card's revealed set (owner retraction).
func (r *CardRepository) ClearRevealedTo(ctx context.Context, cardID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": cardID},
		bson.M{"$set": bson.M{"revealed_to": []string{}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

// HasRevealedProject reports whether ownerID has at least one project card
// currently revealed to viewerID.
func (r *CardRepository) HasRevealedProject(ctx context.Context, ownerID, viewerID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{
		"owner_id":    ownerID,
		"kind":        domain.KindProject,
		"revealed_to": viewerID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// EnsureIndexes creates necessary indexes on the cards collection.
func (r *CardRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "kind", Value: 1}, {Key: "revealed_to", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
