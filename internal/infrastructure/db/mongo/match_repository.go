package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pokerface/networking-api/internal/core/domain"
)

const collectionMatches = "matches"

type MatchRepository struct {
	col *mongo.Collection
}

func NewMatchRepository(db *mongo.Database) *MatchRepository {
	return &MatchRepository{col: db.Collection(collectionMatches)}
}

// MarkAnnounced upserts the pair record with $setOnInsert. Exactly one
// caller ever observes UpsertedCount == 1 for a pair, which is the
// at-most-once guard for the match announcement.
func (r *MatchRepository) MarkAnnounced(ctx context.Context, userA, userB string, at time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	a, b := domain.PairKey(userA, userB)
	match := domain.Match{
		ID:          primitive.NewObjectID().Hex(),
		UserA:       a,
		UserB:       b,
		AnnouncedAt: at,
	}
	res, err := r.col.UpdateOne(ctx,
		bson.M{"user_a": a, "user_b": b},
		bson.M{"$setOnInsert": match},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		// A concurrent upsert for the same pair can race into a duplicate
		// key error; that caller simply is not the first.
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return res.UpsertedCount == 1, nil
}

// EnsureIndexes creates the unique pair index on the matches collection.
func (r *MatchRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_a", Value: 1}, {Key: "user_b", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
