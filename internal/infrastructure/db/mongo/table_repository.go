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

const collectionTables = "tables"

type TableRepository struct {
	col *mongo.Collection
}

func NewTableRepository(db *mongo.Database) *TableRepository {
	return &TableRepository{col: db.Collection(collectionTables)}
}

// Create inserts a new table document.
func (r *TableRepository) Create(ctx context.Context, table *domain.Table) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, table)
	return err
}

// FindByID retrieves a table by id.
func (r *TableRepository) FindByID(ctx context.Context, id string) (*domain.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Table
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTableNotFound
		}
		return nil, err
	}
	return &t, nil
}

// AddMember appends userID with a single conditional update: the filter
// asserts the table is open, the user is absent, and a seat is free, so the
// capacity check and the append are one atomic unit. Two concurrent joins
// can never both take the last seat, and at most one of them observes
// inserted == true.
func (r *TableRepository) AddMember(ctx context.Context, tableID, userID string) (*domain.Table, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":       tableID,
		"closed_at": nil,
		"members":   bson.M{"$ne": userID},
		"$expr":     bson.M{"$lt": bson.A{bson.M{"$size": "$members"}, "$capacity"}},
	}
	update := bson.M{"$push": bson.M{"members": userID}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var t domain.Table
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&t)
	if err == nil {
		return &t, true, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, err
	}

	// The conditional update matched nothing; re-read to classify why.
	current, findErr := r.FindByID(ctx, tableID)
	if findErr != nil {
		return nil, false, findErr
	}
	switch {
	case current.IsClosed():
		return nil, false, domain.ErrTableClosed
	case current.HasMember(userID):
		return current, false, nil
	default:
		return nil, false, domain.ErrTableFull
	}
}

// RemoveMember removes userID if seated; removing an absent member is a
// no-op. Fails only when the table does not exist.
func (r *TableRepository) RemoveMember(ctx context.Context, tableID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": tableID},
		bson.M{"$pull": bson.M{"members": userID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTableNotFound
	}
	return nil
}

// Close marks the session ended. Closing an already-closed table keeps the
// original closure time.
func (r *TableRepository) Close(ctx context.Context, tableID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": tableID, "closed_at": nil},
		bson.M{"$set": bson.M{"closed_at": at}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, findErr := r.FindByID(ctx, tableID); findErr != nil {
			return findErr
		}
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the tables collection.
func (r *TableRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "organizer_id", Value: 1}}},
		{Keys: bson.D{{Key: "members", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
