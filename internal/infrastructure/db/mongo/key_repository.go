package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clickerrealm/community-api/internal/core/domain"
)

const keysCollection = "registration_keys"

// KeyRepository is the Mongo-backed registration-key ledger. Redemption is a
// FindOneAndUpdate on {value, is_used: false}: the filter and the mutation
// run as one document-level operation, so a key can only ever be consumed
// once no matter how many registrations race for it.
type KeyRepository struct {
	coll *mongo.Collection
}

func NewKeyRepository(db *mongo.Database) *KeyRepository {
	return &KeyRepository{coll: db.Collection(keysCollection)}
}

type mongoKey struct {
	ID          string `bson:"_id"`
	Value       string `bson:"value"`
	IsUsed      bool   `bson:"is_used"`
	UsedBy      string `bson:"used_by,omitempty"`
	GeneratedBy string `bson:"generated_by"`
	CreatedAt   int64  `bson:"created_at"`
}

func (r *KeyRepository) Insert(ctx context.Context, key *domain.RegistrationKey) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoKey{
		ID:          key.ID,
		Value:       key.Value,
		IsUsed:      key.IsUsed,
		UsedBy:      key.UsedBy,
		GeneratedBy: key.GeneratedBy,
		CreatedAt:   key.CreatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrKeyValueTaken
		}
		return fmt.Errorf("insert key: %w", err)
	}
	return nil
}

func (r *KeyRepository) Redeem(ctx context.Context, value, consumerID string) (*domain.RegistrationKey, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"value": value, "is_used": false}
	update := bson.M{"$set": bson.M{"is_used": true, "used_by": consumerID}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mk mongoKey
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mk); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidOrUsedKey
		}
		return nil, fmt.Errorf("redeem key: %w", err)
	}
	return fromMongoKey(&mk), nil
}

func (r *KeyRepository) Release(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"is_used": false}, "$unset": bson.M{"used_by": ""}}
	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("release key: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrKeyNotFound
	}
	return nil
}

func (r *KeyRepository) FindByID(ctx context.Context, id string) (*domain.RegistrationKey, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mk mongoKey
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mk); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("find key: %w", err)
	}
	return fromMongoKey(&mk), nil
}

// Delete removes a key only while it is unused: the filter carries
// is_used=false so a key redeemed after the caller last looked at it
// survives the delete.
func (r *KeyRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "is_used": false})
	if err != nil {
		return fmt.Errorf("delete key: %w", err)
	}
	if res.DeletedCount == 0 {
		// Nothing matched: the key is either gone or was redeemed since.
		if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return domain.ErrKeyNotFound
			}
			return fmt.Errorf("delete key: %w", err)
		}
		return domain.ErrKeyInUse
	}
	return nil
}

func (r *KeyRepository) List(ctx context.Context) ([]*domain.RegistrationKey, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoKey
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	keys := make([]*domain.RegistrationKey, 0, len(docs))
	for i := range docs {
		keys = append(keys, fromMongoKey(&docs[i]))
	}
	return keys, nil
}

// EnsureIndexes creates the unique key-value index.
func (r *KeyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "value", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func fromMongoKey(mk *mongoKey) *domain.RegistrationKey {
	return &domain.RegistrationKey{
		ID:          mk.ID,
		Value:       mk.Value,
		IsUsed:      mk.IsUsed,
		UsedBy:      mk.UsedBy,
		GeneratedBy: mk.GeneratedBy,
		CreatedAt:   unixToTime(mk.CreatedAt),
	}
}
