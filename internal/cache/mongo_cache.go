package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// mongoCollection is where cached payloads live
const mongoCollection = "search_cache"

// cachedPayload is one cache entry document
type cachedPayload struct {
	Key       string    `bson:"key"`
	Value     []byte    `bson:"value"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
	ExpiresAt time.Time `bson:"expires_at"` // TTL index for auto-cleanup
}

// noExpiry stands in for entries stored without a TTL
var noExpiry = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)

// MongoCache stores payloads in MongoDB and relies on a TTL index on
// expires_at for cleanup. Reads also filter on expires_at because the
// TTL monitor only runs periodically.
type MongoCache struct {
	client     *mongo.Client
	collection *mongo.Collection
	now        func() time.Time
}

// NewMongoCache connects to MongoDB and prepares the cache collection
func NewMongoCache(ctx context.Context, mongoURL, database string) (*MongoCache, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	mc := &MongoCache{
		client:     client,
		collection: client.Database(database).Collection(mongoCollection),
		now:        time.Now,
	}

	if err := mc.ensureIndexes(connectCtx); err != nil {
		// Log error but don't fail initialization
		slog.Warn("Failed to create search cache indexes", "error", err)
	}

	return mc, nil
}

// ensureIndexes creates necessary indexes for the cache collection
func (mc *MongoCache) ensureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0), // TTL index
		},
	}

	_, err := mc.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// Get retrieves an unexpired payload by key
func (mc *MongoCache) Get(ctx context.Context, key string) ([]byte, error) {
	var cached cachedPayload

	filter := bson.M{
		"key":        key,
		"expires_at": bson.M{"$gt": mc.now()},
	}

	err := mc.collection.FindOne(ctx, filter).Decode(&cached)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, &CacheError{Backend: "mongo", Operation: "get", Key: key, Err: err}
	}

	return cached.Value, nil
}

// Set upserts a payload. A non-positive expiration never expires.
func (mc *MongoCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	now := mc.now()
	expiresAt := noExpiry
	if expiration > 0 {
		expiresAt = now.Add(expiration)
	}

	filter := bson.M{"key": key}
	update := bson.M{
		"$set": bson.M{
			"value":      value,
			"updated_at": now,
			"expires_at": expiresAt,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := mc.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return &CacheError{Backend: "mongo", Operation: "set", Key: key, Err: err}
	}

	return nil
}

// Delete removes a cached payload
func (mc *MongoCache) Delete(ctx context.Context, key string) error {
	if _, err := mc.collection.DeleteOne(ctx, bson.M{"key": key}); err != nil {
		return &CacheError{Backend: "mongo", Operation: "delete", Key: key, Err: err}
	}
	return nil
}

// Exists checks for an unexpired payload
func (mc *MongoCache) Exists(ctx context.Context, key string) (bool, error) {
	filter := bson.M{
		"key":        key,
		"expires_at": bson.M{"$gt": mc.now()},
	}

	count, err := mc.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, &CacheError{Backend: "mongo", Operation: "exists", Key: key, Err: err}
	}
	return count > 0, nil
}

// TTL reports the remaining lifetime of an unexpired payload
func (mc *MongoCache) TTL(ctx context.Context, key string) (time.Duration, bool, error) {
	var cached cachedPayload

	filter := bson.M{
		"key":        key,
		"expires_at": bson.M{"$gt": mc.now()},
	}
	opts := options.FindOne().SetProjection(bson.M{"expires_at": 1})

	err := mc.collection.FindOne(ctx, filter, opts).Decode(&cached)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, false, nil
		}
		return 0, false, &CacheError{Backend: "mongo", Operation: "ttl", Key: key, Err: err}
	}

	if cached.ExpiresAt.Equal(noExpiry) {
		return 0, true, nil
	}
	return cached.ExpiresAt.Sub(mc.now()), true, nil
}

// CleanupExpired removes expired entries (backup for TTL index)
func (mc *MongoCache) CleanupExpired(ctx context.Context) (int64, error) {
	result, err := mc.collection.DeleteMany(ctx, bson.M{
		"expires_at": bson.M{"$lte": mc.now()},
	})
	if err != nil {
		return 0, &CacheError{Backend: "mongo", Operation: "cleanup", Err: err}
	}
	return result.DeletedCount, nil
}

// Close disconnects from MongoDB
func (mc *MongoCache) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return mc.client.Disconnect(ctx)
}

// Health pings the primary
func (mc *MongoCache) Health(ctx context.Context) error {
	if err := mc.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("MongoDB health check failed: %w", err)
	}
	return nil
}
