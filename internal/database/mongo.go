package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/tasktrack/tasktrack-api/internal/config"
)

// Collection names.
const (
	CollectionUsers    = "users"
	CollectionProjects = "projects"
	CollectionTasks    = "tasks"
)

// Older deployments created these collections with capitalised names.
var legacyCollections = map[string]string{
	"Users":    CollectionUsers,
	"Projects": CollectionProjects,
}

// ConnectMongo connects to the document store and returns the configured database.
func ConnectMongo(ctx context.Context, cfg *config.Config, log *zap.Logger) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	log.Info("mongo connection established", zap.String("database", cfg.MongoDatabase))
	return client, client.Database(cfg.MongoDatabase), nil
}

// EnsureMongoCollections renames legacy collections and creates the unique
// email index. It is safe to run on every start.
func EnsureMongoCollections(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	existing := make(map[string]bool, len(names))
	for _, name := range names {
		existing[name] = true
	}

	for legacy, current := range legacyCollections {
		if !existing[legacy] || existing[current] {
			continue
		}
		cmd := bson.D{
			{Key: "renameCollection", Value: db.Name() + "." + legacy},
			{Key: "to", Value: db.Name() + "." + current},
		}
		if err := db.Client().Database("admin").RunCommand(ctx, cmd).Err(); err != nil {
			return fmt.Errorf("failed to rename collection %s: %w", legacy, err)
		}
		log.Info("renamed legacy collection", zap.String("from", legacy), zap.String("to", current))
	}

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "Email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("Email_1"),
	}
	if _, err := db.Collection(CollectionUsers).Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}

	return nil
}
