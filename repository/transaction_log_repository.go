package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/apexsim/storefront-backend/models"
)

type MongoTransactionLogRepository struct {
	collection *mongo.Collection
}

func NewTransactionLogRepository(db *mongo.Database) *MongoTransactionLogRepository {
	return &MongoTransactionLogRepository{
		collection: db.Collection("transaction_logs"),
	}
}

func (r *MongoTransactionLogRepository) Append(ctx context.Context, entry *models.TransactionLogEntry) error {
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *MongoTransactionLogRepository) FindByTypeAndStatus(ctx context.Context, eventType models.EventType, status string) ([]models.TransactionLogEntry, error) {
	filter := bson.M{"type": eventType, "status": status}
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.TransactionLogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *MongoTransactionLogRepository) FindRecent(ctx context.Context, limit int64) ([]models.TransactionLogEntry, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.TransactionLogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
