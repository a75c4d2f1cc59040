package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/apexsim/storefront-backend/models"
)

type MongoUserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		collection: db.Collection("users"),
	}
}

// FindPrincipal fetches the stored profile for an authenticated user id.
func (r *MongoUserRepository) FindPrincipal(ctx context.Context, userID string) (*models.Principal, error) {
	var principal models.Principal
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&principal)
	if err != nil {
		return nil, err
	}
	return &principal, nil
}
