package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/apexsim/storefront-backend/models"
)

type MongoOrderRepository struct {
	client    *mongo.Client
	orders    *mongo.Collection
	customers *mongo.Collection
}

func NewOrderRepository(client *mongo.Client, db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{
		client:    client,
		orders:    db.Collection("orders"),
		customers: db.Collection("customers"),
	}
}

// CreateWithCustomer inserts the order and upserts the denormalized
// customer document inside one multi-document transaction. The customer
// upsert is keyed by customer id, so repeat buyers merge into a single
// document instead of accumulating duplicates.
func (r *MongoOrderRepository) CreateWithCustomer(ctx context.Context, order *models.Order, customer *models.Customer) (string, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return "", err
	}
	defer session.EndSession(ctx)

	now := time.Now().UTC()

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.orders.InsertOne(sc, order); err != nil {
			return nil, err
		}

		update := bson.M{
			"$set": bson.M{
				"is_guest":   customer.IsGuest,
				"email":      customer.Email,
				"first_name": customer.FirstName,
				"last_name":  customer.LastName,
				"updated_at": now,
			},
			"$setOnInsert": bson.M{"created_at": now},
			"$addToSet": bson.M{
				"orders":             order.ID.String(),
				"shipping_addresses": order.ShippingAddress,
			},
		}
		opts := options.Update().SetUpsert(true)
		if _, err := r.customers.UpdateOne(sc, bson.M{"_id": customer.ID}, update, opts); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return "", err
	}
	return order.ID.String(), nil
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *MongoOrderRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.Order, error) {
	var order models.Order
	err := r.orders.FindOne(ctx, bson.M{"transaction_id": transactionID}).Decode(&order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *MongoOrderRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.applyUpdate(ctx, bson.M{"_id": id}, updates)
}

func (r *MongoOrderRepository) UpdateByTransactionID(ctx context.Context, transactionID string, updates map[string]interface{}) error {
	return r.applyUpdate(ctx, bson.M{"transaction_id": transactionID}, updates)
}

func (r *MongoOrderRepository) applyUpdate(ctx context.Context, filter bson.M, updates map[string]interface{}) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range updates {
		set[k] = v
	}
	result, err := r.orders.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
