package repository

import (
	"context"
	"time"

	"assetflow/internal/core"
	client "assetflow/internal/database/client"
	"assetflow/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaymentRepository struct {
	collection *mongo.Collection
}

func NewPaymentRepository(mongoClient *client.MongoClient) *PaymentRepository {
	repository := &PaymentRepository{
		collection: mongoClient.Database().Collection(string(core.MongoCollectionPayments)),
	}
	ensureIndexes(repository.collection, model.PaymentIndexes)
	return repository
}

// Create：transactionId 重複時回 duplicate key error
func (repository *PaymentRepository) Create(
	contextValue context.Context,
	payment *model.Payment,
) (*model.Payment, error) {

	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	if payment.Timestamp.IsZero() {
		payment.Timestamp = time.Now().UTC()
	}
	if _, err := repository.collection.InsertOne(contextValue, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (repository *PaymentRepository) GetByTransactionID(
	contextValue context.Context,
	transactionID string,
) (*model.Payment, error) {

	var payment model.Payment
	if err := repository.collection.FindOne(contextValue, bson.M{"transactionId": transactionID}).Decode(&payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListByEmail：最新的排前面
func (repository *PaymentRepository) ListByEmail(
	contextValue context.Context,
	email string,
) ([]*model.Payment, error) {

	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, findError := repository.collection.Find(contextValue, bson.M{"email": email}, findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	payments := make([]*model.Payment, 0)
	if err := cursor.All(contextValue, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
