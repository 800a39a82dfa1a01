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

type AssetRequestRepository struct {
	collection *mongo.Collection
}

func NewAssetRequestRepository(mongoClient *client.MongoClient) *AssetRequestRepository {
	repository := &AssetRequestRepository{
		collection: mongoClient.Database().Collection(string(core.MongoCollectionAssetDistribution)),
	}
	ensureIndexes(repository.collection, model.AssetRequestIndexes)
	return repository
}

// Create：同員工同資產已有 live 申請時回 duplicate key error
func (repository *AssetRequestRepository) Create(
	contextValue context.Context,
	request *model.AssetRequest,
) (*model.AssetRequest, error) {

	nowUTC := time.Now().UTC()
	if request.ID.IsZero() {
		request.ID = primitive.NewObjectID()
	}
	if request.RequestingDate.IsZero() {
		request.RequestingDate = nowUTC
	}
	request.Live = request.RequestStatus.Live()
	request.UpdatedAt = nowUTC

	if _, err := repository.collection.InsertOne(contextValue, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (repository *AssetRequestRepository) GetByID(
	contextValue context.Context,
	requestIdentifier primitive.ObjectID,
) (*model.AssetRequest, error) {

	var request model.AssetRequest
	if err := repository.collection.FindOne(contextValue, bson.M{"_id": requestIdentifier}).Decode(&request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (repository *AssetRequestRepository) List(
	contextValue context.Context,
	query core.AssetRequestQuery,
) ([]*model.AssetRequest, error) {

	findOptions := options.Find().SetSort(bson.D{{Key: "requestingDate", Value: -1}, {Key: "_id", Value: -1}})
	cursor, findError := repository.collection.Find(contextValue, buildAssetRequestFilter(query), findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	requests := make([]*model.AssetRequest, 0)
	if err := cursor.All(contextValue, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// Transition：只有目前狀態仍為 from 才會寫入，否則回 ErrStaleTransition
func (repository *AssetRequestRepository) Transition(
	contextValue context.Context,
	requestIdentifier primitive.ObjectID,
	from, to core.RequestStatus,
	at time.Time,
) (*model.AssetRequest, error) {

	filter := bson.M{"_id": requestIdentifier, "requestStatus": from}
	update := withUpdatedAt(bson.M{"$set": model.TransitionSet(to, at.UTC())})
	findOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var request model.AssetRequest
	if err := repository.collection.FindOneAndUpdate(contextValue, filter, update, findOptions).Decode(&request); err != nil {
		if IsNotFound(err) {
			return nil, ErrStaleTransition
		}
		return nil, err
	}
	return &request, nil
}

// SyncAssetQuantity：同步該資產所有申請上的庫存快照
func (repository *AssetRequestRepository) SyncAssetQuantity(
	contextValue context.Context,
	assetIdentifier primitive.ObjectID,
	quantity int,
) (int64, error) {

	result, err := repository.collection.UpdateMany(
		contextValue,
		bson.M{"assetID": assetIdentifier},
		bson.M{"$set": bson.M{"assetQuantity": quantity}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// CountLiveByAsset 該資產尚未結束（pending / approved）的申請數
func (repository *AssetRequestRepository) CountLiveByAsset(contextValue context.Context, assetIdentifier primitive.ObjectID) (int64, error) {
	return repository.collection.CountDocuments(contextValue, bson.M{"assetID": assetIdentifier, "live": true})
}

// CountPending 待審申請數
func (repository *AssetRequestRepository) CountPending(contextValue context.Context) (int64, error) {
	return repository.collection.CountDocuments(contextValue, bson.M{"requestStatus": core.RequestStatusPending})
}
