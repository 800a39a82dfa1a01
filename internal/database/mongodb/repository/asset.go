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

type AssetRepository struct {
	collection *mongo.Collection
}

func NewAssetRepository(mongoClient *client.MongoClient) *AssetRepository {
	repository := &AssetRepository{
		collection: mongoClient.Database().Collection(string(core.MongoCollectionAssets)),
	}
	ensureIndexes(repository.collection, model.AssetIndexes)
	return repository
}

func (repository *AssetRepository) Create(
	contextValue context.Context,
	asset *model.Asset,
) (*model.Asset, error) {

	nowUTC := time.Now().UTC()
	if asset.ID.IsZero() {
		asset.ID = primitive.NewObjectID()
	}
	if asset.PostDate.IsZero() {
		asset.PostDate = nowUTC
	}
	asset.UpdatedAt = nowUTC

	if _, err := repository.collection.InsertOne(contextValue, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (repository *AssetRepository) GetByID(
	contextValue context.Context,
	assetIdentifier primitive.ObjectID,
) (*model.Asset, error) {

	var asset model.Asset
	if err := repository.collection.FindOne(contextValue, bson.M{"_id": assetIdentifier}).Decode(&asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// List：新上架的排前面
func (repository *AssetRepository) List(
	contextValue context.Context,
	query core.AssetQuery,
) ([]*model.Asset, error) {

	findOptions := options.Find().SetSort(bson.D{{Key: "postDate", Value: -1}, {Key: "_id", Value: -1}})
	cursor, findError := repository.collection.Find(contextValue, buildAssetFilter(query), findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	assets := make([]*model.Asset, 0)
	if err := cursor.All(contextValue, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// Update：部分更新並回傳更新後文件
func (repository *AssetRepository) Update(
	contextValue context.Context,
	assetIdentifier primitive.ObjectID,
	patch model.AssetPatch,
) (*model.Asset, error) {

	update := withUpdatedAt(bson.M{"$set": patch.SetDocument()})
	findOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var asset model.Asset
	if err := repository.collection.FindOneAndUpdate(contextValue, bson.M{"_id": assetIdentifier}, update, findOptions).Decode(&asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// AdjustQuantity：delta < 0 時條件式扣減，數量不足回 ErrInsufficientQuantity
func (repository *AssetRepository) AdjustQuantity(
	contextValue context.Context,
	assetIdentifier primitive.ObjectID,
	delta int,
) (*model.Asset, error) {

	filter := bson.M{"_id": assetIdentifier}
	if delta < 0 {
		filter["assetQuantity"] = bson.M{"$gte": -delta}
	}
	update := withUpdatedAt(bson.M{"$inc": bson.M{"assetQuantity": delta}})
	findOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var asset model.Asset
	err := repository.collection.FindOneAndUpdate(contextValue, filter, update, findOptions).Decode(&asset)
	if err == nil {
		return &asset, nil
	}
	if !IsNotFound(err) || delta >= 0 {
		return nil, err
	}
	// 沒有命中：區分資產不存在與數量不足
	if _, getError := repository.GetByID(contextValue, assetIdentifier); getError != nil {
		return nil, getError
	}
	return nil, ErrInsufficientQuantity
}

// DeleteByID：回傳刪除數
func (repository *AssetRepository) DeleteByID(
	contextValue context.Context,
	assetIdentifier primitive.ObjectID,
) (int64, error) {

	result, err := repository.collection.DeleteOne(contextValue, bson.M{"_id": assetIdentifier})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// CountOutOfStock 庫存為 0 的資產數
func (repository *AssetRepository) CountOutOfStock(contextValue context.Context) (int64, error) {
	return repository.collection.CountDocuments(contextValue, bson.M{"assetQuantity": bson.M{"$lte": 0}})
}
