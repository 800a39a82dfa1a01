package repository

import (
	"context"
	"fmt"
	"time"

	"assetflow/internal/core"
	client "assetflow/internal/database/client"
	"assetflow/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PersonRepository struct {
	collection *mongo.Collection
}

func NewPersonRepository(mongoClient *client.MongoClient) *PersonRepository {
	repository := &PersonRepository{
		collection: mongoClient.Database().Collection(string(core.MongoCollectionUsers)),
	}
	ensureIndexes(repository.collection, model.PersonIndexes)
	return repository
}

// Create：單文件插入，email 重複時回傳 duplicate key error
func (repository *PersonRepository) Create(
	contextValue context.Context,
	person *model.Person,
) (*model.Person, error) {

	nowUTC := time.Now().UTC()
	if person.ID.IsZero() {
		person.ID = primitive.NewObjectID()
	}
	person.CreatedAt = nowUTC
	person.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, person)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	person.ID = objectID
	return person, nil
}

func (repository *PersonRepository) GetByID(
	contextValue context.Context,
	personIdentifier primitive.ObjectID,
) (*model.Person, error) {
	return repository.findOne(contextValue, bson.M{"_id": personIdentifier})
}

func (repository *PersonRepository) GetByEmail(
	contextValue context.Context,
	email string,
) (*model.Person, error) {
	return repository.findOne(contextValue, bson.M{"email": email})
}

func (repository *PersonRepository) findOne(contextValue context.Context, filter bson.M) (*model.Person, error) {
	var person model.Person
	if err := repository.collection.FindOne(contextValue, filter).Decode(&person); err != nil {
		return nil, err
	}
	return &person, nil
}

// List：依團隊 / 未加入 / 名稱搜尋
func (repository *PersonRepository) List(
	contextValue context.Context,
	query core.PersonQuery,
) ([]*model.Person, error) {

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cursor, findError := repository.collection.Find(contextValue, buildPersonFilter(query), findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	persons := make([]*model.Person, 0)
	if err := cursor.All(contextValue, &persons); err != nil {
		return nil, err
	}
	return persons, nil
}

// ListByIDs：不存在的 id 直接略過
func (repository *PersonRepository) ListByIDs(
	contextValue context.Context,
	personIdentifiers []primitive.ObjectID,
) ([]*model.Person, error) {

	cursor, findError := repository.collection.Find(contextValue, bson.M{"_id": bson.M{"$in": personIdentifiers}})
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	persons := make([]*model.Person, 0, len(personIdentifiers))
	if err := cursor.All(contextValue, &persons); err != nil {
		return nil, err
	}
	return persons, nil
}

// UpdateByID：回傳 matched 數
func (repository *PersonRepository) UpdateByID(
	contextValue context.Context,
	personIdentifier primitive.ObjectID,
	patch model.PersonPatch,
) (int64, error) {

	result, updateError := repository.collection.UpdateOne(
		contextValue,
		bson.M{"_id": personIdentifier},
		withUpdatedAt(patch.UpdateDocument()),
	)
	if updateError != nil {
		return 0, updateError
	}
	return result.MatchedCount, nil
}

func (repository *PersonRepository) UpdateByEmail(
	contextValue context.Context,
	email string,
	patch model.PersonPatch,
) (int64, error) {

	result, updateError := repository.collection.UpdateOne(
		contextValue,
		bson.M{"email": email},
		withUpdatedAt(patch.UpdateDocument()),
	)
	if updateError != nil {
		return 0, updateError
	}
	return result.MatchedCount, nil
}

// UpdateMany：批次更新，回傳 matched / modified
func (repository *PersonRepository) UpdateMany(
	contextValue context.Context,
	personIdentifiers []primitive.ObjectID,
	patch model.PersonPatch,
) (int64, int64, error) {

	result, updateError := repository.collection.UpdateMany(
		contextValue,
		bson.M{"_id": bson.M{"$in": personIdentifiers}},
		withUpdatedAt(patch.UpdateDocument()),
	)
	if updateError != nil {
		return 0, 0, updateError
	}
	return result.MatchedCount, result.ModifiedCount, nil
}

// CountByHR 團隊人數，用於方案人數上限
func (repository *PersonRepository) CountByHR(contextValue context.Context, hrEmail string) (int64, error) {
	return repository.collection.CountDocuments(contextValue, bson.M{"hr_email": hrEmail})
}
