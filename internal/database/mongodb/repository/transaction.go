package repository

import (
	"context"

	client "assetflow/internal/database/client"

	"go.mongodb.org/mongo-driver/mongo"
)

// Transactor 以 mongo session 包住多個 repository 操作
type Transactor struct {
	client *mongo.Client
}

func NewTransactor(mongoClient *client.MongoClient) *Transactor {
	return &Transactor{client: mongoClient.Client()}
}

// WithTransaction fn 收到的 ctx 為 session context，repository 呼叫需使用它
func (transactor *Transactor) WithTransaction(contextValue context.Context, fn func(ctx context.Context) error) error {
	session, err := transactor.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(contextValue)

	_, err = session.WithTransaction(contextValue, func(sessionContext mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessionContext)
	})
	return err
}
