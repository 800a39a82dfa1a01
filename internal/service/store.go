package service

import (
	"context"
	"time"

	"assetflow/internal/core"
	"assetflow/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 以下介面由 mongodb repository 實作，測試時以記憶體版本替換

type PersonStore interface {
	Create(ctx context.Context, person *model.Person) (*model.Person, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Person, error)
	GetByEmail(ctx context.Context, email string) (*model.Person, error)
	List(ctx context.Context, query core.PersonQuery) ([]*model.Person, error)
	ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Person, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch model.PersonPatch) (int64, error)
	UpdateByEmail(ctx context.Context, email string, patch model.PersonPatch) (int64, error)
	UpdateMany(ctx context.Context, ids []primitive.ObjectID, patch model.PersonPatch) (int64, int64, error)
	CountByHR(ctx context.Context, hrEmail string) (int64, error)
}

type AssetStore interface {
	Create(ctx context.Context, asset *model.Asset) (*model.Asset, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Asset, error)
	List(ctx context.Context, query core.AssetQuery) ([]*model.Asset, error)
	Update(ctx context.Context, id primitive.ObjectID, patch model.AssetPatch) (*model.Asset, error)
	AdjustQuantity(ctx context.Context, id primitive.ObjectID, delta int) (*model.Asset, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
	CountOutOfStock(ctx context.Context) (int64, error)
}

type AssetRequestStore interface {
	Create(ctx context.Context, request *model.AssetRequest) (*model.AssetRequest, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.AssetRequest, error)
	List(ctx context.Context, query core.AssetRequestQuery) ([]*model.AssetRequest, error)
	Transition(ctx context.Context, id primitive.ObjectID, from, to core.RequestStatus, at time.Time) (*model.AssetRequest, error)
	SyncAssetQuantity(ctx context.Context, assetID primitive.ObjectID, quantity int) (int64, error)
	CountLiveByAsset(ctx context.Context, assetID primitive.ObjectID) (int64, error)
	CountPending(ctx context.Context) (int64, error)
}

type PaymentStore interface {
	Create(ctx context.Context, payment *model.Payment) (*model.Payment, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error)
	ListByEmail(ctx context.Context, email string) ([]*model.Payment, error)
}

// Transactor fn 內的 store 呼叫必須使用傳入的 ctx
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PaymentIntent 金流商回傳的付款意圖
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64
	Currency     string
	Metadata     map[string]string
}

const PaymentIntentSucceeded = "succeeded"

type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*PaymentIntent, error)
	RetrieveIntent(ctx context.Context, intentID string) (*PaymentIntent, error)
}
