package repository

import (
	"context"
	"errors"

	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrInsufficientQuantity 扣庫存時數量不足
	ErrInsufficientQuantity = errors.New("asset quantity is insufficient")
	// ErrStaleTransition 申請狀態已被其他請求改變
	ErrStaleTransition = errors.New("asset request status changed concurrently")
)

// Wire 依賴提供
var ProviderSet = wire.NewSet(
	NewPersonRepository,
	NewAssetRepository,
	NewAssetRequestRepository,
	NewPaymentRepository,
	NewTransactor,
)

func withUpdatedAt(update bson.M) bson.M {
	// 確保 $currentDate 存在
	currentDate, ok := update["$currentDate"].(bson.M)
	if !ok || currentDate == nil {
		currentDate = bson.M{}
	}
	currentDate["updatedAt"] = true
	update["$currentDate"] = currentDate
	return update
}

// IsDuplicateKey 唯一索引衝突
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// IsNotFound 查無文件
func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// 啟動時建立索引（冪等、存在即跳過）
func ensureIndexes(collection *mongo.Collection, indexModels []mongo.IndexModel) {
	_, _ = collection.Indexes().CreateMany(context.Background(), indexModels)
}
