package database

import (
	client "assetflow/internal/database/client"
	fluentdRepo "assetflow/internal/database/fluentd/repository"
	mongoRepo "assetflow/internal/database/mongodb/repository"
	redisRepo "assetflow/internal/database/redis/repository"

	"github.com/google/wire"
)

// ProviderSet 定義所有 DB Client 與 repository 的依賴
var ProviderSet = wire.NewSet(
	client.NewMongoClient,
	client.NewRedisClient,
	client.NewFluentdClient,
	mongoRepo.ProviderSet,
	redisRepo.ProviderSet,
	fluentdRepo.ProviderSet,
)
