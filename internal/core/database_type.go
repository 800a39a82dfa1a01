package core

// ─── Database Types ────────────────────────────────────────────────────────────

type MongoCollection string
type RedisKey string
type FluentdSubTag string

// MongoDB collections
const (
	MongoCollectionUsers             MongoCollection = "users"
	MongoCollectionAssets            MongoCollection = "assets"
	MongoCollectionAssetDistribution MongoCollection = "asset_distribution"
	MongoCollectionPayments          MongoCollection = "payments"
)

// ─── Redis Keys ────────────────────────────────────────────────────────────────

const (
	RedisKeyServerName RedisKey = "assetflow"  // 伺服器名稱
	RedisKeyRateLimit  RedisKey = "rate_limit" // 限流計數
)

const (
	FluentdRequest  FluentdSubTag = "request_log"
	FluentdResponse FluentdSubTag = "response_log"
)

// PersonQuery 人員列表條件
type PersonQuery struct {
	HREmail      string // 非空時查該 HR 的團隊
	Unaffiliated bool   // 查尚未加入任何團隊的人員
	SearchText   string
}

// AssetQuery 資產列表條件
type AssetQuery struct {
	HREmail    string
	SearchText string
	Category   AssetCategory
}

// AssetRequestQuery 申請紀錄列表條件
type AssetRequestQuery struct {
	HREmail       string
	EmployeeEmail string
	Status        RequestStatus
	SearchText    string
	Category      AssetCategory
}
