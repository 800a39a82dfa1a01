package repository

import (
	"regexp"
	"strings"

	"assetflow/internal/core"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// containsText 不分大小寫的子字串比對，使用者輸入一律跳脫
func containsText(text string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(text)), Options: "i"}
}

// applyCategory 分類轉成條件；typeField / quantityField 依集合不同
func applyCategory(filter bson.M, category core.AssetCategory, typeField, quantityField string) {
	switch category {
	case core.CategoryReturnable:
		filter[typeField] = core.AssetTypeReturnable
	case core.CategoryNonReturnable:
		filter[typeField] = core.AssetTypeNonReturnable
	case core.CategoryInStock:
		filter[quantityField] = bson.M{"$gt": 0}
	case core.CategoryOutOfStock:
		filter[quantityField] = bson.M{"$lte": 0}
	}
}

func buildPersonFilter(query core.PersonQuery) bson.M {
	filter := bson.M{}
	switch {
	case query.HREmail != "":
		filter["hr_email"] = query.HREmail
	case query.Unaffiliated:
		// 缺欄位或空字串都算未加入
		filter["hr_email"] = bson.M{"$in": bson.A{nil, ""}}
		filter["role"] = bson.M{"$ne": core.RoleHRManager}
	}
	if strings.TrimSpace(query.SearchText) != "" {
		filter["name"] = containsText(query.SearchText)
	}
	return filter
}

func buildAssetFilter(query core.AssetQuery) bson.M {
	filter := bson.M{}
	if query.HREmail != "" {
		filter["hr_email"] = query.HREmail
	}
	if strings.TrimSpace(query.SearchText) != "" {
		filter["assetName"] = containsText(query.SearchText)
	}
	applyCategory(filter, query.Category, "assetType", "assetQuantity")
	return filter
}

func buildAssetRequestFilter(query core.AssetRequestQuery) bson.M {
	filter := bson.M{}
	if query.HREmail != "" {
		filter["hr_email"] = query.HREmail
	}
	if query.EmployeeEmail != "" {
		filter["employeeEmail"] = query.EmployeeEmail
	}
	if query.Status != "" {
		filter["requestStatus"] = query.Status
	}
	if strings.TrimSpace(query.SearchText) != "" {
		filter["assetName"] = containsText(query.SearchText)
	}
	applyCategory(filter, query.Category, "assetType", "assetQuantity")
	return filter
}
