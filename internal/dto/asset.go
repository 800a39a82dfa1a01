package dto

import (
	"time"

	"assetflow/internal/core"
)

type CreateAssetDto struct {
	AssetName     string         `json:"assetName" binding:"required"`
	AssetType     core.AssetType `json:"assetType" binding:"required,oneof=Returnable Non-returnable"`
	AssetQuantity int            `json:"assetQuantity" binding:"min=0"`
	Description   string         `json:"description"`
}

type AssetResponseDto struct {
	ID            string         `json:"_id"`
	HREmail       string         `json:"hr_email"`
	AssetName     string         `json:"assetName"`
	AssetType     core.AssetType `json:"assetType"`
	AssetQuantity int            `json:"assetQuantity"`
	Description   string         `json:"description,omitempty"`
	PostDate      time.Time      `json:"postDate"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// productId 為舊版欄位名稱
type DeleteAssetDto struct {
	AssetID   string `json:"assetID"`
	ProductID string `json:"productId"`
}

func (d DeleteAssetDto) TargetID() string {
	if d.AssetID != "" {
		return d.AssetID
	}
	return d.ProductID
}

type DeleteAssetResponseDto struct {
	DeletedCount int64 `json:"deletedCount"`
}

type RestockAssetDto struct {
	AssetID string `json:"assetID" binding:"required"`
}

type AssetUpdateDataDto struct {
	AssetName     *string         `json:"assetName,omitempty" binding:"omitempty,min=1"`
	AssetType     *core.AssetType `json:"assetType,omitempty" binding:"omitempty,oneof=Returnable Non-returnable"`
	AssetQuantity *int            `json:"assetQuantity,omitempty" binding:"omitempty,min=0"`
	Description   *string         `json:"description,omitempty"`
}

type UpdateAssetDto struct {
	ID          string             `json:"_id" binding:"required"`
	UpdatedData AssetUpdateDataDto `json:"updatedData"`
}
