package model

import (
	"time"

	"assetflow/internal/core"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Asset struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id"`
	HREmail       string             `json:"hr_email" bson:"hr_email"` // 擁有者
	AssetName     string             `json:"assetName" bson:"assetName"`
	AssetType     core.AssetType     `json:"assetType" bson:"assetType"`
	AssetQuantity int                `json:"assetQuantity" bson:"assetQuantity"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	PostDate      time.Time          `json:"postDate" bson:"postDate"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

var AssetIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "hr_email", Value: 1}, {Key: "postDate", Value: -1}},
		Options: options.Index().SetName("idx_hr_email_postDate"),
	},
	{
		Keys:    bson.D{{Key: "assetQuantity", Value: 1}},
		Options: options.Index().SetName("idx_assetQuantity"),
	},
}

type AssetPatch struct {
	AssetName     *string
	AssetType     *core.AssetType
	AssetQuantity *int
	Description   *string
}

func (p AssetPatch) IsEmpty() bool {
	return p.AssetName == nil && p.AssetType == nil && p.AssetQuantity == nil && p.Description == nil
}

func (p AssetPatch) SetDocument() bson.M {
	set := bson.M{}
	if p.AssetName != nil {
		set["assetName"] = *p.AssetName
	}
	if p.AssetType != nil {
		set["assetType"] = *p.AssetType
	}
	if p.AssetQuantity != nil {
		set["assetQuantity"] = *p.AssetQuantity
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	return set
}

func (p AssetPatch) Apply(asset *Asset) {
	if p.AssetName != nil {
		asset.AssetName = *p.AssetName
	}
	if p.AssetType != nil {
		asset.AssetType = *p.AssetType
	}
	if p.AssetQuantity != nil {
		asset.AssetQuantity = *p.AssetQuantity
	}
	if p.Description != nil {
		asset.Description = *p.Description
	}
}
