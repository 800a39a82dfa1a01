package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Payment struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id"`
	Email         string             `json:"email" bson:"email"`
	Amount        int64              `json:"amount" bson:"amount"` // 最小貨幣單位
	Currency      string             `json:"currency" bson:"currency"`
	PackageID     string             `json:"packageId" bson:"packageId"`
	TransactionID string             `json:"transactionId" bson:"transactionId"`
	Timestamp     time.Time          `json:"timestamp" bson:"timestamp"`
}

var PaymentIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "transactionId", Value: 1}},
		Options: options.Index().SetName("uniq_transactionId").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "email", Value: 1}, {Key: "timestamp", Value: -1}},
		Options: options.Index().SetName("idx_email_timestamp"),
	},
}
