package dto

import "time"

// price 以主要貨幣單位計（例如 8.5 美元）；packageId 優先
type CreatePaymentIntentDto struct {
	Price     *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
	PackageID string   `json:"packageId,omitempty"`
}

type PaymentIntentResponseDto struct {
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type ConfirmPaymentDto struct {
	TransactionID string `json:"transactionId" binding:"required"`
	PackageID     string `json:"packageId" binding:"required"`
	Email         string `json:"email,omitempty" binding:"omitempty,email"`
}

type PaymentResponseDto struct {
	ID            string    `json:"_id"`
	Email         string    `json:"email"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	PackageID     string    `json:"packageId"`
	TransactionID string    `json:"transactionId"`
	Timestamp     time.Time `json:"timestamp"`
}
