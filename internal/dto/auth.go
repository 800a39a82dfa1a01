package dto

import "assetflow/internal/pkg/request"

// 簽發 token
type IssueTokenDto struct {
	Email string `json:"email" binding:"required,email"`
}

func (IssueTokenDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"Email.required": "email is required",
		"Email.email":    "email format is invalid",
	}
}

type TokenResponseDto struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"` // 秒
}
