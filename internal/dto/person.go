package dto

import (
	"time"

	"assetflow/internal/core"
	"assetflow/internal/pkg/request"
)

// 自助註冊
type RegisterPersonDto struct {
	Email       string    `json:"email" binding:"required,email"`
	Name        string    `json:"name"`
	PhotoURL    string    `json:"photoUrl"`
	Role        core.Role `json:"role" binding:"omitempty,oneof=employee hr_manager"`
	CompanyName string    `json:"companyName"`
	CompanyLogo string    `json:"companyLogo"`
	DateOfBirth string    `json:"dateOfBirth"`
}

func (RegisterPersonDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"Email.required": "email is required",
		"Email.email":    "email format is invalid",
		"Role.oneof":     "role must be employee or hr_manager",
	}
}

// InsertedID 已存在時為 null
type RegisterPersonResponseDto struct {
	Message    string  `json:"message"`
	InsertedID *string `json:"insertedId"`
}

type PersonResponseDto struct {
	ID          string    `json:"_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name,omitempty"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
	Role        core.Role `json:"role"`
	HREmail     string    `json:"hr_email,omitempty"`
	CompanyName string    `json:"companyName,omitempty"`
	CompanyLogo string    `json:"companyLogo,omitempty"`
	DateOfBirth string    `json:"dateOfBirth,omitempty"`
	Package     string    `json:"package,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// 個人資料 + 由申請紀錄推導出的資產
type ProfileResponseDto struct {
	PersonResponseDto
	Assets []*AssetRequestResponseDto `json:"assets"`
}

type RoleResponseDto struct {
	Role core.Role `json:"role"`
}

// 單筆部分更新；hr_email 傳空字串代表離開團隊
type PatchPersonDto struct {
	ID          string  `json:"_id" binding:"required"`
	Name        *string `json:"name,omitempty"`
	PhotoURL    *string `json:"photoUrl,omitempty"`
	HREmail     *string `json:"hr_email,omitempty"`
	CompanyLogo *string `json:"companyLogo,omitempty"`
	CompanyName *string `json:"companyName,omitempty"`
}

type BulkPersonDataDto struct {
	Role        *core.Role `json:"role,omitempty" binding:"omitempty,oneof=employee hr_manager"`
	HREmail     *string    `json:"hr_email,omitempty"`
	CompanyLogo *string    `json:"companyLogo,omitempty"`
	CompanyName *string    `json:"companyName,omitempty"`
	Name        *string    `json:"name,omitempty"`
	PhotoURL    *string    `json:"photoUrl,omitempty"`
}

// 批次更新
type BulkPatchPersonDto struct {
	IDs  []string          `json:"ids" binding:"required"`
	Data BulkPersonDataDto `json:"data"`
}

type BulkPatchResponseDto struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}
