package dto

import (
	"time"

	"assetflow/internal/core"
	"assetflow/internal/pkg/request"
)

// 員工送出申請
type CreateAssetRequestDto struct {
	AssetID        string `json:"assetID" binding:"required"`
	HREmail        string `json:"hr_email" binding:"required,email"`
	RequestMessage string `json:"requestMessage" binding:"max=1000"`
}

func (CreateAssetRequestDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"AssetID.required": "assetID is required",
		"HREmail.required": "hr_email is required",
		"HREmail.email":    "hr_email format is invalid",
	}
}

// 審核 / 歸還 / 取消；數量變化由狀態推導
type DecideAssetRequestDto struct {
	ID            string             `json:"_id" binding:"required"`
	RequestStatus core.RequestStatus `json:"requestStatus" binding:"required,oneof=approved rejected returned cancelled"`
	Date          *time.Time         `json:"date,omitempty"`
}

func (DecideAssetRequestDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"ID.required":            "_id is required",
		"RequestStatus.required": "requestStatus is required",
		"RequestStatus.oneof":    "requestStatus must be approved, rejected, returned or cancelled",
	}
}

type AssetRequestResponseDto struct {
	ID             string             `json:"_id"`
	AssetID        string             `json:"assetID"`
	AssetName      string             `json:"assetName"`
	AssetType      core.AssetType     `json:"assetType"`
	AssetQuantity  int                `json:"assetQuantity"`
	EmployeeEmail  string             `json:"employeeEmail"`
	EmployeeName   string             `json:"employeeName,omitempty"`
	HREmail        string             `json:"hr_email"`
	RequestingDate time.Time          `json:"requestingDate"`
	RequestMessage string             `json:"requestMessage,omitempty"`
	RequestStatus  core.RequestStatus `json:"requestStatus"`
	ApprovalDate   *time.Time         `json:"approvalDate,omitempty"`
	ReceivingDate  *time.Time         `json:"receivingDate,omitempty"`
	RejectionDate  *time.Time         `json:"rejectionDate,omitempty"`
	ReturningDate  *time.Time         `json:"returningDate,omitempty"`
	CancellingDate *time.Time         `json:"cancellingDate,omitempty"`
}
