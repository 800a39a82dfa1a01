package model

import (
	"time"

	"assetflow/internal/core"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AssetRequest 資產申請紀錄，也是員工持有資產的唯一來源
type AssetRequest struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id"`
	AssetID        primitive.ObjectID `json:"assetID" bson:"assetID"`
	AssetName      string             `json:"assetName" bson:"assetName"`
	AssetType      core.AssetType     `json:"assetType" bson:"assetType"`
	AssetQuantity  int                `json:"assetQuantity" bson:"assetQuantity"` // 資產庫存快照
	EmployeeEmail  string             `json:"employeeEmail" bson:"employeeEmail"`
	EmployeeName   string             `json:"employeeName,omitempty" bson:"employeeName,omitempty"`
	HREmail        string             `json:"hr_email" bson:"hr_email"`
	RequestingDate time.Time          `json:"requestingDate" bson:"requestingDate"`
	RequestMessage string             `json:"requestMessage,omitempty" bson:"requestMessage,omitempty"`
	RequestStatus  core.RequestStatus `json:"requestStatus" bson:"requestStatus"`
	ApprovalDate   *time.Time         `json:"approvalDate,omitempty" bson:"approvalDate,omitempty"`
	ReceivingDate  *time.Time         `json:"receivingDate,omitempty" bson:"receivingDate,omitempty"`
	RejectionDate  *time.Time         `json:"rejectionDate,omitempty" bson:"rejectionDate,omitempty"`
	ReturningDate  *time.Time         `json:"returningDate,omitempty" bson:"returningDate,omitempty"`
	CancellingDate *time.Time         `json:"cancellingDate,omitempty" bson:"cancellingDate,omitempty"`
	Live           bool               `json:"-" bson:"live"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

var AssetRequestIndexes = []mongo.IndexModel{
	{ // 同一員工同一資產只能有一筆 pending/approved
		Keys: bson.D{{Key: "employeeEmail", Value: 1}, {Key: "assetID", Value: 1}},
		Options: options.Index().
			SetName("uniq_live_employee_asset").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"live": true}),
	},
	{
		Keys:    bson.D{{Key: "hr_email", Value: 1}, {Key: "requestingDate", Value: -1}},
		Options: options.Index().SetName("idx_hr_email_requestingDate"),
	},
	{
		Keys:    bson.D{{Key: "employeeEmail", Value: 1}, {Key: "requestingDate", Value: -1}},
		Options: options.Index().SetName("idx_employeeEmail_requestingDate"),
	},
	{
		Keys:    bson.D{{Key: "assetID", Value: 1}},
		Options: options.Index().SetName("idx_assetID"),
	},
}

// TransitionSet 狀態轉移時要寫入的欄位
func TransitionSet(to core.RequestStatus, at time.Time) bson.M {
	set := bson.M{
		"requestStatus": to,
		"live":          to.Live(),
	}
	switch to {
	case core.RequestStatusApproved:
		set["approvalDate"] = at
		set["receivingDate"] = at
	case core.RequestStatusRejected:
		set["rejectionDate"] = at
	case core.RequestStatusReturned:
		set["returningDate"] = at
	case core.RequestStatusCancelled:
		set["cancellingDate"] = at
	}
	return set
}

// ApplyTransition 與 TransitionSet 相同語意，作用於記憶體文件
func (r *AssetRequest) ApplyTransition(to core.RequestStatus, at time.Time) {
	r.RequestStatus = to
	r.Live = to.Live()
	switch to {
	case core.RequestStatusApproved:
		r.ApprovalDate = &at
		r.ReceivingDate = &at
	case core.RequestStatusRejected:
		r.RejectionDate = &at
	case core.RequestStatusReturned:
		r.ReturningDate = &at
	case core.RequestStatusCancelled:
		r.CancellingDate = &at
	}
}
