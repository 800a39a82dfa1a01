package model

import (
	"time"

	"assetflow/internal/core"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Person 員工或 HR，email 唯一
type Person struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Email       string             `json:"email" bson:"email"`
	Name        string             `json:"name,omitempty" bson:"name,omitempty"`
	PhotoURL    string             `json:"photoUrl,omitempty" bson:"photoUrl,omitempty"`
	Role        core.Role          `json:"role" bson:"role"`
	HREmail     string             `json:"hr_email,omitempty" bson:"hr_email,omitempty"` // 所屬 HR
	CompanyName string             `json:"companyName,omitempty" bson:"companyName,omitempty"`
	CompanyLogo string             `json:"companyLogo,omitempty" bson:"companyLogo,omitempty"`
	DateOfBirth string             `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Package     string             `json:"package,omitempty" bson:"package,omitempty"` // 訂閱方案 id
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

var PersonIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_email").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "hr_email", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetName("idx_hr_email_name"),
	},
}

// PersonPatch nil 欄位不更新；HREmail 指向空字串代表解除所屬
type PersonPatch struct {
	Name        *string
	PhotoURL    *string
	Role        *core.Role
	HREmail     *string
	CompanyName *string
	CompanyLogo *string
	Package     *string
}

func (p PersonPatch) IsEmpty() bool {
	return p.Name == nil && p.PhotoURL == nil && p.Role == nil && p.HREmail == nil &&
		p.CompanyName == nil && p.CompanyLogo == nil && p.Package == nil
}

// UpdateDocument 只放入有提供的欄位
func (p PersonPatch) UpdateDocument() bson.M {
	set := bson.M{}
	unset := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.PhotoURL != nil {
		set["photoUrl"] = *p.PhotoURL
	}
	if p.Role != nil {
		set["role"] = *p.Role
	}
	if p.HREmail != nil {
		if *p.HREmail == "" {
			unset["hr_email"] = ""
		} else {
			set["hr_email"] = *p.HREmail
		}
	}
	if p.CompanyName != nil {
		set["companyName"] = *p.CompanyName
	}
	if p.CompanyLogo != nil {
		set["companyLogo"] = *p.CompanyLogo
	}
	if p.Package != nil {
		set["package"] = *p.Package
	}
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

// Apply 將 patch 套到記憶體中的文件
func (p PersonPatch) Apply(person *Person) {
	if p.Name != nil {
		person.Name = *p.Name
	}
	if p.PhotoURL != nil {
		person.PhotoURL = *p.PhotoURL
	}
	if p.Role != nil {
		person.Role = *p.Role
	}
	if p.HREmail != nil {
		person.HREmail = *p.HREmail
	}
	if p.CompanyName != nil {
		person.CompanyName = *p.CompanyName
	}
	if p.CompanyLogo != nil {
		person.CompanyLogo = *p.CompanyLogo
	}
	if p.Package != nil {
		person.Package = *p.Package
	}
}
