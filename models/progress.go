package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressUpdateKind selects which dimensions a progress update touches.
type ProgressUpdateKind string

const (
	UpdateKindPhysical  ProgressUpdateKind = "Physical"
	UpdateKindFinancial ProgressUpdateKind = "Financial"
	UpdateKindCombined  ProgressUpdateKind = "Combined"
)

// BillDetails accompanies a financial progress update.
type BillDetails struct {
	BillNumber      string    `json:"billNumber" bson:"billNumber"`
	BillDate        time.Time `json:"billDate,omitempty" bson:"billDate,omitempty"`
	BillDescription string    `json:"billDescription" bson:"billDescription" binding:"max=200"`
}

// ProgressUpdateRequest is a candidate progress mutation. Nil fields mean
// "this dimension is not being updated" in combined scenarios.
type ProgressUpdateRequest struct {
	Kind             ProgressUpdateKind `json:"kind" binding:"required,oneof=Physical Financial Combined"`
	NewPhysicalValue *float64           `json:"newPhysicalProgress,omitempty"`
	NewBillAmount    *float64           `json:"newBillAmount,omitempty"`
	Remarks          string             `json:"remarks" binding:"max=500"`
	BillDetails      *BillDetails       `json:"billDetails,omitempty"`
	SupportingFiles  []FileAttachment   `json:"supportingFiles,omitempty"`
}

// StatusChange reports an automatic lifecycle transition caused by an update.
type StatusChange struct {
	Occurred bool   `json:"occurred"`
	Message  string `json:"message,omitempty"`
}

// ProgressUpdateResponse is returned by the progress submission endpoint.
type ProgressUpdateResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Project      Project       `json:"project"`
		StatusChange *StatusChange `json:"statusChange,omitempty"`
	} `json:"data"`
}

// ProgressHistory records one accepted progress change on a project.
type ProgressHistory struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProjectID         string             `bson:"projectId" json:"projectId" binding:"required"`
	ProjectName       string             `bson:"projectName" json:"projectName" binding:"required"`
	Kind              ProgressUpdateKind `bson:"kind" json:"kind"`
	FromPhysical      float64            `bson:"fromPhysical" json:"fromPhysical"`
	ToPhysical        float64            `bson:"toPhysical" json:"toPhysical"`
	FromBillAmount    float64            `bson:"fromBillAmount" json:"fromBillAmount"`
	ToBillAmount      float64            `bson:"toBillAmount" json:"toBillAmount"`
	FinancialProgress float64            `bson:"financialProgress" json:"financialProgress"`
	OperatorID        string             `bson:"operatorId" json:"operatorId" binding:"required"`
	OperatorName      string             `bson:"operatorName" json:"operatorName" binding:"required"`
	Remark            string             `bson:"remark,omitempty" json:"remark,omitempty"`
	BillNumber        string             `bson:"billNumber,omitempty" json:"billNumber,omitempty"`
	Attachments       []FileAttachment   `bson:"attachments,omitempty" json:"attachments,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt         time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
