package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectStatus enumerates the project lifecycle.
type ProjectStatus string

const (
	StatusDraft         ProjectStatus = "Draft"
	StatusSubmitted     ProjectStatus = "SubmittedForApproval"
	StatusResubmitted   ProjectStatus = "ResubmittedForApproval"
	StatusRejectedByAEE ProjectStatus = "RejectedByAEE"
	StatusRejectedByCE  ProjectStatus = "RejectedByCE"
	StatusRejectedByMD  ProjectStatus = "RejectedByMD"
	StatusOngoing       ProjectStatus = "Ongoing"
	StatusCompleted     ProjectStatus = "Completed"
)

// Project is a tracked public-works project.
type Project struct {
	ID                  primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProjectName         string             `json:"projectName" bson:"projectName" binding:"required"`
	Department          string             `json:"department" bson:"department"`
	District            string             `json:"district,omitempty" bson:"district,omitempty"`
	WorkOrderNumber     string             `json:"workOrderNumber,omitempty" bson:"workOrderNumber,omitempty"`
	EstimatedValue      float64            `json:"estimatedValue" bson:"estimatedValue" binding:"required,gt=0"`
	PhysicalProgress    float64            `json:"physicalProgress" bson:"physicalProgress"`
	BillSubmittedAmount float64            `json:"billSubmittedAmount" bson:"billSubmittedAmount"`
	Status              ProjectStatus      `json:"status" bson:"status"`
	PendingLevel        UserRole           `json:"pendingLevel,omitempty" bson:"pendingLevel,omitempty"`
	IsEditable          bool               `json:"isEditable" bson:"isEditable"`
	CreatorID           string             `json:"creatorId" bson:"creatorId"`
	CreatorName         string             `json:"creatorName" bson:"creatorName"`
	UpdaterID           string             `json:"updaterId,omitempty" bson:"updaterId,omitempty"`
	UpdaterName         string             `json:"updaterName,omitempty" bson:"updaterName,omitempty"`
	Attachments         []FileAttachment   `json:"attachments,omitempty" bson:"attachments,omitempty"`
	Remarks             string             `json:"remarks,omitempty" bson:"remarks,omitempty"`
	RejectionReason     string             `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	StartDate           time.Time          `json:"startDate" bson:"startDate"`
	CompletedAt         *time.Time         `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	CreatedAt           time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ArchiveProject is a completed project moved out of the live collection.
type ArchiveProject struct {
	Project    `bson:",inline"`
	ArchivedAt time.Time `json:"archivedAt" bson:"archivedAt"`
}

// FileAttachment is a stored supporting document reference.
type FileAttachment struct {
	ID           string    `json:"id" bson:"id"`
	FileName     string    `json:"fileName" bson:"fileName"`
	OriginalName string    `json:"originalName" bson:"originalName"`
	FileSize     int64     `json:"fileSize" bson:"fileSize"`
	FileType     string    `json:"fileType" bson:"fileType"`
	UploadTime   time.Time `json:"uploadTime" bson:"uploadTime"`
	UploadedBy   string    `json:"uploadedBy" bson:"uploadedBy"`
	URL          string    `json:"url" bson:"url"`
}

// FileInfo is the stored document record in the files collection.
type FileInfo struct {
	ID           string             `json:"id" bson:"id"`
	FileName     string             `json:"fileName" bson:"fileName"`
	OriginalName string             `json:"originalName" bson:"originalName"`
	FileSize     int64              `json:"fileSize" bson:"fileSize"`
	FileType     string             `json:"fileType" bson:"fileType"`
	UploadTime   time.Time          `json:"uploadTime" bson:"uploadTime"`
	UploadedBy   string             `json:"uploadedBy" bson:"uploadedBy"`
	URL          string             `json:"url" bson:"url"`
	UploaderID   primitive.ObjectID `json:"uploaderId,omitempty" bson:"uploaderId,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

// ProjectCreateRequest creates a new draft project.
type ProjectCreateRequest struct {
	ProjectName     string  `json:"projectName" binding:"required,min=3"`
	Department      string  `json:"department" binding:"required"`
	District        string  `json:"district"`
	WorkOrderNumber string  `json:"workOrderNumber"`
	EstimatedValue  float64 `json:"estimatedValue" binding:"required,gt=0"`
	Remarks         string  `json:"remarks" binding:"max=500"`
}

// ProjectDecisionRequest records an approve/reject decision.
type ProjectDecisionRequest struct {
	Reason         string        `json:"reason"`
	ExpectedStatus ProjectStatus `json:"expectedStatus"` // stale-view guard, optional
}

// ProjectDetailResponse wraps a single project.
type ProjectDetailResponse struct {
	Success bool    `json:"success"`
	Project Project `json:"project"`
}

// ProjectListResponse wraps a project list.
type ProjectListResponse struct {
	Success  bool      `json:"success"`
	Projects []Project `json:"projects"`
}
