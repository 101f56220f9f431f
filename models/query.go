package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QueryPriority enumerates query urgency levels.
type QueryPriority string

const (
	QueryPriorityLow    QueryPriority = "low"
	QueryPriorityMedium QueryPriority = "medium"
	QueryPriorityHigh   QueryPriority = "high"
)

// ProjectQuery is a free-form clarification request raised against a project.
// Any authenticated role may raise one; its lifecycle is independent of the
// progress-update workflow.
type ProjectQuery struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProjectID              string             `bson:"projectId" json:"projectId"`
	ProjectName            string             `bson:"projectName" json:"projectName"`
	QueryTitle             string             `bson:"queryTitle" json:"queryTitle"`
	QueryDescription       string             `bson:"queryDescription" json:"queryDescription"`
	QueryCategory          string             `bson:"queryCategory" json:"queryCategory"`
	Priority               QueryPriority      `bson:"priority" json:"priority"`
	ExpectedResolutionDate time.Time          `bson:"expectedResolutionDate,omitempty" json:"expectedResolutionDate,omitempty"`
	AssignedTo             string             `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	RaisedByID             string             `bson:"raisedById" json:"raisedById"`
	RaisedByName           string             `bson:"raisedByName" json:"raisedByName"`
	RaisedByRole           UserRole           `bson:"raisedByRole" json:"raisedByRole"`
	CreatedAt              time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RaiseQueryRequest is the payload for raising a query.
type RaiseQueryRequest struct {
	ProjectID              string        `json:"projectId" binding:"required"`
	QueryTitle             string        `json:"queryTitle" binding:"required,min=5,max=200"`
	QueryDescription       string        `json:"queryDescription" binding:"required,min=20,max=2000"`
	QueryCategory          string        `json:"queryCategory" binding:"required"`
	Priority               QueryPriority `json:"priority" binding:"required,oneof=low medium high"`
	ExpectedResolutionDate time.Time     `json:"expectedResolutionDate" binding:"required"`
	AssignedTo             string        `json:"assignedTo"`
}
