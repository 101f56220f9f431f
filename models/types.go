package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole enumerates the roles of the works department.
type UserRole string

const (
	UserRoleJE       UserRole = "JE"       // Junior Engineer, submits projects and posts progress
	UserRoleAEE      UserRole = "AEE"      // Assistant Executive Engineer, first approval level
	UserRoleCE       UserRole = "CE"       // Chief Engineer, second approval level
	UserRoleMD       UserRole = "MD"       // Managing Director, final approval level
	UserRoleOPERATOR UserRole = "OPERATOR" // data operator
	UserRoleEXECUTOR UserRole = "EXECUTOR" // field executor
	UserRoleVIEWER   UserRole = "VIEWER"   // read-only access
	UserRoleADMIN    UserRole = "ADMIN"    // system administrator
)

// UserStatus enumerates account approval states.
type UserStatus string

const (
	UserStatusPENDING  UserStatus = "pending"
	UserStatusAPPROVED UserStatus = "approved"
	UserStatusREJECTED UserStatus = "rejected"
)

// User is a dashboard account.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Username        string             `bson:"username" json:"username"`
	Password        string             `bson:"password" json:"-"` // never returned
	Phone           string             `bson:"phone" json:"phone"`
	Role            UserRole           `bson:"role" json:"role"`
	Status          UserStatus         `bson:"status" json:"status"`
	Department      string             `bson:"department,omitempty" json:"department,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
	RejectionReason string             `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
}

// Request and response shapes shared across controllers.
type (
	// LoginRequest is the credential payload.
	LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	// LoginResponse carries the signed token and the account.
	LoginResponse struct {
		Token string      `json:"token"`
		User  interface{} `json:"user"`
	}

	// RegisterRequest registers a new account (pending until approved).
	RegisterRequest struct {
		Username   string   `json:"username" binding:"required,min=2"`
		Password   string   `json:"password" binding:"required,min=6"`
		Phone      string   `json:"phone" binding:"required,min=10,max=13"`
		Role       UserRole `json:"role" binding:"required"`
		Department string   `json:"department"`
	}

	// UserApprovalRequest approves or rejects a pending account.
	UserApprovalRequest struct {
		ID       string `json:"id" binding:"required"`
		Approved *bool  `json:"approved" binding:"required"`
		Reason   string `json:"reason"`
	}
)
