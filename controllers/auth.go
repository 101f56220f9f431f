package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/pwdtrack/pwd_end/models"
	"github.com/pwdtrack/pwd_end/repository"
	"github.com/pwdtrack/pwd_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Login authenticates an account and issues a token.
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data: " + err.Error()})
		return
	}

	utils.LogInfo(map[string]interface{}{
		"username": req.Username,
	}, "[Auth] login attempt")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	usersCollection := repository.Collection(repository.UsersCollection)

	var user models.User
	err := usersCollection.FindOne(ctx, bson.M{"username": req.Username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		utils.HandleError(c, err)
		return
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	if user.Status != models.UserStatusAPPROVED {
		c.JSON(http.StatusForbidden, gin.H{"error": "account is not approved yet"})
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"username": user.Username,
		"role":     user.Role,
	}, "[Auth] login succeeded")

	c.JSON(http.StatusOK, models.LoginResponse{
		Token: token,
		User:  user,
	})
}

// Register creates a pending account awaiting administrator approval.
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data: " + err.Error()})
		return
	}

	switch req.Role {
	case models.UserRoleJE, models.UserRoleAEE, models.UserRoleCE, models.UserRoleMD,
		models.UserRoleOPERATOR, models.UserRoleEXECUTOR, models.UserRoleVIEWER:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported role"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	usersCollection := repository.Collection(repository.UsersCollection)

	count, err := usersCollection.CountDocuments(ctx, bson.M{"username": req.Username})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
		return
	}

	now := time.Now()
	user := models.User{
		Username:   req.Username,
		Password:   utils.HashPassword(req.Password),
		Phone:      req.Phone,
		Role:       req.Role,
		Status:     models.UserStatusPENDING,
		Department: req.Department,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := usersCollection.InsertOne(ctx, user); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"username": req.Username,
		"role":     req.Role,
	}, "[Auth] account registered, pending approval")

	utils.SuccessResponse(c, nil, "registration submitted, awaiting approval", http.StatusCreated)
}

// ValidateToken confirms the bearer token and echoes the identity.
func ValidateToken(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	utils.SuccessResponse(c, currentUser, "")
}
