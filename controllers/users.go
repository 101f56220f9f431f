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
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetUsers lists accounts, optionally filtered by status. Administrators only.
func GetUsers(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if currentUser.Role != string(models.UserRoleADMIN) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	usersCollection := repository.Collection(repository.UsersCollection)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := usersCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, users, "")
}

// ApproveUser records an approval decision on a pending account.
func ApproveUser(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if currentUser.Role != string(models.UserRoleADMIN) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	var req models.UserApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data: " + err.Error()})
		return
	}

	objID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id format"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	newStatus := models.UserStatusREJECTED
	if req.Approved != nil && *req.Approved {
		newStatus = models.UserStatusAPPROVED
	}

	update := bson.M{
		"status":    newStatus,
		"updatedAt": time.Now(),
	}
	if newStatus == models.UserStatusREJECTED && req.Reason != "" {
		update["rejectionReason"] = req.Reason
	}

	usersCollection := repository.Collection(repository.UsersCollection)
	result, err := usersCollection.UpdateOne(ctx,
		bson.M{"_id": objID, "status": models.UserStatusPENDING},
		bson.M{"$set": update},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "pending account not found"})
		return
	}

	utils.LogInfo(map[string]interface{}{
		"userId":   req.ID,
		"status":   newStatus,
		"operator": currentUser.Username,
	}, "[Users] account decision recorded")

	utils.SuccessResponse(c, nil, "account decision recorded")
}
