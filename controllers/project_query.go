package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/pwdtrack/pwd_end/models"
	"github.com/pwdtrack/pwd_end/repository"
	"github.com/pwdtrack/pwd_end/rules"
	"github.com/pwdtrack/pwd_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RaiseQuery records a clarification request against a project. Open to every
// authenticated role; raising a query never changes project state.
func RaiseQuery(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req models.RaiseQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data: " + err.Error()})
		return
	}

	actor := rules.Actor{ID: currentUser.ID, Role: models.UserRole(currentUser.Role)}
	if ok, reason := rules.CanMutate(actor, rules.Subject{}, rules.ActionRaiseQuery); !ok {
		utils.HandleError(c, utils.CreateForbiddenErrorWithReason(
			"raising queries is not permitted for this role", string(reason)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	project, err := findProject(ctx, req.ProjectID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	now := time.Now()
	query := models.ProjectQuery{
		ProjectID:              project.ID.Hex(),
		ProjectName:            project.ProjectName,
		QueryTitle:             req.QueryTitle,
		QueryDescription:       req.QueryDescription,
		QueryCategory:          req.QueryCategory,
		Priority:               req.Priority,
		ExpectedResolutionDate: req.ExpectedResolutionDate,
		AssignedTo:             req.AssignedTo,
		RaisedByID:             currentUser.ID,
		RaisedByName:           currentUser.Username,
		RaisedByRole:           models.UserRole(currentUser.Role),
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	queriesCollection := repository.Collection(repository.ProjectQueriesCollection)
	result, err := queriesCollection.InsertOne(ctx, query)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		query.ID = oid
	}

	utils.LogInfo(map[string]interface{}{
		"projectId": query.ProjectID,
		"title":     query.QueryTitle,
		"raisedBy":  currentUser.Username,
	}, "[Queries] query raised")

	c.JSON(http.StatusCreated, gin.H{"success": true, "query": query})
}

// GetProjectQueries lists the queries raised against one project.
func GetProjectQueries(c *gin.Context) {
	_, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	projectID := c.Param("projectId")
	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project id must not be empty"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	queriesCollection := repository.Collection(repository.ProjectQueriesCollection)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := queriesCollection.Find(ctx, bson.M{"projectId": projectID}, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var queries []models.ProjectQuery
	if err = cursor.All(ctx, &queries); err != nil {
		utils.HandleError(c, err)
		return
	}

	if queries == nil {
		queries = []models.ProjectQuery{}
	}
	c.JSON(http.StatusOK, queries)
}
