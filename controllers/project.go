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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// subjectFromProject builds the read-only snapshot the rules engine evaluates.
func subjectFromProject(p models.Project) rules.Subject {
	return rules.Subject{
		Status:            p.Status,
		CreatorID:         p.CreatorID,
		IsEditable:        p.IsEditable,
		PendingLevel:      p.PendingLevel,
		PhysicalProgress:  p.PhysicalProgress,
		FinancialProgress: rules.FinancialPercent(p.BillSubmittedAmount, p.EstimatedValue),
	}
}

// findProject loads a project by hex id.
func findProject(ctx context.Context, id string) (*models.Project, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.CreateBadRequestError("invalid project id format")
	}

	var project models.Project
	err = repository.Collection(repository.ProjectsCollection).
		FindOne(ctx, bson.M{"_id": objID}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.CreateNotFoundError("project")
		}
		return nil, err
	}
	return &project, nil
}

// GetAllProjects lists projects, optionally filtered by status or creator.
func GetAllProjects(c *gin.Context) {
	_, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if creatorID := c.Query("creatorId"); creatorID != "" {
		filter["creatorId"] = creatorID
	}

	projectsCollection := repository.Collection(repository.ProjectsCollection)
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := projectsCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err = cursor.All(ctx, &projects); err != nil {
		utils.HandleError(c, err)
		return
	}

	if projects == nil {
		projects = []models.Project{}
	}

	c.JSON(http.StatusOK, models.ProjectListResponse{Success: true, Projects: projects})
}

// GetArchivedProjects lists archived (completed and aged-out) projects.
func GetArchivedProjects(c *gin.Context) {
	_, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	archiveCollection := repository.Collection(repository.ArchiveProjectsCollection)
	opts := options.Find().SetSort(bson.D{{Key: "archivedAt", Value: -1}})
	cursor, err := archiveCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var archived []models.ArchiveProject
	if err = cursor.All(ctx, &archived); err != nil {
		utils.HandleError(c, err)
		return
	}

	if archived == nil {
		archived = []models.ArchiveProject{}
	}

	utils.SuccessResponse(c, archived, "")
}

// GetProjectDetail returns one project with its attachments.
func GetProjectDetail(c *gin.Context) {
	_, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	project, err := findProject(ctx, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProjectDetailResponse{Success: true, Project: *project})
}

// CreateProject creates a new draft. Only engineers may create projects.
func CreateProject(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if currentUser.Role != string(models.UserRoleJE) && currentUser.Role != string(models.UserRoleADMIN) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	var req models.ProjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data: " + err.Error()})
		return
	}

	now := time.Now()
	project := models.Project{
		ProjectName:     req.ProjectName,
		Department:      req.Department,
		District:        req.District,
		WorkOrderNumber: req.WorkOrderNumber,
		EstimatedValue:  req.EstimatedValue,
		Status:          models.StatusDraft,
		IsEditable:      true,
		CreatorID:       currentUser.ID,
		CreatorName:     currentUser.Username,
		Remarks:         req.Remarks,
		StartDate:       now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	projectsCollection := repository.Collection(repository.ProjectsCollection)
	result, err := projectsCollection.InsertOne(ctx, project)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		project.ID = oid
	}

	utils.LogInfo(map[string]interface{}{
		"projectId":   project.ID.Hex(),
		"projectName": project.ProjectName,
		"creator":     currentUser.Username,
	}, "[Projects] draft created")

	c.JSON(http.StatusCreated, models.ProjectDetailResponse{Success: true, Project: project})
}

// UpdateProject edits a draft or rejected project. Creator only.
func UpdateProject(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req models.ProjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	project, err := findProject(ctx, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if project.CreatorID != currentUser.ID {
		utils.HandleError(c, utils.CreateForbiddenErrorWithReason(
			"only the submitting engineer may edit this project", string(rules.DenyNotOwner)))
		return
	}
	if !project.IsEditable {
		utils.HandleError(c, utils.CreateForbiddenErrorWithReason(
			"project is not editable in its current status", string(rules.DenyWrongStatus)))
		return
	}

	update := bson.M{
		"projectName":     req.ProjectName,
		"department":      req.Department,
		"district":        req.District,
		"workOrderNumber": req.WorkOrderNumber,
		"estimatedValue":  req.EstimatedValue,
		"remarks":         req.Remarks,
		"updaterId":       currentUser.ID,
		"updaterName":     currentUser.Username,
		"updatedAt":       time.Now(),
	}

	projectsCollection := repository.Collection(repository.ProjectsCollection)
	_, err = projectsCollection.UpdateOne(ctx, bson.M{"_id": project.ID}, bson.M{"$set": update})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, nil, "project updated")
}

// SubmitProject moves a draft into the approval chain, or a rejected project
// back into it as a resubmission. Creator only.
func SubmitProject(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	project, err := findProject(ctx, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if project.CreatorID != currentUser.ID {
		utils.HandleError(c, utils.CreateForbiddenErrorWithReason(
			"only the submitting engineer may submit this project", string(rules.DenyNotOwner)))
		return
	}

	var newStatus models.ProjectStatus
	switch project.Status {
	case models.StatusDraft:
		newStatus = models.StatusSubmitted
	case models.StatusRejectedByAEE, models.StatusRejectedByCE, models.StatusRejectedByMD:
		newStatus = models.StatusResubmitted
	default:
		utils.HandleError(c, utils.CreateForbiddenErrorWithReason(
			"project cannot be submitted in its current status", string(rules.DenyWrongStatus)))
		return
	}

	update := bson.M{
		"status":       newStatus,
		"pendingLevel": rules.ApprovalChain[0],
		"isEditable":   false,
		"updatedAt":    time.Now(),
	}

	projectsCollection := repository.Collection(repository.ProjectsCollection)
	_, err = projectsCollection.UpdateOne(ctx, bson.M{"_id": project.ID}, bson.M{"$set": update})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"projectId": project.ID.Hex(),
		"from":      project.Status,
		"to":        newStatus,
	}, "[Projects] submitted for approval")

	utils.SuccessResponse(c, gin.H{"status": newStatus}, "project submitted for approval")
}

// ApproveProject records an approval at the pending chain level. The final
// level's approval makes the project Ongoing.
func ApproveProject(c *gin.Context) {
	decideProject(c, rules.ActionApprove)
}

// RejectProject records a rejection at the pending chain level and reopens
// the project for the creator.
func RejectProject(c *gin.Context) {
	decideProject(c, rules.ActionReject)
}

// decideProject is the shared approve/reject path.
func decideProject(c *gin.Context, action rules.Action) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req models.ProjectDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	project, err := findProject(ctx, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	// stale view: the caller decided against an out-of-date status
	if rules.HasStatusChanged(req.ExpectedStatus, project.Status) {
		utils.HandleError(c, utils.CreateConflictError(
			"project status has changed, refresh before deciding"))
		return
	}

	actor := rules.Actor{ID: currentUser.ID, Role: models.UserRole(currentUser.Role)}
	ok, reason := rules.CanMutate(actor, subjectFromProject(*project), action)
	if !ok {
		utils.HandleError(c, utils.CreateForbiddenErrorWithReason(
			"action not permitted for this project", string(reason)))
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	var message string

	if action == rules.ActionApprove {
		if next, more := rules.NextApprovalLevel(project.PendingLevel); more {
			update["pendingLevel"] = next
			message = "approved, forwarded to " + string(next)
		} else {
			update["status"] = models.StatusOngoing
			update["pendingLevel"] = ""
			message = "approved, project is now ongoing"
		}
	} else {
		update["status"] = rules.RejectedStatusFor(project.PendingLevel)
		update["pendingLevel"] = ""
		update["isEditable"] = true
		update["rejectionReason"] = req.Reason
		message = "project rejected"
	}

	// the status filter keeps a racing second decision from applying twice
	projectsCollection := repository.Collection(repository.ProjectsCollection)
	result, err := projectsCollection.UpdateOne(ctx,
		bson.M{"_id": project.ID, "status": project.Status, "pendingLevel": project.PendingLevel},
		bson.M{"$set": update},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateConflictError(
			"project status has changed, refresh before deciding"))
		return
	}

	utils.LogInfo(map[string]interface{}{
		"projectId": project.ID.Hex(),
		"action":    action,
		"level":     project.PendingLevel,
		"operator":  currentUser.Username,
	}, "[Projects] decision recorded")

	utils.SuccessResponse(c, nil, message)
}

// DeleteProject removes a project. Administrators only.
func DeleteProject(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if currentUser.Role != string(models.UserRoleADMIN) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id format"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	projectsCollection := repository.Collection(repository.ProjectsCollection)
	result, err := projectsCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	utils.SuccessResponse(c, nil, "project deleted")
}
