package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pwdtrack/pwd_end/models"
	"github.com/pwdtrack/pwd_end/repository"
	"github.com/pwdtrack/pwd_end/rules"
	"github.com/pwdtrack/pwd_end/utils"
)

// fileLimits bounds accepted supporting documents; tuned from config at startup.
var fileLimits = rules.DefaultFileLimits()

// InitFileLimits applies configured upload bounds.
func InitFileLimits(maxFiles int, maxFileSizeMB int64) {
	if maxFiles > 0 {
		fileLimits.MaxFiles = maxFiles
	}
	if maxFileSizeMB > 0 {
		fileLimits.MaxFileSize = maxFileSizeMB * 1024 * 1024
	}
}

// fileRefs converts attachments to the engine's file view.
func fileRefs(files []models.FileAttachment) []rules.FileRef {
	refs := make([]rules.FileRef, 0, len(files))
	for _, f := range files {
		refs = append(refs, rules.FileRef{Name: f.OriginalName, Size: f.FileSize, MimeType: f.FileType})
	}
	return refs
}

// UpdateProjectProgress validates and applies a physical/financial/combined
// progress update. The same rules run here as in the dashboard so a bypassed
// client cannot sneak past them.
func UpdateProjectProgress(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req models.ProgressUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data: " + err.Error()})
		return
	}

	switch req.Kind {
	case models.UpdateKindPhysical:
		if req.NewPhysicalValue == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "newPhysicalProgress is required for a physical update"})
			return
		}
		req.NewBillAmount = nil
	case models.UpdateKindFinancial:
		if req.NewBillAmount == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "newBillAmount is required for a financial update"})
			return
		}
		req.NewPhysicalValue = nil
	case models.UpdateKindCombined:
		if req.NewPhysicalValue == nil && req.NewBillAmount == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a combined update must touch at least one dimension"})
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	project, err := findProject(ctx, c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	actor := rules.Actor{ID: currentUser.ID, Role: models.UserRole(currentUser.Role)}
	subject := subjectFromProject(*project)

	if req.NewPhysicalValue != nil {
		if ok, reason := rules.CanUpdateDimension(actor, subject, rules.DimensionPhysical); !ok {
			utils.HandleError(c, utils.CreateForbiddenErrorWithReason(
				"progress update not permitted", string(reason)))
			return
		}
	}
	if req.NewBillAmount != nil {
		if ok, reason := rules.CanUpdateDimension(actor, subject, rules.DimensionFinancial); !ok {
			utils.HandleError(c, utils.CreateForbiddenErrorWithReason(
				"progress update not permitted", string(reason)))
			return
		}
	}

	// invalid files are dropped, not fatal; rejections are logged for diagnosis
	accepted, rejectedFiles := fileLimits.Filter(fileRefs(req.SupportingFiles))
	if len(rejectedFiles) > 0 {
		utils.LogInfo(map[string]interface{}{
			"projectId": project.ID.Hex(),
			"rejected":  rejectedFiles,
		}, "[Progress] supporting documents excluded by filter")
	}
	acceptedAttachments := make([]models.FileAttachment, 0, len(accepted))
	for _, f := range req.SupportingFiles {
		if fileLimits.Accepts(rules.FileRef{Name: f.OriginalName, Size: f.FileSize, MimeType: f.FileType}) &&
			len(acceptedAttachments) < fileLimits.MaxFiles {
			acceptedAttachments = append(acceptedAttachments, f)
		}
	}

	billNumber := ""
	billDescription := ""
	if req.BillDetails != nil {
		billNumber = req.BillDetails.BillNumber
		billDescription = req.BillDetails.BillDescription
	}

	physRule := rules.PhysicalRule()
	finRule := rules.FinancialRule(project.EstimatedValue)

	errs := rules.ErrorSet{}
	errs.Merge(physRule.ValidateUpdate(project.PhysicalProgress, req.NewPhysicalValue, accepted, billNumber))
	errs.Merge(finRule.ValidateUpdate(project.BillSubmittedAmount, req.NewBillAmount, accepted, billNumber))
	errs.Merge(rules.CheckRemarks(req.Remarks))
	errs.Merge(rules.CheckBillDescription(billDescription))

	realChange := physRule.IsRealChange(project.PhysicalProgress, req.NewPhysicalValue) ||
		finRule.IsRealChange(project.BillSubmittedAmount, req.NewBillAmount)
	if errs.Valid() && !realChange {
		errs.Add(rules.FieldSubmit, "no effective change to submit")
	}

	if !rules.Submittable(errs, realChange) {
		utils.LogInfo(map[string]interface{}{
			"projectId": project.ID.Hex(),
			"errors":    errs,
		}, "[Progress] update rejected by validation")
		utils.ValidationFailedResponse(c, errs)
		return
	}

	newPhysical := project.PhysicalProgress
	if req.NewPhysicalValue != nil {
		newPhysical = *req.NewPhysicalValue
	}
	newBillAmount := project.BillSubmittedAmount
	if req.NewBillAmount != nil {
		newBillAmount = *req.NewBillAmount
	}

	now := time.Now()
	update := bson.M{
		"physicalProgress":    newPhysical,
		"billSubmittedAmount": newBillAmount,
		"updaterId":           currentUser.ID,
		"updaterName":         currentUser.Username,
		"updatedAt":           now,
	}
	if len(acceptedAttachments) > 0 {
		for i := range acceptedAttachments {
			if acceptedAttachments[i].UploadTime.IsZero() {
				acceptedAttachments[i].UploadTime = now
			}
			if acceptedAttachments[i].UploadedBy == "" {
				acceptedAttachments[i].UploadedBy = currentUser.Username
			}
		}
	}

	// both dimensions at 100 promotes the project to Completed
	statusChange := &models.StatusChange{}
	if physRule.IsCompletion(newPhysical) && finRule.IsCompletion(newBillAmount) {
		update["status"] = models.StatusCompleted
		update["completedAt"] = now
		statusChange.Occurred = true
		statusChange.Message = "project reached 100% physical and financial progress and was marked Completed"
	}

	// guard on the previously seen values so overlapping updates cannot both apply
	filter := bson.M{
		"_id":                 project.ID,
		"status":              project.Status,
		"physicalProgress":    project.PhysicalProgress,
		"billSubmittedAmount": project.BillSubmittedAmount,
	}

	mutation := bson.M{"$set": update}
	if len(acceptedAttachments) > 0 {
		mutation["$push"] = bson.M{"attachments": bson.M{"$each": acceptedAttachments}}
	}

	projectsCollection := repository.Collection(repository.ProjectsCollection)
	result, err := projectsCollection.UpdateOne(ctx, filter, mutation)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateConflictError(
			"project changed since it was loaded, refresh and retry"))
		return
	}

	history := models.ProgressHistory{
		ProjectID:         project.ID.Hex(),
		ProjectName:       project.ProjectName,
		Kind:              req.Kind,
		FromPhysical:      project.PhysicalProgress,
		ToPhysical:        newPhysical,
		FromBillAmount:    project.BillSubmittedAmount,
		ToBillAmount:      newBillAmount,
		FinancialProgress: rules.FinancialPercent(newBillAmount, project.EstimatedValue),
		OperatorID:        currentUser.ID,
		OperatorName:      currentUser.Username,
		Remark:            req.Remarks,
		BillNumber:        billNumber,
		Attachments:       acceptedAttachments,
	}
	if _, err := AddProgressHistoryFn(ctx, history); err != nil {
		// the update itself is committed; a failed history record must not fail the call
		utils.LogError(err, map[string]interface{}{
			"projectId": project.ID.Hex(),
		}, "failed to record progress history")
	}

	updated, err := findProject(ctx, project.ID.Hex())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"projectId":    project.ID.Hex(),
		"kind":         req.Kind,
		"fromPhysical": project.PhysicalProgress,
		"toPhysical":   newPhysical,
		"toBillAmount": newBillAmount,
		"completed":    statusChange.Occurred,
	}, "[Progress] update applied")

	var resp models.ProgressUpdateResponse
	resp.Success = true
	resp.Data.Project = *updated
	if statusChange.Occurred {
		resp.Data.StatusChange = statusChange
	}
	c.JSON(http.StatusOK, resp)
}

// GetProjectProgressHistory returns the progress history of one project.
func GetProjectProgressHistory(c *gin.Context) {
	projectID := c.Param("projectId")
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	utils.LogInfo(map[string]interface{}{
		"projectId": projectID,
		"user":      currentUser.Username,
	}, "[Progress] fetching project progress history")

	if projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project id must not be empty"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := findProject(ctx, projectID); err != nil {
		utils.HandleError(c, err)
		return
	}

	progressCollection := repository.Collection(repository.ProgressHistoryCollection)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := progressCollection.Find(ctx, bson.M{"projectId": projectID}, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var progressHistory []models.ProgressHistory
	if err = cursor.All(ctx, &progressHistory); err != nil {
		utils.HandleError(c, err)
		return
	}

	if progressHistory == nil {
		progressHistory = []models.ProgressHistory{}
	}
	c.JSON(http.StatusOK, progressHistory)
}

// GetAllProgressHistory returns history records across projects, with
// optional date and kind filters.
func GetAllProgressHistory(c *gin.Context) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	kind := c.Query("kind")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}

	if startDate != "" || endDate != "" {
		dateFilter := bson.M{}
		if startDate != "" {
			startTime, err := time.Parse(time.RFC3339, startDate)
			if err == nil {
				dateFilter["$gte"] = startTime
			}
		}
		if endDate != "" {
			endTime, err := time.Parse(time.RFC3339, endDate)
			if err == nil {
				dateFilter["$lte"] = endTime
			}
		}
		if len(dateFilter) > 0 {
			filter["createdAt"] = dateFilter
		}
	}

	if kind != "" {
		filter["kind"] = kind
	}

	progressCollection := repository.Collection(repository.ProgressHistoryCollection)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := progressCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var progressHistory []models.ProgressHistory
	if err = cursor.All(ctx, &progressHistory); err != nil {
		utils.HandleError(c, err)
		return
	}

	if progressHistory == nil {
		progressHistory = []models.ProgressHistory{}
	}
	c.JSON(http.StatusOK, progressHistory)
}

// AddProgressHistoryFn inserts a progress history record. Callable from other
// services as well as the HTTP layer.
func AddProgressHistoryFn(ctx context.Context, history models.ProgressHistory) (models.ProgressHistory, error) {
	if history.ProjectID == "" || history.ProjectName == "" ||
		history.OperatorID == "" || history.OperatorName == "" {
		return models.ProgressHistory{}, &utils.AppError{
			Message:    "missing required history fields",
			StatusCode: http.StatusBadRequest,
		}
	}

	now := time.Now()
	if history.CreatedAt.IsZero() {
		history.CreatedAt = now
	}
	if history.UpdatedAt.IsZero() {
		history.UpdatedAt = now
	}

	progressCollection := repository.Collection(repository.ProgressHistoryCollection)
	result, err := progressCollection.InsertOne(ctx, history)
	if err != nil {
		utils.LogError(err, make(map[string]interface{}), "failed to insert progress history")
		return models.ProgressHistory{}, err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		history.ID = oid
	}

	return history, nil
}
