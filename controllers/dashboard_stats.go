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
)

// DashboardStats summarizes the project portfolio.
type DashboardStats struct {
	TotalProjects        int64            `json:"totalProjects"`
	ByStatus             map[string]int64 `json:"byStatus"`
	AvgPhysicalProgress  float64          `json:"avgPhysicalProgress"`
	AvgFinancialProgress float64          `json:"avgFinancialProgress"`
	PendingQueries       int64            `json:"pendingQueries"`
	ArchivedProjects     int64            `json:"archivedProjects"`
}

// GetDashboardStats computes portfolio-level counts and averages.
func GetDashboardStats(c *gin.Context) {
	_, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	projectsCollection := repository.Collection(repository.ProjectsCollection)

	total, err := projectsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	// counts per lifecycle status
	byStatus := make(map[string]int64)
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}
	cursor, err := projectsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	var statusCounts []struct {
		Status models.ProjectStatus `bson:"_id"`
		Count  int64                `bson:"count"`
	}
	if err = cursor.All(ctx, &statusCounts); err != nil {
		utils.HandleError(c, err)
		return
	}
	for _, sc := range statusCounts {
		byStatus[string(sc.Status)] = sc.Count
	}

	// progress averages over ongoing and completed projects
	avgPipeline := []bson.M{
		{"$match": bson.M{"status": bson.M{"$in": []models.ProjectStatus{
			models.StatusOngoing, models.StatusCompleted,
		}}}},
		{"$group": bson.M{
			"_id":         nil,
			"avgPhysical": bson.M{"$avg": "$physicalProgress"},
			"avgBill":     bson.M{"$avg": "$billSubmittedAmount"},
			"avgCeiling":  bson.M{"$avg": "$estimatedValue"},
		}},
	}
	avgCursor, err := projectsCollection.Aggregate(ctx, avgPipeline)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer avgCursor.Close(ctx)

	var averages []struct {
		AvgPhysical float64 `bson:"avgPhysical"`
		AvgBill     float64 `bson:"avgBill"`
		AvgCeiling  float64 `bson:"avgCeiling"`
	}
	if err = avgCursor.All(ctx, &averages); err != nil {
		utils.HandleError(c, err)
		return
	}

	stats := DashboardStats{
		TotalProjects: total,
		ByStatus:      byStatus,
	}
	if len(averages) > 0 {
		stats.AvgPhysicalProgress = rules.Round2(averages[0].AvgPhysical)
		stats.AvgFinancialProgress = rules.FinancialPercent(averages[0].AvgBill, averages[0].AvgCeiling)
	}

	queriesCollection := repository.Collection(repository.ProjectQueriesCollection)
	pendingQueries, err := queriesCollection.CountDocuments(ctx, bson.M{})
	if err == nil {
		stats.PendingQueries = pendingQueries
	}

	archiveCollection := repository.Collection(repository.ArchiveProjectsCollection)
	archivedCount, err := archiveCollection.CountDocuments(ctx, bson.M{})
	if err == nil {
		stats.ArchivedProjects = archivedCount
	}

	utils.SuccessResponse(c, stats, "")
}
