package service

import (
	"context"
	"time"

	"github.com/pwdtrack/pwd_end/models"
	"github.com/pwdtrack/pwd_end/repository"
	"github.com/pwdtrack/pwd_end/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// ScheduleDailyTaskAt runs task every day at the given local hour and minute.
func ScheduleDailyTaskAt(hour, minute int, task func()) {
	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
			if !next.After(now) {
				next = next.Add(24 * time.Hour)
			}

			utils.LogInfo(map[string]interface{}{
				"nextRun": next.Format(time.RFC3339),
			}, "[Scheduler] next run scheduled")

			time.Sleep(time.Until(next))
			task()
		}
	}()
}

// ArchiveCompletedProjects moves projects that finished more than
// retentionDays ago into the archive collection.
func ArchiveCompletedProjects(retentionDays int) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	collection := repository.Collection(repository.ProjectsCollection)
	archiveCollection := repository.Collection(repository.ArchiveProjectsCollection)

	filter := bson.M{
		"status":      models.StatusCompleted,
		"completedAt": bson.M{"$lte": cutoff},
	}

	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		utils.LogError(err, map[string]interface{}{
			"cutoff": cutoff.Format(time.RFC3339),
		}, "[Scheduler] failed to query completed projects")
		return
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		utils.LogError(err, nil, "[Scheduler] failed to decode completed projects")
		return
	}

	if len(projects) == 0 {
		utils.LogInfo(map[string]interface{}{
			"cutoff": cutoff.Format(time.RFC3339),
		}, "[Scheduler] no projects due for archival")
		return
	}

	archivedAt := time.Now()
	moved := 0
	for _, project := range projects {
		archived := models.ArchiveProject{
			Project:    project,
			ArchivedAt: archivedAt,
		}

		if _, err := archiveCollection.InsertOne(ctx, archived); err != nil {
			utils.LogError(err, map[string]interface{}{
				"projectId": project.ID,
			}, "[Scheduler] failed to insert archived project")
			continue
		}

		if _, err := collection.DeleteOne(ctx, bson.M{"_id": project.ID}); err != nil {
			utils.LogError(err, map[string]interface{}{
				"projectId": project.ID,
			}, "[Scheduler] failed to remove project after archival")
			continue
		}
		moved++
	}

	utils.LogInfo(map[string]interface{}{
		"candidates": len(projects),
		"archived":   moved,
	}, "[Scheduler] completed project archival run finished")
}
