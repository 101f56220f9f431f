package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pwdtrack/pwd_end/models"
	"github.com/pwdtrack/pwd_end/repository"
	"github.com/pwdtrack/pwd_end/rules"
	"github.com/pwdtrack/pwd_end/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FileUploadRequest carries a document as base64 plus its metadata.
type FileUploadRequest struct {
	FileData string `json:"fileData" binding:"required"`
	FileName string `json:"fileName" binding:"required"`
	FileSize int64  `json:"fileSize" binding:"required"`
	FileType string `json:"fileType" binding:"required"`
}

// FileUploadResponse returns the stored file reference.
type FileUploadResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	File    models.FileInfo `json:"file"`
}

// UploadFile stores a supporting document after the acceptance checks.
func UploadFile(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req FileUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data"})
		return
	}

	ref := rules.FileRef{Name: req.FileName, Size: req.FileSize, MimeType: req.FileType}
	if !fileLimits.Accepts(ref) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file rejected: max %dMB, allowed types PDF/DOCX/XLSX/JPEG/PNG/GIF",
				fileLimits.MaxFileSize/1024/1024),
		})
		return
	}

	fileID := fmt.Sprintf("file_%d_%s", time.Now().Unix(), uuid.NewString()[:8])
	storagePath := fmt.Sprintf("uploads/%d_%s", time.Now().Unix(), req.FileName)

	var uploaderID primitive.ObjectID
	if v, err := primitive.ObjectIDFromHex(currentUser.ID); err == nil {
		uploaderID = v
	}

	now := time.Now()
	fileRecord := models.FileInfo{
		ID:           fileID,
		FileName:     storagePath,
		OriginalName: req.FileName,
		FileSize:     req.FileSize,
		FileType:     req.FileType,
		UploadTime:   now,
		UploadedBy:   currentUser.Username,
		URL:          req.FileData, // base64 for now; a blob store URL later
		UploaderID:   uploaderID,
		CreatedAt:    now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filesCollection := repository.Collection(repository.ProjectFilesCollection)
	result, err := filesCollection.InsertOne(ctx, fileRecord)
	if err != nil {
		utils.LogError(err, map[string]interface{}{"file": req.FileName}, "file upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	if result.InsertedID == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	utils.LogInfo(map[string]interface{}{
		"file":   req.FileName,
		"fileId": fileID,
		"user":   currentUser.Username,
	}, "[Files] upload succeeded")

	// reference only, without the payload
	fileReference := fileRecord
	fileReference.URL = fileID

	c.JSON(http.StatusOK, FileUploadResponse{
		Success: true,
		Message: "file uploaded",
		File:    fileReference,
	})
}

// FileDownloadResponse wraps a stored file.
type FileDownloadResponse struct {
	Success bool            `json:"success"`
	File    models.FileInfo `json:"file"`
}

// DownloadFile returns a stored supporting document.
func DownloadFile(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	fileID := c.Param("fileId")
	utils.LogInfo(map[string]interface{}{
		"fileId": fileID,
		"user":   currentUser.Username,
	}, "[Files] download requested")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filesCollection := repository.Collection(repository.ProjectFilesCollection)
	var fileRecord models.FileInfo
	err = filesCollection.FindOne(ctx, bson.M{"id": fileID}).Decode(&fileRecord)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query file"})
		}
		return
	}

	c.JSON(http.StatusOK, FileDownloadResponse{
		Success: true,
		File:    fileRecord,
	})
}

// FileDeleteResponse reports a deletion.
type FileDeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DeleteFile removes a stored supporting document.
func DeleteFile(c *gin.Context) {
	currentUser, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	fileID := c.Param("fileId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filesCollection := repository.Collection(repository.ProjectFilesCollection)
	result, err := filesCollection.DeleteOne(ctx, bson.M{"id": fileID})
	if err != nil {
		utils.LogError(err, map[string]interface{}{"fileId": fileID}, "file deletion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete file"})
		return
	}

	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	utils.LogInfo(map[string]interface{}{
		"fileId": fileID,
		"user":   currentUser.Username,
	}, "[Files] deletion succeeded")

	c.JSON(http.StatusOK, FileDeleteResponse{
		Success: true,
		Message: "file deleted",
	})
}
