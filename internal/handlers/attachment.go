package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taskup-dev/taskup/db"
	"github.com/taskup-dev/taskup/internal/models"
	"github.com/taskup-dev/taskup/internal/utils"
)

type CreateAttachmentRequest struct {
	TaskID     *uint  `json:"task_id"`
	EntityType string `json:"entity_type" binding:"required,oneof=Project Task User"`
	FileName   string `json:"file_name" binding:"required"`
}

// CreateAttachment records attachment metadata only; the file bytes live in
// external storage keyed by StorageKey.
func CreateAttachment(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireProjectAccess(ctx, userID, projectID); !ok {
		return
	}

	var body CreateAttachmentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	attachment := models.Attachment{
		ProjectID:  projectID,
		TaskID:     body.TaskID,
		UploadedBy: userID,
		EntityType: body.EntityType,
		FileName:   body.FileName,
		StorageKey: uuid.NewString(),
	}

	if err := db.DB.Create(&attachment).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create attachment"})
		return
	}

	ctx.JSON(http.StatusCreated, attachment)
}

func ListAttachments(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireProjectAccess(ctx, userID, projectID); !ok {
		return
	}

	var attachments []models.Attachment

	if err := db.DB.Where("project_id = ?", projectID).Find(&attachments).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attachments"})
		return
	}

	ctx.JSON(http.StatusOK, attachments)
}
