package handlers

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"asapcut/config"
	"asapcut/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// saveUploadedFile stores a multipart file under the upload root with a
// random name and returns its public URL path. Returns an error when the
// field is missing.
func saveUploadedFile(c *gin.Context, field, subdir string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("file field %q is required", field)
	}

	uploadDir := filepath.Join(config.UploadDir(), subdir)
	if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	ext := filepath.Ext(file.Filename)
	newFileName := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	dst := filepath.Join(uploadDir, newFileName)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("save uploaded file: %w", err)
	}

	return "/" + filepath.ToSlash(dst), nil
}

// logUserActivity appends to the user's activity trail. Failures are logged
// and swallowed, the trail never blocks the main write.
func logUserActivity(userID uint, activity string) {
	if config.DB == nil || userID == 0 {
		return
	}
	entry := models.UserLog{UserID: userID, Activity: activity}
	if err := config.DB.Create(&entry).Error; err != nil {
		slog.Warn("failed to record user activity", "error", err, "user_id", userID)
	}
}

// currentUserID pulls the authenticated user's ID set by the auth middleware.
func currentUserID(c *gin.Context) uint {
	v, ok := c.Get("user_id")
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}
