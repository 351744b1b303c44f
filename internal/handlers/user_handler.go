package handlers

import (
	"net/http"
	"time"

	"asapcut/config"
	"asapcut/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// UserListItem is one row of the member register.
type UserListItem struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"fullName"`
	Sex         string    `json:"sex"`
	Phone       string    `json:"phone"`
	Association string    `json:"association"`
	Level       string    `json:"level"`
	Position    string    `json:"position"`
	PhotoURL    string    `json:"photoUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListUsersHandler returns the member register. Restricted by route to the
// privileged positions.
func ListUsersHandler(c *gin.Context) {
	var profiles []models.UserProfile
	var totalRows int64
	config.DB.Model(&models.UserProfile{}).Count(&totalRows)

	if err := config.DB.
		Preload("User").Preload("Level").Preload("Association").Preload("Position").
		Order("id asc").
		Scopes(Paginate(c)).
		Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch users"})
		return
	}

	responseData := make([]UserListItem, 0, len(profiles))
	for _, profile := range profiles {
		item := UserListItem{
			ID:          profile.UserID,
			Username:    profile.User.Username,
			FullName:    profile.User.FullName,
			Sex:         profile.Sex,
			Phone:       profile.Phone,
			Association: profile.Association.Abbr,
			Position:    profile.Position.Name,
			PhotoURL:    profile.PhotoURL,
			CreatedAt:   profile.CreatedAt,
		}
		if profile.Level != nil {
			item.Level = profile.Level.Abbr
		}
		responseData = append(responseData, item)
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, responseData, totalRows))
}

// GetProfileHandler returns the current user's account and profile.
func GetProfileHandler(c *gin.Context) {
	userID := currentUserID(c)

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var profile models.UserProfile
	hasProfile := config.DB.
		Preload("Level").Preload("Association").Preload("Position").
		Where("user_id = ?", userID).
		First(&profile).Error == nil

	response := gin.H{
		"id":       user.ID,
		"username": user.Username,
		"fullName": user.FullName,
		"email":    user.Email,
	}
	if hasProfile {
		response["profile"] = profile
	}
	c.JSON(http.StatusOK, response)
}

// UpdateProfileHandler updates account details; a password change requires
// the old password.
func UpdateProfileHandler(c *gin.Context) {
	userID := currentUserID(c)

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if fullName := c.PostForm("fullName"); fullName != "" {
		user.FullName = fullName
	}
	if email := c.PostForm("email"); email != "" {
		user.Email = email
	}

	if password := c.PostForm("newPassword"); password != "" {
		oldPassword := c.PostForm("oldPassword")
		if oldPassword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "The old password is required to change the password."})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "The old password is incorrect."})
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash new password"})
			return
		}
		user.Password = string(hashed)
	}

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	// Profile photo is optional on this form.
	if photoURL, err := saveUploadedFile(c, "photo", "users"); err == nil {
		config.DB.Model(&models.UserProfile{}).
			Where("user_id = ?", userID).
			Update("photo_url", photoURL)
	}

	logUserActivity(userID, "Updated profile")
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
