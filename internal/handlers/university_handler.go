package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"asapcut/config"
	"asapcut/models"

	"github.com/gin-gonic/gin"
)

type UniversityInput struct {
	Name string `json:"name" binding:"required"`
	Abbr string `json:"abbr" binding:"required"`
}

// ListUniversitiesHandler returns all universities.
func ListUniversitiesHandler(c *gin.Context) {
	var universities []models.University
	if err := config.DB.Order("abbr").Find(&universities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch universities"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": universities})
}

// CreateUniversityHandler adds a university, surfacing duplicate name/abbr
// as user-facing messages.
func CreateUniversityHandler(c *gin.Context) {
	var input UniversityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required."})
		return
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Abbr = strings.TrimSpace(input.Abbr)

	var count int64
	config.DB.Model(&models.University{}).Where("name = ?", input.Name).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("The university name '%s' already exists.", input.Name)})
		return
	}
	config.DB.Model(&models.University{}).Where("abbr = ?", input.Abbr).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("The abbreviation '%s' is already in use.", input.Abbr)})
		return
	}

	university := models.University{Name: input.Name, Abbr: input.Abbr}
	if err := config.DB.Create(&university).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An error occurred: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "University added successfully.", "university": university})
}

// UpdateUniversityHandler updates name/abbr, excluding the record itself
// from the duplicate checks.
func UpdateUniversityHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid university ID"})
		return
	}

	var university models.University
	if err := config.DB.First(&university, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "University not found"})
		return
	}

	var input UniversityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required."})
		return
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Abbr = strings.TrimSpace(input.Abbr)

	var count int64
	config.DB.Model(&models.University{}).Where("name = ? AND id <> ?", input.Name, id).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("The university name '%s' already exists.", input.Name)})
		return
	}
	config.DB.Model(&models.University{}).Where("abbr = ? AND id <> ?", input.Abbr, id).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("The abbreviation '%s' is already in use.", input.Abbr)})
		return
	}

	university.Name = input.Name
	university.Abbr = input.Abbr
	if err := config.DB.Save(&university).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An error occurred: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "University updated successfully.", "university": university})
}

// DeleteUniversityHandler deletes a university. Associations and their
// contributions go with it via the FK cascade.
func DeleteUniversityHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid university ID"})
		return
	}

	var university models.University
	if err := config.DB.First(&university, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "University not found"})
		return
	}

	if err := config.DB.Unscoped().Delete(&university).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete university"})
		return
	}

	config.InvalidateDashboardStats()
	c.JSON(http.StatusOK, gin.H{"message": "University deleted successfully"})
}
