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

// ListAssociationsHandler returns all associations with their universities.
func ListAssociationsHandler(c *gin.Context) {
	var associations []models.Association
	if err := config.DB.Preload("University").Order("abbr").Find(&associations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch associations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": associations})
}

// associationFormFields pulls and validates the multipart form used by both
// create and update.
func associationFormFields(c *gin.Context) (name, abbr string, memberNumber int, universityID uint, errMsg string) {
	name = strings.TrimSpace(c.PostForm("name"))
	abbr = strings.TrimSpace(c.PostForm("abbr"))
	memberStr := strings.TrimSpace(c.PostForm("member_number"))
	universityStr := strings.TrimSpace(c.PostForm("university_id"))

	if name == "" || abbr == "" || memberStr == "" || universityStr == "" {
		return "", "", 0, 0, "All fields are required."
	}

	members, err := strconv.Atoi(memberStr)
	if err != nil || members < 0 {
		return "", "", 0, 0, "Member number must be a non-negative integer."
	}

	uniID, err := strconv.Atoi(universityStr)
	if err != nil {
		return "", "", 0, 0, "Selected university does not exist."
	}

	return name, abbr, members, uint(uniID), ""
}

// CreateAssociationHandler adds an association with an optional logo upload.
func CreateAssociationHandler(c *gin.Context) {
	name, abbr, memberNumber, universityID, errMsg := associationFormFields(c)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	var university models.University
	if err := config.DB.First(&university, universityID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selected university does not exist."})
		return
	}

	var count int64
	config.DB.Model(&models.Association{}).Where("abbr = ?", abbr).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("The abbreviation '%s' is already in use.", abbr)})
		return
	}

	association := models.Association{
		Name:         name,
		Abbr:         abbr,
		MemberNumber: memberNumber,
		UniversityID: university.ID,
	}
	if logoURL, err := saveUploadedFile(c, "logo", "association_logos"); err == nil {
		association.LogoURL = logoURL
	}

	if err := config.DB.Create(&association).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An error occurred: " + err.Error()})
		return
	}

	config.InvalidateDashboardStats()
	c.JSON(http.StatusCreated, gin.H{"message": "Association added successfully.", "association": association})
}

// UpdateAssociationHandler updates an association, keeping the old logo when
// no new file is sent.
func UpdateAssociationHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid association ID"})
		return
	}

	var association models.Association
	if err := config.DB.First(&association, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Association not found"})
		return
	}

	name, abbr, memberNumber, universityID, errMsg := associationFormFields(c)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
		return
	}

	var university models.University
	if err := config.DB.First(&university, universityID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selected university does not exist."})
		return
	}

	var count int64
	config.DB.Model(&models.Association{}).Where("abbr = ? AND id <> ?", abbr, id).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("The abbreviation '%s' is already in use.", abbr)})
		return
	}

	association.Name = name
	association.Abbr = abbr
	association.MemberNumber = memberNumber
	association.UniversityID = university.ID
	if logoURL, err := saveUploadedFile(c, "logo", "association_logos"); err == nil {
		association.LogoURL = logoURL
	}

	if err := config.DB.Save(&association).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An error occurred: " + err.Error()})
		return
	}

	config.InvalidateDashboardStats()
	c.JSON(http.StatusOK, gin.H{"message": "Association updated successfully.", "association": association})
}

// DeleteAssociationHandler hard-deletes an association; its contributions go
// with it via the FK cascade.
func DeleteAssociationHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid association ID"})
		return
	}

	var association models.Association
	if err := config.DB.First(&association, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Association not found"})
		return
	}

	if err := config.DB.Unscoped().Delete(&association).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete association"})
		return
	}

	config.InvalidateDashboardStats()
	c.JSON(http.StatusOK, gin.H{"message": "Association deleted successfully"})
}
