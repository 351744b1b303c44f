package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"asapcut/config"
	"asapcut/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// markReportViewed records that a user has seen a report. Idempotent: a
// second call for the same (user, report) pair changes nothing.
func markReportViewed(db *gorm.DB, userID, reportID uint) error {
	var report models.Report
	if err := db.First(&report, reportID).Error; err != nil {
		return err
	}
	return db.Where(models.ReportView{UserID: userID, ReportID: reportID}).
		Attrs(models.ReportView{ViewedAt: time.Now()}).
		FirstOrCreate(&models.ReportView{}).Error
}

// unreadReportIDs returns the reports the user has not viewed yet: all
// reports minus the user's viewed set.
func unreadReportIDs(db *gorm.DB, userID uint) ([]uint, error) {
	var viewedIDs []uint
	if err := db.Model(&models.ReportView{}).
		Where("user_id = ?", userID).
		Pluck("report_id", &viewedIDs).Error; err != nil {
		return nil, err
	}

	query := db.Model(&models.Report{}).Order("id")
	if len(viewedIDs) > 0 {
		query = query.Where("id NOT IN ?", viewedIDs)
	}

	var unreadIDs []uint
	if err := query.Pluck("id", &unreadIDs).Error; err != nil {
		return nil, err
	}
	return unreadIDs, nil
}

// ListReportsHandler returns all reports, newest first, with the caller's
// unread set.
func ListReportsHandler(c *gin.Context) {
	var reports []models.Report
	if err := config.DB.Preload("User").Order("created_at desc").Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	unreadIDs, err := unreadReportIDs(config.DB, currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute unread reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      reports,
		"unreadIds": unreadIDs,
	})
}

// CreateReportHandler uploads a new report file. Restricted by route to the
// privileged positions.
func CreateReportHandler(c *gin.Context) {
	reportAbout := strings.TrimSpace(c.PostForm("report_about"))
	if reportAbout == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Report description is required"})
		return
	}

	fileURL, err := saveUploadedFile(c, "report_file", "reports")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	report := models.Report{
		UserID:      userID,
		ReportAbout: reportAbout,
		FileURL:     fileURL,
	}
	if err := config.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save report"})
		return
	}

	logUserActivity(userID, fmt.Sprintf("Uploaded report: %s", reportAbout))
	c.JSON(http.StatusCreated, gin.H{"message": "Report uploaded successfully!", "report": report})
}

// MarkReportViewedHandler acknowledges a report for the current user.
func MarkReportViewedHandler(c *gin.Context) {
	reportID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return
	}

	if err := markReportViewed(config.DB, currentUserID(c), uint(reportID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark report as viewed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report marked as viewed"})
}

// ReportViewersHandler returns who has viewed a report.
func ReportViewersHandler(c *gin.Context) {
	reportID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return
	}

	var report models.Report
	if err := config.DB.First(&report, reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	var views []models.ReportView
	if err := config.DB.Preload("User").
		Where("report_id = ?", reportID).
		Order("viewed_at").
		Find(&views).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch report views"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": views})
}

// DownloadReportHandler serves the report file as an attachment and records
// the acknowledgment.
func DownloadReportHandler(c *gin.Context) {
	reportID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report ID"})
		return
	}

	var report models.Report
	if err := config.DB.First(&report, reportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	if err := markReportViewed(config.DB, currentUserID(c), report.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark report as viewed"})
		return
	}

	path := strings.TrimPrefix(report.FileURL, "/")
	c.FileAttachment(path, filepath.Base(path))
}
