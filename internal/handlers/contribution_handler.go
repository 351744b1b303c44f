package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"asapcut/config"
	"asapcut/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ContributionInput is the manual entry form.
type ContributionInput struct {
	AssociationID uint   `json:"associationId" binding:"required"`
	AmountPaid    int64  `json:"amountPaid"`
	PaymentDate   string `json:"paymentDate"` // YYYY-MM-DD, optional
	Year          string `json:"year" binding:"required"`
}

// YearGroup is one financial year's block on the contributions page.
type YearGroup struct {
	Year            string                `json:"year"`
	Contributions   []models.Contribution `json:"contributions"`
	TotalMembers    int                   `json:"totalMembers"`
	TotalPaid       int64                 `json:"totalPaid"`
	TotalAllocation int64                 `json:"totalAllocation"`
	TotalBalance    int64                 `json:"totalBalance"`
}

// groupContributionsByYear builds the per-year blocks with their totals.
// Years come out sorted so the listing is deterministic.
func groupContributionsByYear(contributions []models.Contribution) []YearGroup {
	byYear := make(map[string]*YearGroup)
	for _, contribution := range contributions {
		group, ok := byYear[contribution.Year]
		if !ok {
			group = &YearGroup{Year: contribution.Year}
			byYear[contribution.Year] = group
		}
		group.Contributions = append(group.Contributions, contribution)
		group.TotalMembers += contribution.Association.MemberNumber
		group.TotalPaid += contribution.AmountPaid
		group.TotalAllocation += contribution.Allocation
		group.TotalBalance += contribution.Balance
	}

	years := make([]string, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Strings(years)

	groups := make([]YearGroup, 0, len(years))
	for _, year := range years {
		groups = append(groups, *byYear[year])
	}
	return groups
}

// ListContributionsHandler returns all contributions grouped by year with
// per-year totals.
func ListContributionsHandler(c *gin.Context) {
	var contributions []models.Contribution
	if err := config.DB.Preload("Association").Order("year").Find(&contributions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contributions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": groupContributionsByYear(contributions)})
}

// addManualContribution validates and persists one manual entry. On
// rejection it returns the HTTP status and user-facing message; nothing is
// persisted.
func addManualContribution(db *gorm.DB, input ContributionInput) (*models.Contribution, int, string) {
	var association models.Association
	if err := db.First(&association, input.AssociationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, http.StatusNotFound, "Association not found"
		}
		return nil, http.StatusInternalServerError, "Failed to load association"
	}

	allocation, err := allocationFor(association.MemberNumber)
	if err != nil {
		return nil, http.StatusInternalServerError, err.Error()
	}

	if input.AmountPaid < config.MinimumPayment() {
		return nil, http.StatusBadRequest, fmt.Sprintf("Amount paid cannot be less than %d/=.", config.MinimumPayment())
	}
	if input.AmountPaid > allocation {
		return nil, http.StatusBadRequest, "Amount paid cannot exceed allocation."
	}

	var paymentDate *time.Time
	if input.PaymentDate != "" {
		t, err := time.Parse("2006-01-02", input.PaymentDate)
		if err != nil {
			return nil, http.StatusBadRequest, "Payment date must be in YYYY-MM-DD format"
		}
		paymentDate = &t
	}

	var count int64
	db.Model(&models.Contribution{}).
		Where("association_id = ? AND year = ?", association.ID, input.Year).
		Count(&count)
	if count > 0 {
		return nil, http.StatusConflict,
			fmt.Sprintf("A contribution for '%s' in %s already exists", association.Abbr, input.Year)
	}

	contribution := models.Contribution{
		AssociationID: association.ID,
		Year:          input.Year,
		Allocation:    allocation,
		AmountPaid:    input.AmountPaid,
		Balance:       allocation - input.AmountPaid,
		PaymentDate:   paymentDate,
	}
	if err := db.Create(&contribution).Error; err != nil {
		// The unique (association, year) index backstops concurrent inserts.
		return nil, http.StatusConflict,
			fmt.Sprintf("A contribution for '%s' in %s already exists", association.Abbr, input.Year)
	}
	return &contribution, 0, ""
}

// CreateContributionHandler handles the manual add-contribution form.
func CreateContributionHandler(c *gin.Context) {
	var input ContributionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contribution, status, message := addManualContribution(config.DB, input)
	if contribution == nil {
		c.JSON(status, gin.H{"error": message})
		return
	}

	logUserActivity(currentUserID(c),
		fmt.Sprintf("Added contribution for association %d, year %s", contribution.AssociationID, contribution.Year))
	config.InvalidateDashboardStats()

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Contribution added successfully.",
		"contribution": contribution,
	})
}
