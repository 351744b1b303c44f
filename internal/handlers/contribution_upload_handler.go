package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"asapcut/config"
	"asapcut/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Import file contract: first row is the header, required columns matched by
// exact trimmed name. The payment date column is optional under either name.
const (
	colAssociation = "Association"
	colMembers     = "Members"
	colAmountPaid  = "Amount Paid"
	colDatePaid    = "Date Paid"
	colPaymentDate = "Payment Date"
)

var requiredColumns = []string{colAssociation, colMembers, colAmountPaid}

// maxSurfacedErrors caps the row errors returned to the client. All errors
// are still counted.
const maxSurfacedErrors = 5

type uploadSummary struct {
	Created int
	Updated int
	Errors  []string
}

// Messages returns the surfaced subset of row errors.
func (s uploadSummary) Messages() []string {
	if len(s.Errors) <= maxSurfacedErrors {
		return s.Errors
	}
	out := make([]string, 0, maxSurfacedErrors+1)
	out = append(out, s.Errors[:maxSurfacedErrors]...)
	out = append(out, fmt.Sprintf("... and %d more errors", len(s.Errors)-maxSurfacedErrors))
	return out
}

// reconcileContributionRows matches spreadsheet rows to associations and
// upserts one contribution per (association, year).
//
// A missing required column aborts the whole batch before any row is
// processed. After that, rows fail independently: a bad row is skipped with
// a collected error and never aborts the batch. Re-importing the same file
// REPLACES amount_paid (last-write-wins) rather than accumulating it.
func reconcileContributionRows(db *gorm.DB, rows [][]string, year string) (uploadSummary, error) {
	var summary uploadSummary

	if len(rows) == 0 {
		return summary, errors.New("the file contains no rows")
	}

	columns := make(map[string]int)
	for i, name := range rows[0] {
		columns[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return summary, fmt.Errorf("missing columns in file: %s", strings.Join(missing, ", "))
	}

	dateCol, hasDateCol := columns[colDatePaid]
	if !hasDateCol {
		dateCol, hasDateCol = columns[colPaymentDate]
	}

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		cell := func(idx int) string {
			if idx < 0 || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		abbr := cell(columns[colAssociation])
		membersStr := cell(columns[colMembers])
		amountStr := cell(columns[colAmountPaid])

		if abbr == "" && membersStr == "" && amountStr == "" {
			continue // blank row
		}

		members, err := parseMemberCount(membersStr)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		amount, err := parseAmountCell(amountStr)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		// Absent, blank or unparseable dates become the "no date recorded"
		// sentinel instead of failing the row.
		var paymentDate *time.Time
		if hasDateCol {
			paymentDate = parsePaymentDate(cell(dateCol))
		}

		var association models.Association
		if err := db.Where("abbr = ?", abbr).First(&association).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				summary.Errors = append(summary.Errors, fmt.Sprintf("Association '%s' not found", abbr))
			} else {
				summary.Errors = append(summary.Errors, fmt.Sprintf("Row %d: lookup failed for '%s'", rowNum, abbr))
				slog.Error("association lookup failed", "error", err, "abbr", abbr)
			}
			continue
		}

		allocation, err := allocationFor(members)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		if amount > allocation {
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("Row %d: amount paid %d exceeds allocation %d for '%s'", rowNum, amount, allocation, abbr))
			continue
		}

		created, err := upsertContribution(db, &association, members, allocation, amount, paymentDate, year)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		if created {
			summary.Created++
		} else {
			summary.Updated++
		}
	}

	return summary, nil
}

// upsertContribution writes one row's effects in a single transaction: the
// member-count drift on the association and the create-or-replace of the
// (association, year) contribution.
func upsertContribution(db *gorm.DB, association *models.Association, members int, allocation, amount int64, paymentDate *time.Time, year string) (created bool, err error) {
	err = db.Transaction(func(tx *gorm.DB) error {
		if association.MemberNumber != members {
			if err := tx.Model(association).Update("member_number", members).Error; err != nil {
				return fmt.Errorf("update member count: %w", err)
			}
		}

		var existing models.Contribution
		findErr := tx.Where("association_id = ? AND year = ?", association.ID, year).First(&existing).Error
		switch {
		case findErr == nil:
			// The map form also writes a nil payment date.
			updates := map[string]interface{}{
				"amount_paid":  amount,
				"allocation":   allocation,
				"balance":      allocation - amount,
				"payment_date": paymentDate,
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return fmt.Errorf("update contribution: %w", err)
			}
			created = false
			return nil
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			contribution := models.Contribution{
				AssociationID: association.ID,
				Year:          year,
				Allocation:    allocation,
				AmountPaid:    amount,
				Balance:       allocation - amount,
				PaymentDate:   paymentDate,
			}
			if err := tx.Create(&contribution).Error; err != nil {
				return fmt.Errorf("create contribution: %w", err)
			}
			created = true
			return nil
		default:
			return fmt.Errorf("lookup contribution: %w", findErr)
		}
	})
	return created, err
}

func parseMemberCount(s string) (int, error) {
	members, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, fmt.Errorf("invalid member count %q", s)
	}
	if members < 0 {
		return 0, fmt.Errorf("member count cannot be negative")
	}
	return members, nil
}

// parseAmountCell accepts spreadsheet money cells such as "1200", "1,200"
// and "1200.00". Amounts are whole shillings; fractional values and
// negatives are rejected.
func parseAmountCell(s string) (int64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0, errors.New("amount paid is empty")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return 0, errors.New("amount paid cannot be negative")
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("amount %q is not a whole number of shillings", s)
	}
	return d.IntPart(), nil
}

var paymentDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"01-02-06", // excelize's default short-date rendering
	"02.01.2006",
}

// parsePaymentDate returns nil ("no date recorded") for blank or
// unparseable cells.
func parsePaymentDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range paymentDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// UploadContributionsHandler ingests a contribution spreadsheet for a target
// year. The audit record is written whenever the workbook was readable and
// structurally valid, even if every row failed.
func UploadContributionsHandler(c *gin.Context) {
	year := strings.TrimSpace(c.PostForm("year"))
	if year == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Year is required"})
		return
	}

	file, err := c.FormFile("excel_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer src.Close()

	workbook, err := excelize.OpenReader(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error processing Excel file: " + err.Error()})
		return
	}
	defer workbook.Close()

	rows, err := workbook.GetRows(workbook.GetSheetName(0))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error processing Excel file: " + err.Error()})
		return
	}

	summary, err := reconcileContributionRows(config.DB, rows, year)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	fileURL, saveErr := saveUploadedFile(c, "excel_file", "contribution_uploads")
	if saveErr != nil {
		slog.Warn("failed to store contribution file", "error", saveErr)
	}
	upload := models.ContributionUpload{
		FileURL:      fileURL,
		Year:         year,
		UploadedByID: userID,
	}
	if err := config.DB.Create(&upload).Error; err != nil {
		slog.Error("failed to record contribution upload", "error", err)
	}

	logUserActivity(userID, fmt.Sprintf("Uploaded contribution file for %s (%d added, %d updated, %d errors)",
		year, summary.Created, summary.Updated, len(summary.Errors)))
	config.InvalidateDashboardStats()

	c.JSON(http.StatusOK, gin.H{
		"created":    summary.Created,
		"updated":    summary.Updated,
		"errorCount": len(summary.Errors),
		"errors":     summary.Messages(),
	})
}

// ListContributionUploadsHandler returns the import audit trail, newest
// first.
func ListContributionUploadsHandler(c *gin.Context) {
	var uploads []models.ContributionUpload
	if err := config.DB.Preload("UploadedBy").Order("created_at desc").Find(&uploads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch uploads"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": uploads})
}
