package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"asapcut/config"
	"asapcut/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const noDateRecorded = "no date recorded"

var contributionExportHeaders = []string{
	"Association", "Members", "Amount Paid", "Allocation", "Payment Date", "Balance",
}

func loadContributionsForYear(year string) ([]models.Contribution, error) {
	var contributions []models.Contribution
	err := config.DB.Preload("Association").
		Joins("JOIN associations ON associations.id = contributions.association_id").
		Where("contributions.year = ?", year).
		Order("associations.abbr").
		Find(&contributions).Error
	return contributions, err
}

func formatPaymentDate(contribution models.Contribution) string {
	if contribution.PaymentDate == nil {
		return noDateRecorded
	}
	return contribution.PaymentDate.Format("2006-01-02")
}

// writeContributionSheet fills one sheet with the standard export layout and
// auto-sizes every column to its content.
func writeContributionSheet(f *excelize.File, sheetName string, contributions []models.Contribution) error {
	widths := make([]int, len(contributionExportHeaders))

	setCell := func(col, row int, value interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return err
		}
		if l := len(fmt.Sprint(value)); l > widths[col] {
			widths[col] = l
		}
		return nil
	}

	for i, header := range contributionExportHeaders {
		if err := setCell(i, 1, header); err != nil {
			return err
		}
	}

	for i, contribution := range contributions {
		row := i + 2
		values := []interface{}{
			contribution.Association.Abbr,
			contribution.Association.MemberNumber,
			contribution.AmountPaid,
			contribution.Allocation,
			formatPaymentDate(contribution),
			contribution.Balance,
		}
		for col, value := range values {
			if err := setCell(col, row, value); err != nil {
				return err
			}
		}
	}

	for i, width := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, name, name, float64(width+2)); err != nil {
			return err
		}
	}
	return nil
}

func serveWorkbook(c *gin.Context, f *excelize.File, fileName string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}

// ExportContributionsExcelHandler exports one year's contributions as xlsx.
func ExportContributionsExcelHandler(c *gin.Context) {
	year := c.Param("year")

	contributions, err := loadContributionsForYear(year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contributions"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheetName := fmt.Sprintf("Contributions %s", year)
	index, err := f.NewSheet(sheetName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create worksheet"})
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	if err := writeContributionSheet(f, sheetName, contributions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build worksheet"})
		return
	}

	serveWorkbook(c, f, fmt.Sprintf("Contributions_%s.xlsx", year))
}

// ExportContributionsWorkbookHandler exports every year, one sheet per year.
func ExportContributionsWorkbookHandler(c *gin.Context) {
	var contributions []models.Contribution
	err := config.DB.Preload("Association").
		Joins("JOIN associations ON associations.id = contributions.association_id").
		Order("contributions.year, associations.abbr").
		Find(&contributions).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contributions"})
		return
	}

	groups := groupContributionsByYear(contributions)
	if len(groups) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No contributions found to export"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	for i, group := range groups {
		sheetName := fmt.Sprintf("Contributions %s", group.Year)
		index, err := f.NewSheet(sheetName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create worksheet"})
			return
		}
		if i == 0 {
			f.SetActiveSheet(index)
		}
		if err := writeContributionSheet(f, sheetName, group.Contributions); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build worksheet"})
			return
		}
	}
	f.DeleteSheet("Sheet1")

	serveWorkbook(c, f, "Contributions_all_years.xlsx")
}

const contributionsDocumentTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Contributions {year}</title></head>
<body>
<h1>ASAPCUT Contributions Report — {year}</h1>
<table border="1" cellspacing="0" cellpadding="4">
<tr><th>Association</th><th>Members</th><th>Amount Paid</th><th>Allocation</th><th>Payment Date</th><th>Balance</th></tr>
{rows}
<tr><th>Total</th><th>{totalMembers}</th><th>{totalPaid}</th><th>{totalAllocation}</th><th></th><th>{totalBalance}</th></tr>
</table>
</body>
</html>`

// ContributionsDocumentHandler renders the per-year contribution report as a
// downloadable document.
func ContributionsDocumentHandler(c *gin.Context) {
	year := c.Param("year")

	contributions, err := loadContributionsForYear(year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contributions"})
		return
	}

	var rows strings.Builder
	var totalMembers int
	var totalPaid, totalAllocation, totalBalance int64
	for _, contribution := range contributions {
		totalMembers += contribution.Association.MemberNumber
		totalPaid += contribution.AmountPaid
		totalAllocation += contribution.Allocation
		totalBalance += contribution.Balance
		rows.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%s</td><td>%d</td></tr>\n",
			contribution.Association.Abbr,
			contribution.Association.MemberNumber,
			contribution.AmountPaid,
			contribution.Allocation,
			formatPaymentDate(contribution),
			contribution.Balance,
		))
	}

	replacer := strings.NewReplacer(
		"{year}", year,
		"{rows}", rows.String(),
		"{totalMembers}", fmt.Sprint(totalMembers),
		"{totalPaid}", fmt.Sprint(totalPaid),
		"{totalAllocation}", fmt.Sprint(totalAllocation),
		"{totalBalance}", fmt.Sprint(totalBalance),
	)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"Contributions_%s.html\"", year))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(replacer.Replace(contributionsDocumentTemplate)))
}
