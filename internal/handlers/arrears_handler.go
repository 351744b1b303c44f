package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"asapcut/config"
	"asapcut/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ArrearsRow is one association's outstanding total across all years.
type ArrearsRow struct {
	Abbr  string `json:"abbr"`
	Total int64  `json:"total"`
}

// aggregateArrears sums balances per association across the given
// contributions. Pure: it never touches the database and the same input
// always yields the same alphabetically-ordered rows and grand total.
func aggregateArrears(contributions []models.Contribution) ([]ArrearsRow, int64) {
	byAbbr := make(map[string]int64)
	for _, contribution := range contributions {
		byAbbr[contribution.Association.Abbr] += contribution.Balance
	}

	rows := make([]ArrearsRow, 0, len(byAbbr))
	for abbr, total := range byAbbr {
		rows = append(rows, ArrearsRow{Abbr: abbr, Total: total})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Abbr < rows[j].Abbr })

	var grandTotal int64
	for _, row := range rows {
		grandTotal += row.Total
	}
	return rows, grandTotal
}

func loadAllContributions() ([]models.Contribution, error) {
	var contributions []models.Contribution
	err := config.DB.Preload("Association").Find(&contributions).Error
	return contributions, err
}

// ListArrearsHandler returns per-association arrears totals and the grand
// total.
func ListArrearsHandler(c *gin.Context) {
	contributions, err := loadAllContributions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contributions"})
		return
	}

	rows, grandTotal := aggregateArrears(contributions)
	c.JSON(http.StatusOK, gin.H{
		"data":       rows,
		"grandTotal": grandTotal,
		"hasArrears": len(rows) > 0,
	})
}

// ExportArrearsExcelHandler exports the arrears summary as xlsx.
func ExportArrearsExcelHandler(c *gin.Context) {
	contributions, err := loadAllContributions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contributions"})
		return
	}
	rows, grandTotal := aggregateArrears(contributions)

	f := excelize.NewFile()
	defer f.Close()
	sheetName := "Arrears Report"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create worksheet"})
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"#", "Association", "Total Arrears"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, row := range rows {
		rowNum := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowNum), row.Abbr)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowNum), row.Total)
	}
	totalRow := len(rows) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", totalRow), "Grand Total")
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", totalRow), grandTotal)

	serveWorkbook(c, f, "arrears_report.xlsx")
}

const arrearsDocumentTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Arrears Report</title></head>
<body>
<h1>ASAPCUT Arrears Report</h1>
<table border="1" cellspacing="0" cellpadding="4">
<tr><th>#</th><th>Association</th><th>Total Arrears</th></tr>
{rows}
<tr><th></th><th>Grand Total</th><th>{grandTotal}</th></tr>
</table>
</body>
</html>`

// ArrearsDocumentHandler renders the arrears summary as a downloadable
// document.
func ArrearsDocumentHandler(c *gin.Context) {
	contributions, err := loadAllContributions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contributions"})
		return
	}
	rows, grandTotal := aggregateArrears(contributions)

	var rowsHTML strings.Builder
	for i, row := range rows {
		rowsHTML.WriteString(fmt.Sprintf(
			"<tr><td>%d</td><td>%s</td><td>%d</td></tr>\n", i+1, row.Abbr, row.Total))
	}

	replacer := strings.NewReplacer(
		"{rows}", rowsHTML.String(),
		"{grandTotal}", fmt.Sprint(grandTotal),
	)

	c.Header("Content-Disposition", "attachment; filename=\"arrears_report.html\"")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(replacer.Replace(arrearsDocumentTemplate)))
}
