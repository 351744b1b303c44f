package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"asapcut/config"
	"asapcut/models"

	"github.com/divan/num2words"
	"github.com/gin-gonic/gin"
)

const invoiceDocumentTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Invoice {invoiceNumber}</title></head>
<body>
<h1>ASAPCUT Federation — Contribution Invoice</h1>
<p>Invoice No: <strong>{invoiceNumber}</strong><br>Date: {currentDate}<br>Financial Year: {year}</p>
<table border="1" cellspacing="0" cellpadding="4">
<tr><th>Association</th><th>Members</th><th>Amount Paid</th><th>Allocation</th><th>Balance</th></tr>
{rows}
<tr><th>Total</th><th>{totalMembers}</th><th>{totalPaid}</th><th>{totalAllocation}</th><th>{totalBalance}</th></tr>
</table>
<p>Outstanding balance in words: <em>{balanceInWords}</em></p>
</body>
</html>`

// balanceInWords spells out an amount for the invoice footer.
func balanceInWords(amount int64) string {
	words := num2words.Convert(int(amount))
	if words == "" {
		words = "zero"
	}
	return strings.ToUpper(words[:1]) + words[1:] + " Tanzanian Shillings"
}

// InvoiceDocumentHandler renders the yearly invoice document with totals and
// the outstanding balance in words.
func InvoiceDocumentHandler(c *gin.Context) {
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
			"<tr><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td></tr>\n",
			contribution.Association.Abbr,
			contribution.Association.MemberNumber,
			contribution.AmountPaid,
			contribution.Allocation,
			contribution.Balance,
		))
	}

	var invoiceCount int64
	config.DB.Model(&models.Contribution{}).Where("year = ?", year).Count(&invoiceCount)
	invoiceNumber := fmt.Sprintf("%05d/%s", invoiceCount+1, year)

	replacer := strings.NewReplacer(
		"{invoiceNumber}", invoiceNumber,
		"{currentDate}", time.Now().Format("02 January 2006"),
		"{year}", year,
		"{rows}", rows.String(),
		"{totalMembers}", fmt.Sprint(totalMembers),
		"{totalPaid}", fmt.Sprint(totalPaid),
		"{totalAllocation}", fmt.Sprint(totalAllocation),
		"{totalBalance}", fmt.Sprint(totalBalance),
		"{balanceInWords}", balanceInWords(totalBalance),
	)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"Invoice_%s.html\"", year))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(replacer.Replace(invoiceDocumentTemplate)))
}
