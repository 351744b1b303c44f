package handlers

import (
	"strings"
	"testing"

	"asapcut/models"
)

const testYear = "2024-2025"

var importHeader = []string{"Association", "Members", "Amount Paid", "Payment Date"}

func TestReconcileMissingColumnAbortsBatch(t *testing.T) {
	db := setupTestDB(t)
	seedAssociation(t, db, "CIVE", 25)

	rows := [][]string{
		{"Association", "Members"}, // no Amount Paid
		{"CIVE", "25"},
	}

	_, err := reconcileContributionRows(db, rows, testYear)
	if err == nil {
		t.Fatal("expected a missing-column error, got nil")
	}
	if !strings.Contains(err.Error(), "Amount Paid") {
		t.Errorf("error %q does not name the missing column", err)
	}

	var count int64
	db.Model(&models.Contribution{}).Count(&count)
	if count != 0 {
		t.Errorf("contributions written = %d, want 0", count)
	}
}

func TestReconcileCreatesContribution(t *testing.T) {
	db := setupTestDB(t)
	association := seedAssociation(t, db, "CIVE", 25)

	rows := [][]string{
		importHeader,
		{"CIVE", "25", "60000", "2024-10-01"},
	}

	summary, err := reconcileContributionRows(db, rows, testYear)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if summary.Created != 1 || summary.Updated != 0 || len(summary.Errors) != 0 {
		t.Fatalf("summary = %+v, want 1 created", summary)
	}

	var contribution models.Contribution
	if err := db.Where("association_id = ? AND year = ?", association.ID, testYear).
		First(&contribution).Error; err != nil {
		t.Fatalf("load contribution: %v", err)
	}

	wantAllocation := int64(25 * 500 * 12)
	if contribution.Allocation != wantAllocation {
		t.Errorf("allocation = %d, want %d", contribution.Allocation, wantAllocation)
	}
	if contribution.AmountPaid != 60000 {
		t.Errorf("amount paid = %d, want 60000", contribution.AmountPaid)
	}
	if contribution.Balance != wantAllocation-60000 {
		t.Errorf("balance = %d, want %d", contribution.Balance, wantAllocation-60000)
	}
	if contribution.PaymentDate == nil {
		t.Error("payment date = nil, want 2024-10-01")
	}
}

func TestReconcileRerunUpdatesNotDuplicates(t *testing.T) {
	db := setupTestDB(t)
	association := seedAssociation(t, db, "CIVE", 25)

	rows := [][]string{
		importHeader,
		{"CIVE", "25", "60000", "2024-10-01"},
	}

	if _, err := reconcileContributionRows(db, rows, testYear); err != nil {
		t.Fatalf("first run: %v", err)
	}

	// Second run replaces the amount (last-write-wins), never accumulates.
	rows[1][2] = "90000"
	summary, err := reconcileContributionRows(db, rows, testYear)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if summary.Created != 0 || summary.Updated != 1 {
		t.Fatalf("summary = %+v, want 1 updated", summary)
	}

	var count int64
	db.Model(&models.Contribution{}).
		Where("association_id = ? AND year = ?", association.ID, testYear).
		Count(&count)
	if count != 1 {
		t.Fatalf("rows for (association, year) = %d, want 1", count)
	}

	var contribution models.Contribution
	db.Where("association_id = ? AND year = ?", association.ID, testYear).First(&contribution)
	if contribution.AmountPaid != 90000 {
		t.Errorf("amount paid = %d, want 90000 (replaced, not accumulated)", contribution.AmountPaid)
	}
	if contribution.Balance != contribution.Allocation-90000 {
		t.Errorf("balance = %d, want allocation - amount = %d",
			contribution.Balance, contribution.Allocation-90000)
	}
}

func TestReconcileUnknownAssociationSkipsRowOnly(t *testing.T) {
	db := setupTestDB(t)
	seedAssociation(t, db, "CIVE", 25)

	rows := [][]string{
		importHeader,
		{"NOPE", "10", "5000", ""},
		{"CIVE", "25", "60000", ""},
	}

	summary, err := reconcileContributionRows(db, rows, testYear)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if summary.Created != 1 {
		t.Errorf("created = %d, want 1 (batch must continue past the bad row)", summary.Created)
	}
	if len(summary.Errors) != 1 || !strings.Contains(summary.Errors[0], "NOPE") {
		t.Errorf("errors = %v, want one naming 'NOPE'", summary.Errors)
	}
}

func TestReconcileRejectsAmountOverAllocation(t *testing.T) {
	db := setupTestDB(t)
	seedAssociation(t, db, "CIVE", 1) // allocation 6000

	rows := [][]string{
		importHeader,
		{"CIVE", "1", "7000", ""},
	}

	summary, err := reconcileContributionRows(db, rows, testYear)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if summary.Created != 0 || summary.Updated != 0 {
		t.Errorf("summary = %+v, want nothing written", summary)
	}
	if len(summary.Errors) != 1 || !strings.Contains(summary.Errors[0], "exceeds allocation") {
		t.Errorf("errors = %v, want an exceeds-allocation error", summary.Errors)
	}

	var count int64
	db.Model(&models.Contribution{}).Count(&count)
	if count != 0 {
		t.Errorf("contributions written = %d, want 0", count)
	}
}

func TestReconcileUpdatesMemberCountDrift(t *testing.T) {
	db := setupTestDB(t)
	association := seedAssociation(t, db, "CIVE", 25)

	rows := [][]string{
		importHeader,
		{"CIVE", "30", "60000", ""},
	}

	if _, err := reconcileContributionRows(db, rows, testYear); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	var reloaded models.Association
	db.First(&reloaded, association.ID)
	if reloaded.MemberNumber != 30 {
		t.Errorf("member number = %d, want 30", reloaded.MemberNumber)
	}

	// Allocation follows the row's member count, not the stale stored one.
	var contribution models.Contribution
	db.Where("association_id = ?", association.ID).First(&contribution)
	if want := int64(30 * 500 * 12); contribution.Allocation != want {
		t.Errorf("allocation = %d, want %d", contribution.Allocation, want)
	}
}

func TestReconcileBadNumbersSkipRow(t *testing.T) {
	db := setupTestDB(t)
	seedAssociation(t, db, "CIVE", 25)

	rows := [][]string{
		importHeader,
		{"CIVE", "many", "60000", ""},
		{"CIVE", "25", "a lot", ""},
		{"CIVE", "25", "-100", ""},
	}

	summary, err := reconcileContributionRows(db, rows, testYear)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(summary.Errors) != 3 {
		t.Errorf("errors = %v, want 3", summary.Errors)
	}
	if summary.Created != 0 {
		t.Errorf("created = %d, want 0", summary.Created)
	}
}

func TestReconcilePaymentDateSentinel(t *testing.T) {
	db := setupTestDB(t)
	association := seedAssociation(t, db, "CIVE", 25)

	rows := [][]string{
		importHeader,
		{"CIVE", "25", "60000", "sometime in october"},
	}

	if _, err := reconcileContributionRows(db, rows, testYear); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	var contribution models.Contribution
	db.Where("association_id = ?", association.ID).First(&contribution)
	if contribution.PaymentDate != nil {
		t.Errorf("payment date = %v, want nil sentinel for an unparseable cell", contribution.PaymentDate)
	}
}

func TestUploadSummaryMessagesCap(t *testing.T) {
	summary := uploadSummary{
		Errors: []string{"e1", "e2", "e3", "e4", "e5", "e6", "e7"},
	}

	messages := summary.Messages()
	if len(messages) != maxSurfacedErrors+1 {
		t.Fatalf("messages = %d, want %d", len(messages), maxSurfacedErrors+1)
	}
	if messages[maxSurfacedErrors] != "... and 2 more errors" {
		t.Errorf("trailer = %q, want '... and 2 more errors'", messages[maxSurfacedErrors])
	}
}

func TestParseAmountCell(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1200", 1200, false},
		{"1,200", 1200, false},
		{"1200.00", 1200, false},
		{" 60000 ", 60000, false},
		{"0", 0, false},
		{"-5", 0, true},
		{"12.50", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := parseAmountCell(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseAmountCell(%q) error = nil, want error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseAmountCell(%q) error = %v, want nil", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseAmountCell(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParsePaymentDate(t *testing.T) {
	if parsePaymentDate("") != nil {
		t.Error("blank cell should be the nil sentinel")
	}
	if parsePaymentDate("garbage") != nil {
		t.Error("unparseable cell should be the nil sentinel")
	}
	got := parsePaymentDate("2024-10-01")
	if got == nil || got.Year() != 2024 || got.Month() != 10 || got.Day() != 1 {
		t.Errorf("parsePaymentDate(2024-10-01) = %v", got)
	}
}
