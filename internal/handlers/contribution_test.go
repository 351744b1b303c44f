package handlers

import (
	"net/http"
	"strings"
	"testing"

	"asapcut/models"
)

func TestManualEntryBelowMinimumRejected(t *testing.T) {
	db := setupTestDB(t)
	association := seedAssociation(t, db, "CIVE", 25)

	contribution, status, message := addManualContribution(db, ContributionInput{
		AssociationID: association.ID,
		AmountPaid:    400,
		Year:          testYear,
	})
	if contribution != nil {
		t.Fatal("contribution persisted, want rejection")
	}
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if !strings.Contains(message, "cannot be less than 500") {
		t.Errorf("message = %q, want the minimum-amount message", message)
	}

	var count int64
	db.Model(&models.Contribution{}).Count(&count)
	if count != 0 {
		t.Errorf("contributions = %d, want 0", count)
	}
}

func TestManualEntryAtMinimumSucceeds(t *testing.T) {
	db := setupTestDB(t)
	association := seedAssociation(t, db, "CIVE", 25)

	contribution, _, message := addManualContribution(db, ContributionInput{
		AssociationID: association.ID,
		AmountPaid:    500,
		PaymentDate:   "2024-10-01",
		Year:          testYear,
	})
	if contribution == nil {
		t.Fatalf("rejected: %s", message)
	}

	wantAllocation := int64(25 * 500 * 12)
	if contribution.Allocation != wantAllocation {
		t.Errorf("allocation = %d, want %d", contribution.Allocation, wantAllocation)
	}
	if contribution.Balance != wantAllocation-500 {
		t.Errorf("balance = %d, want %d", contribution.Balance, wantAllocation-500)
	}
}

func TestManualEntryOverAllocationRejected(t *testing.T) {
	db := setupTestDB(t)
	association := seedAssociation(t, db, "TINY", 1) // allocation 6000

	contribution, status, message := addManualContribution(db, ContributionInput{
		AssociationID: association.ID,
		AmountPaid:    7000,
		Year:          testYear,
	})
	if contribution != nil {
		t.Fatal("contribution persisted, want rejection")
	}
	if status != http.StatusBadRequest || !strings.Contains(message, "exceed allocation") {
		t.Errorf("status = %d, message = %q", status, message)
	}
}

func TestManualEntryDuplicateYearRejected(t *testing.T) {
	db := setupTestDB(t)
	association := seedAssociation(t, db, "CIVE", 25)

	input := ContributionInput{
		AssociationID: association.ID,
		AmountPaid:    500,
		Year:          testYear,
	}
	if contribution, _, message := addManualContribution(db, input); contribution == nil {
		t.Fatalf("first entry rejected: %s", message)
	}

	contribution, status, _ := addManualContribution(db, input)
	if contribution != nil {
		t.Fatal("duplicate (association, year) persisted")
	}
	if status != http.StatusConflict {
		t.Errorf("status = %d, want 409", status)
	}

	var count int64
	db.Model(&models.Contribution{}).Count(&count)
	if count != 1 {
		t.Errorf("contributions = %d, want 1", count)
	}
}

func TestManualEntryUnknownAssociation(t *testing.T) {
	db := setupTestDB(t)

	contribution, status, _ := addManualContribution(db, ContributionInput{
		AssociationID: 999,
		AmountPaid:    500,
		Year:          testYear,
	})
	if contribution != nil || status != http.StatusNotFound {
		t.Errorf("status = %d, want 404 and no record", status)
	}
}

func TestGroupContributionsByYear(t *testing.T) {
	contributions := []models.Contribution{
		{Year: "2024-2025", AmountPaid: 100, Allocation: 600, Balance: 500,
			Association: models.Association{Abbr: "A", MemberNumber: 10}},
		{Year: "2023-2024", AmountPaid: 200, Allocation: 600, Balance: 400,
			Association: models.Association{Abbr: "B", MemberNumber: 20}},
		{Year: "2024-2025", AmountPaid: 300, Allocation: 1200, Balance: 900,
			Association: models.Association{Abbr: "C", MemberNumber: 30}},
	}

	groups := groupContributionsByYear(contributions)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[0].Year != "2023-2024" || groups[1].Year != "2024-2025" {
		t.Errorf("years not sorted: %s, %s", groups[0].Year, groups[1].Year)
	}

	latest := groups[1]
	if latest.TotalMembers != 40 || latest.TotalPaid != 400 ||
		latest.TotalAllocation != 1800 || latest.TotalBalance != 1400 {
		t.Errorf("2024-2025 totals = %+v", latest)
	}
}
