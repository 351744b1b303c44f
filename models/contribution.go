package models

import (
	"time"

	"gorm.io/gorm"
)

// Contribution records one association's dues for one financial year.
// Allocation is always MemberNumber * monthly rate * 12 at the time of the
// write, and Balance is always Allocation - AmountPaid. A nil PaymentDate
// means "no date recorded".
type Contribution struct {
	gorm.Model
	Allocation  int64      `json:"allocation" gorm:"not null"`
	AmountPaid  int64      `json:"amountPaid" gorm:"not null"`
	Balance     int64      `json:"balance" gorm:"not null"`
	PaymentDate *time.Time `json:"paymentDate"`

	AssociationID uint   `json:"associationId" gorm:"not null;uniqueIndex:idx_contribution_assoc_year"`
	Year          string `json:"year" gorm:"size:9;not null;uniqueIndex:idx_contribution_assoc_year"`

	Association Association `json:"association,omitempty" gorm:"foreignKey:AssociationID;constraint:OnDelete:CASCADE"`
}

// ContributionUpload is the append-only audit log of import attempts. One
// record per readable file, regardless of how many rows failed.
type ContributionUpload struct {
	gorm.Model
	FileURL      string `json:"fileUrl" gorm:"not null"`
	Year         string `json:"year" gorm:"size:9;not null"`
	UploadedByID uint   `json:"uploadedById"`

	UploadedBy User `json:"uploadedBy,omitempty" gorm:"foreignKey:UploadedByID"`
}
