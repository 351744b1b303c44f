package models

import "gorm.io/gorm"

// Association is a member organisation of the federation. Deleting the
// parent university cascades to its associations and their contributions.
type Association struct {
	gorm.Model
	Name         string `json:"name" gorm:"size:150;not null"`
	Abbr         string `json:"abbr" gorm:"size:10;uniqueIndex;not null"`
	MemberNumber int    `json:"memberNumber" gorm:"not null"`
	LogoURL      string `json:"logoUrl"`
	UniversityID uint   `json:"universityId" gorm:"not null"`

	University University `json:"university,omitempty" gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE"`
}
