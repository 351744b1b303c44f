package models

import (
	"time"

	"gorm.io/gorm"
)

// Report is an organisational report shared with the leadership. Append-only.
type Report struct {
	gorm.Model
	UserID      uint   `json:"userId" gorm:"not null"`
	ReportAbout string `json:"reportAbout" gorm:"size:150;not null"`
	FileURL     string `json:"fileUrl" gorm:"not null"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// ReportView marks a report as seen by a user. The unique (user, report)
// pair makes "mark as viewed" idempotent.
type ReportView struct {
	gorm.Model
	UserID   uint      `json:"userId" gorm:"not null;uniqueIndex:idx_report_view_user_report"`
	ReportID uint      `json:"reportId" gorm:"not null;uniqueIndex:idx_report_view_user_report"`
	ViewedAt time.Time `json:"viewedAt"`

	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Report Report `json:"report,omitempty" gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
}
