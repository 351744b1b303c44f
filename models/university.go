package models

import "gorm.io/gorm"

// University is a parent institution for member associations.
type University struct {
	gorm.Model
	Name string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Abbr string `json:"abbr" gorm:"size:10;uniqueIndex;not null"`
}
