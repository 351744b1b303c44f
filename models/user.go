package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username string `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// UserProfile carries the federation-specific attributes of a user. One
// profile per user.
type UserProfile struct {
	gorm.Model
	UserID        uint   `json:"userId" gorm:"uniqueIndex;not null"`
	Sex           string `json:"sex" gorm:"size:8"`
	Phone         string `json:"phone" gorm:"size:10;uniqueIndex"`
	PostalAddress string `json:"postalAddress" gorm:"size:45"`
	PhotoURL      string `json:"photoUrl"`
	LevelID       *uint  `json:"levelId"`
	AssociationID uint   `json:"associationId"`
	PositionID    uint   `json:"positionId"`

	User        User        `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Level       *Level      `json:"level,omitempty" gorm:"foreignKey:LevelID"`
	Association Association `json:"association,omitempty" gorm:"foreignKey:AssociationID;constraint:OnDelete:CASCADE"`
	Position    Position    `json:"position,omitempty" gorm:"foreignKey:PositionID"`
}

// UserLog is an append-only activity trail.
type UserLog struct {
	gorm.Model
	UserID   uint   `json:"userId" gorm:"not null"`
	Activity string `json:"activity" gorm:"type:text"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
