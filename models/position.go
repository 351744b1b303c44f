package models

// Position is an organisational post within the federation leadership.
type Position struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:45;uniqueIndex;not null"`
}

// CanonicalPositions are seeded at migration time. Access checks compare
// against these names exactly, never by substring.
var CanonicalPositions = []string{
	"President",
	"Vice President",
	"General Secretary",
	"Deputy Secretary",
	"Treasurer",
	"Leader",
}

// Positions allowed to upload contribution files, create reports and view
// the member register.
var PrivilegedPositions = []string{"President", "General Secretary", "Treasurer"}

// Level is an academic level attached to a user profile.
type Level struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:35;not null"`
	Abbr string `json:"abbr" gorm:"size:10;not null"`
}
