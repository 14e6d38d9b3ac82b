package models

import "gorm.io/gorm"

// Progression is a top-level teaching plan owned by a user.
type Progression struct {
	gorm.Model
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	UserID      uint       `gorm:"not null" json:"user_id"`
	Sequences   []Sequence `json:"sequences,omitempty"`
}
