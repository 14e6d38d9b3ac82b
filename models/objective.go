package models

import "gorm.io/gorm"

// Objective is a reusable learning goal. Titles are unique across the system
// so the same goal is never duplicated between sequences.
type Objective struct {
	gorm.Model
	Title       string     `gorm:"size:255;not null;unique" json:"title"`
	Description string     `json:"description"`
	UserID      uint       `gorm:"not null" json:"user_id"`
	Sequences   []Sequence `gorm:"many2many:sequence_objective_association" json:"sequences,omitempty"`
	Sessions    []Session  `gorm:"many2many:session_objective_association" json:"sessions,omitempty"`
}
