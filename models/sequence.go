package models

import "gorm.io/gorm"

// Sequence is a thematic unit within a Progression.
type Sequence struct {
	gorm.Model
	Title         string      `gorm:"not null" json:"title"`
	Description   string      `json:"description"`
	UserID        uint        `gorm:"not null" json:"user_id"`
	ProgressionID uint        `gorm:"not null" json:"progression_id"`
	Sessions      []Session   `json:"sessions,omitempty"`
	Objectives    []Objective `gorm:"many2many:sequence_objective_association" json:"objectives,omitempty"`
}
