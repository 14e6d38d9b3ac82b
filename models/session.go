package models

import (
	"time"

	"gorm.io/gorm"
)

// Session is a single scheduled teaching unit within a Sequence.
type Session struct {
	gorm.Model
	Title       string      `gorm:"not null" json:"title"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
	Duration    int         `json:"duration"` // minutes
	Notes       string      `json:"notes"`
	UserID      uint        `gorm:"not null" json:"user_id"`
	SequenceID  uint        `gorm:"not null" json:"sequence_id"`
	Objectives  []Objective `gorm:"many2many:session_objective_association" json:"objectives,omitempty"`
	Resources   []Resource  `gorm:"many2many:session_resource" json:"resources,omitempty"`
}
