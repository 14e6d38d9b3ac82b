package models

import "gorm.io/gorm"

const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	gorm.Model
	Email          string `gorm:"unique;not null" json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	HashedPassword string `gorm:"not null" json:"-"`
	Role           string `gorm:"default:teacher" json:"role"` // teacher, student, admin
	IsActive       bool   `gorm:"default:true" json:"is_active"`
}

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleTeacher, RoleStudent, RoleAdmin:
		return true
	}
	return false
}
