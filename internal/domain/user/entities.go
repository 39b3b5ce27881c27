package user

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

type Role string

const (
	RoleStudent     Role = "student"
	RoleAdmin       Role = "admin"
	RoleEmployer    Role = "employer"
	RoleInstitution Role = "institution"
)

type User struct {
	ID              uint64    `gorm:"primaryKey;column:id" json:"id"`
	Name            string    `gorm:"size:128" json:"name"`
	Email           string    `gorm:"size:128;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash    string    `gorm:"size:128;column:password_hash" json:"-"`
	Role            Role      `gorm:"size:16" json:"role"`
	Active          bool      `gorm:"default:false" json:"active"`
	StudentID       string    `gorm:"size:32;column:student_id" json:"student_id,omitempty"`
	InstitutionName string    `gorm:"size:128;column:institution_name" json:"institution_name,omitempty"`
	EmployerName    string    `gorm:"size:128;column:employer_name" json:"employer_name,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
