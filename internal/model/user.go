package model

import (
	"time"
)

type UserRole string

const (
	Municipality UserRole = "municipality"
	Admin        UserRole = "admin"
)

// User is a municipality account. One account answers one questionnaire at a
// time; admins only read aggregated results.
// swagger:model User
type User struct {
	BaseModel
	Name       string    `gorm:"size:100;not null" json:"name"`
	Email      string    `gorm:"size:100;unique;not null" json:"email"`
	Password   string    `gorm:"size:100;not null" json:"-"`
	Role       UserRole  `gorm:"type:enum('municipality','admin');default:'municipality'" json:"role"`
	State      string    `gorm:"size:100" json:"state"`
	Population int       `gorm:"default:0" json:"population"`
	Disabled   bool      `gorm:"default:false" json:"disabled"`
	LastLogin  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen   time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
