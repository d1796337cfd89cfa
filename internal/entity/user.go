package entity

import (
	"time"

	"gorm.io/datatypes"
)

// User is a dashboard user. Authentication is a mocked session layer, so
// the record carries no credentials, only profile data.
type User struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Email       string         `gorm:"unique;not null" json:"email"`
	RiskProfile datatypes.JSON `json:"risk_profile,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}
