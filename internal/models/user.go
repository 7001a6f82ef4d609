package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is a participant account. IDs are strings so that externally
// managed identities (Casdoor) can share the keyspace with local ones.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;size:255"`
	FullName string `json:"full_name" gorm:"not null;size:100"`
	Email    string `json:"email" gorm:"uniqueIndex;not null;size:255"`

	// Staff users see statistics across every organization and bypass
	// the minimum-submission suppression threshold.
	IsStaff bool `json:"is_staff" gorm:"default:false"`

	OrganizationID uint `json:"organization_id" gorm:"not null;index"`
	SessionID      uint `json:"session_id" gorm:"not null;index"`

	// Demographics captured at registration
	Gender         *string        `json:"gender" gorm:"size:1"`
	Major          *string        `json:"major" gorm:"size:100"`
	Education      *string        `json:"education" gorm:"size:2"`
	GraduationDate *time.Time     `json:"graduation_date"`
	Preferences    datatypes.JSON `json:"preferences" gorm:"type:jsonb"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	Session      Session      `json:"session,omitempty" gorm:"foreignKey:SessionID"`
	Submissions  []Submission `json:"submissions,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}
