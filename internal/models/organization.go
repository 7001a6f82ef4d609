package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Organization groups users for demographics and statistics. Every
// registered user belongs to exactly one organization.
type Organization struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null;size:120;uniqueIndex" validate:"required,min=1,max=120"`

	// Entry code required at registration for selective approval
	Code string `json:"-" gorm:"not null;size:120"`

	CreatedBy string    `json:"created_by" gorm:"not null;size:255;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Sessions []Session `json:"sessions,omitempty" gorm:"foreignKey:OrganizationID"`
}

func (Organization) TableName() string {
	return "organizations"
}

// Session is one cohort within an organization. Organizations may run
// several sessions and compare their aggregated results.
type Session struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Name           string `json:"name" gorm:"not null;size:120" validate:"required,min=1,max=120"`
	OrganizationID uint   `json:"organization_id" gorm:"not null;index;uniqueIndex:idx_sessions_org_name,priority:1"`

	// Hex UUID used in registration URLs
	UUID string `json:"uuid" gorm:"size:32;uniqueIndex"`

	CreatedBy string    `json:"created_by" gorm:"not null;size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Organization Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}

func (Session) TableName() string {
	return "sessions"
}

// BeforeCreate assigns the registration UUID on first save.
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == "" {
		u, err := uuid.NewUUID()
		if err != nil {
			return err
		}
		s.UUID = hexUUID(u)
	}
	return nil
}

func hexUUID(u uuid.UUID) string {
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 0, 32)
	for _, b := range u {
		out = append(out, hexdigits[b>>4], hexdigits[b&0x0f])
	}
	return string(out)
}
