package postgres

import (
	"context"

	"github.com/leadlab/inventory-service/internal/models"
	"gorm.io/gorm"
)

type OrganizationPostgreSQL struct {
	db *gorm.DB
}

func NewOrganizationPostgreSQL(db *gorm.DB) *OrganizationPostgreSQL {
	return &OrganizationPostgreSQL{db: db}
}

func (o *OrganizationPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Organization, error) {
	var organization models.Organization
	if err := o.db.WithContext(ctx).First(&organization, id).Error; err != nil {
		return nil, err
	}
	return &organization, nil
}

func (o *OrganizationPostgreSQL) List(ctx context.Context) ([]*models.Organization, error) {
	var organizations []*models.Organization
	if err := o.db.WithContext(ctx).Order("name").Find(&organizations).Error; err != nil {
		return nil, err
	}
	return organizations, nil
}

type SessionPostgreSQL struct {
	db *gorm.DB
}

func NewSessionPostgreSQL(db *gorm.DB) *SessionPostgreSQL {
	return &SessionPostgreSQL{db: db}
}

func (s *SessionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Session, error) {
	var session models.Session
	if err := s.db.WithContext(ctx).First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionPostgreSQL) List(ctx context.Context) ([]*models.Session, error) {
	var sessions []*models.Session
	if err := s.db.WithContext(ctx).Order("id").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *SessionPostgreSQL) ListByOrganization(ctx context.Context, organizationID uint) ([]*models.Session, error) {
	var sessions []*models.Session
	err := s.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("id").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
