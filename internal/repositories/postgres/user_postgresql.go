package postgres

import (
	"context"

	"github.com/leadlab/inventory-service/internal/models"
	"gorm.io/gorm"
)

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) *UserPostgreSQL {
	return &UserPostgreSQL{db: db}
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) ListBySessions(ctx context.Context, sessionIDs []uint) ([]*models.User, error) {
	var users []*models.User
	err := u.db.WithContext(ctx).
		Where("session_id IN ?", sessionIDs).
		Preload("Organization").
		Preload("Session").
		Preload("Submissions", "status = ?", models.SubmissionComplete).
		Preload("Submissions.Metrics").
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
