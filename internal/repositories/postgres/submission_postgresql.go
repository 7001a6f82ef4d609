package postgres

import (
	"context"
	"errors"

	"github.com/leadlab/inventory-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmissionPostgreSQL struct {
	db *gorm.DB
}

func NewSubmissionPostgreSQL(db *gorm.DB) *SubmissionPostgreSQL {
	return &SubmissionPostgreSQL{db: db}
}

func (s *SubmissionPostgreSQL) Create(ctx context.Context, submission *models.Submission) error {
	return s.db.WithContext(ctx).Create(submission).Error
}

func (s *SubmissionPostgreSQL) Update(ctx context.Context, submission *models.Submission) error {
	return s.db.WithContext(ctx).Save(submission).Error
}

func (s *SubmissionPostgreSQL) GetByUserAndInventory(ctx context.Context, userID string, inventoryID int) (*models.Submission, error) {
	var submission models.Submission
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND inventory_id = ?", userID, inventoryID).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &submission, nil
}

func (s *SubmissionPostgreSQL) GetByUserAndInventoryForUpdate(ctx context.Context, userID string, inventoryID int) (*models.Submission, error) {
	var submission models.Submission
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND inventory_id = ?", userID, inventoryID).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &submission, nil
}

func (s *SubmissionPostgreSQL) CountCompleted(ctx context.Context, inventoryID int, sessionIDs []uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Submission{}).
		Joins("JOIN users ON users.id = submissions.user_id").
		Where("submissions.inventory_id = ? AND submissions.status = ? AND users.session_id IN ?",
			inventoryID, models.SubmissionComplete, sessionIDs).
		Count(&count).Error
	return count, err
}

func (s *SubmissionPostgreSQL) GetCompleted(ctx context.Context, inventoryID int, sessionIDs []uint) ([]*models.Submission, error) {
	var submissions []*models.Submission
	err := s.db.WithContext(ctx).
		Joins("JOIN users ON users.id = submissions.user_id").
		Where("submissions.inventory_id = ? AND submissions.status = ? AND users.session_id IN ?",
			inventoryID, models.SubmissionComplete, sessionIDs).
		Preload("Metrics").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}
