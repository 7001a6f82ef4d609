package postgres

import (
	"context"

	"github.com/leadlab/inventory-service/internal/models"
	"gorm.io/gorm"
)

type AnswerPostgreSQL struct {
	db *gorm.DB
}

func NewAnswerPostgreSQL(db *gorm.DB) *AnswerPostgreSQL {
	return &AnswerPostgreSQL{db: db}
}

func (a *AnswerPostgreSQL) CreateBatch(ctx context.Context, answers []*models.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	return a.db.WithContext(ctx).Create(answers).Error
}

func (a *AnswerPostgreSQL) GetBySubmission(ctx context.Context, submissionID uint) ([]*models.Answer, error) {
	var answers []*models.Answer
	err := a.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("question_id").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}
