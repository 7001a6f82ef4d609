package postgres

import (
	"context"

	"github.com/leadlab/inventory-service/internal/models"
	"gorm.io/gorm"
)

type MetricPostgreSQL struct {
	db *gorm.DB
}

func NewMetricPostgreSQL(db *gorm.DB) *MetricPostgreSQL {
	return &MetricPostgreSQL{db: db}
}

func (m *MetricPostgreSQL) CreateBatch(ctx context.Context, metrics []*models.Metric) error {
	if len(metrics) == 0 {
		return nil
	}
	return m.db.WithContext(ctx).Create(metrics).Error
}

func (m *MetricPostgreSQL) GetBySubmission(ctx context.Context, submissionID uint) ([]*models.Metric, error) {
	var metrics []*models.Metric
	err := m.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("key").
		Find(&metrics).Error
	if err != nil {
		return nil, err
	}
	return metrics, nil
}

func (m *MetricPostgreSQL) GetForSessions(ctx context.Context, sessionIDs []uint, excludeInventoryIDs []int) ([]*models.Metric, error) {
	query := m.db.WithContext(ctx).
		Joins("JOIN submissions ON submissions.id = metrics.submission_id").
		Joins("JOIN users ON users.id = submissions.user_id").
		Where("submissions.status = ? AND users.session_id IN ?", models.SubmissionComplete, sessionIDs)

	if len(excludeInventoryIDs) > 0 {
		query = query.Where("submissions.inventory_id NOT IN ?", excludeInventoryIDs)
	}

	var metrics []*models.Metric
	if err := query.Preload("Submission").Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}
