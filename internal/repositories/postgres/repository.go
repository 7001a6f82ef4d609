package postgres

import (
	"context"

	"github.com/leadlab/inventory-service/internal/repositories"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB

	submission   *SubmissionPostgreSQL
	answer       *AnswerPostgreSQL
	metric       *MetricPostgreSQL
	organization *OrganizationPostgreSQL
	session      *SessionPostgreSQL
	user         *UserPostgreSQL
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		submission:   NewSubmissionPostgreSQL(db),
		answer:       NewAnswerPostgreSQL(db),
		metric:       NewMetricPostgreSQL(db),
		organization: NewOrganizationPostgreSQL(db),
		session:      NewSessionPostgreSQL(db),
		user:         NewUserPostgreSQL(db),
	}
}

func (r *Repository) Submission() repositories.SubmissionRepository     { return r.submission }
func (r *Repository) Answer() repositories.AnswerRepository             { return r.answer }
func (r *Repository) Metric() repositories.MetricRepository             { return r.metric }
func (r *Repository) Organization() repositories.OrganizationRepository { return r.organization }
func (r *Repository) Session() repositories.SessionRepository           { return r.session }
func (r *Repository) User() repositories.UserRepository                 { return r.user }

// Transaction runs fn against a repository bound to one database
// transaction, committing on nil and rolling back on error.
func (r *Repository) Transaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
