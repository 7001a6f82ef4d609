package repositories

import (
	"context"
	"errors"

	"github.com/leadlab/inventory-service/internal/models"
	"gorm.io/gorm"
)

// SubmissionRepository persists inventory submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	Update(ctx context.Context, submission *models.Submission) error

	// GetByUserAndInventory returns the user's submission for the
	// inventory, or nil when none exists yet.
	GetByUserAndInventory(ctx context.Context, userID string, inventoryID int) (*models.Submission, error)

	// GetByUserAndInventoryForUpdate is GetByUserAndInventory with a
	// row lock held for the rest of the surrounding transaction, so
	// concurrent page submits serialize on the submission row.
	GetByUserAndInventoryForUpdate(ctx context.Context, userID string, inventoryID int) (*models.Submission, error)

	// CountCompleted counts completed submissions for one inventory
	// across the given sessions.
	CountCompleted(ctx context.Context, inventoryID int, sessionIDs []uint) (int64, error)

	// GetCompleted returns completed submissions for one inventory
	// across the given sessions, metrics preloaded.
	GetCompleted(ctx context.Context, inventoryID int, sessionIDs []uint) ([]*models.Submission, error)
}

// AnswerRepository persists raw answers. Answers are append-only.
type AnswerRepository interface {
	CreateBatch(ctx context.Context, answers []*models.Answer) error
	GetBySubmission(ctx context.Context, submissionID uint) ([]*models.Answer, error)
}

// MetricRepository persists computed metrics. A submission's metrics
// are written once, as a batch, and never mutated.
type MetricRepository interface {
	CreateBatch(ctx context.Context, metrics []*models.Metric) error
	GetBySubmission(ctx context.Context, submissionID uint) ([]*models.Metric, error)

	// GetForSessions returns metrics of completed submissions by users
	// in the given sessions, skipping the excluded inventories.
	// Submissions are preloaded for inventory grouping.
	GetForSessions(ctx context.Context, sessionIDs []uint, excludeInventoryIDs []int) ([]*models.Metric, error)
}

type OrganizationRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Organization, error)
	List(ctx context.Context) ([]*models.Organization, error)
}

type SessionRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Session, error)
	List(ctx context.Context) ([]*models.Session, error)
	ListByOrganization(ctx context.Context, organizationID uint) ([]*models.Session, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)

	// ListBySessions returns users registered in the given sessions
	// with submissions and their metrics preloaded, for export.
	ListBySessions(ctx context.Context, sessionIDs []uint) ([]*models.User, error)
}

// Repository aggregates the per-model repositories and provides
// transactional execution: every repository access inside fn runs in
// one database transaction.
type Repository interface {
	Submission() SubmissionRepository
	Answer() AnswerRepository
	Metric() MetricRepository
	Organization() OrganizationRepository
	Session() SessionRepository
	User() UserRepository

	Transaction(ctx context.Context, fn func(Repository) error) error
}

// IsNotFoundError reports whether err is the backing store's missing
// record error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
