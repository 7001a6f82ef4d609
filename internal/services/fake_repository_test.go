package services

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/leadlab/inventory-service/internal/models"
	"github.com/leadlab/inventory-service/internal/repositories"
)

// fakeRepository is an in-memory repositories.Repository used by the
// service tests. Transactions run the callback against the same
// state; rollback behavior is not simulated.
type fakeRepository struct {
	submissions   []*models.Submission
	answers       []*models.Answer
	metrics       []*models.Metric
	organizations map[uint]*models.Organization
	sessions      map[uint]*models.Session
	users         map[string]*models.User

	nextSubmissionID uint
	nextAnswerID     uint
	nextMetricID     uint

	// beforeTransaction, when set, runs as the transaction opens. It
	// stands in for a concurrent writer that commits first and whose
	// effect the locked in-transaction read must observe.
	beforeTransaction func()
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		organizations: make(map[uint]*models.Organization),
		sessions:      make(map[uint]*models.Session),
		users:         make(map[string]*models.User),
	}
}

func (f *fakeRepository) Submission() repositories.SubmissionRepository     { return &fakeSubmissions{f} }
func (f *fakeRepository) Answer() repositories.AnswerRepository             { return &fakeAnswers{f} }
func (f *fakeRepository) Metric() repositories.MetricRepository             { return &fakeMetrics{f} }
func (f *fakeRepository) Organization() repositories.OrganizationRepository { return &fakeOrgs{f} }
func (f *fakeRepository) Session() repositories.SessionRepository           { return &fakeSessions{f} }
func (f *fakeRepository) User() repositories.UserRepository                 { return &fakeUsers{f} }

func (f *fakeRepository) Transaction(ctx context.Context, fn func(repositories.Repository) error) error {
	if f.beforeTransaction != nil {
		f.beforeTransaction()
	}
	return fn(f)
}

// ===== seeding helpers =====

func (f *fakeRepository) addOrganization(id uint, name string) *models.Organization {
	org := &models.Organization{ID: id, Name: name}
	f.organizations[id] = org
	return org
}

func (f *fakeRepository) addSession(id, orgID uint, name string) *models.Session {
	session := &models.Session{ID: id, Name: name, OrganizationID: orgID}
	f.sessions[id] = session
	return session
}

func (f *fakeRepository) addUser(id string, orgID, sessionID uint, staff bool) *models.User {
	user := &models.User{
		ID:             id,
		FullName:       "User " + id,
		Email:          id + "@example.com",
		IsStaff:        staff,
		OrganizationID: orgID,
		SessionID:      sessionID,
	}
	if org, ok := f.organizations[orgID]; ok {
		user.Organization = *org
	}
	if session, ok := f.sessions[sessionID]; ok {
		user.Session = *session
	}
	f.users[id] = user
	return user
}

// addCompletedSubmission seeds a completed submission with its metric
// rows, bypassing the page state machine.
func (f *fakeRepository) addCompletedSubmission(userID string, inventoryID int, metrics map[string]float64) *models.Submission {
	f.nextSubmissionID++
	submission := &models.Submission{
		ID:          f.nextSubmissionID,
		UserID:      userID,
		InventoryID: inventoryID,
		Status:      models.SubmissionComplete,
	}
	f.submissions = append(f.submissions, submission)

	for key, value := range metrics {
		f.nextMetricID++
		f.metrics = append(f.metrics, &models.Metric{
			ID:           f.nextMetricID,
			SubmissionID: submission.ID,
			Key:          key,
			Value:        value,
		})
	}
	return submission
}

func (f *fakeRepository) userSessionIn(userID string, sessionIDs []uint) bool {
	user, ok := f.users[userID]
	if !ok {
		return false
	}
	for _, id := range sessionIDs {
		if user.SessionID == id {
			return true
		}
	}
	return false
}

func (f *fakeRepository) metricsFor(submissionID uint) []models.Metric {
	var out []models.Metric
	for _, metric := range f.metrics {
		if metric.SubmissionID == submissionID {
			out = append(out, *metric)
		}
	}
	return out
}

// ===== submissions =====

type fakeSubmissions struct{ f *fakeRepository }

func (r *fakeSubmissions) Create(ctx context.Context, submission *models.Submission) error {
	for _, existing := range r.f.submissions {
		if existing.UserID == submission.UserID && existing.InventoryID == submission.InventoryID {
			return fmt.Errorf("duplicate submission for user %s inventory %d", submission.UserID, submission.InventoryID)
		}
	}
	r.f.nextSubmissionID++
	submission.ID = r.f.nextSubmissionID
	r.f.submissions = append(r.f.submissions, submission)
	return nil
}

func (r *fakeSubmissions) Update(ctx context.Context, submission *models.Submission) error {
	for i, existing := range r.f.submissions {
		if existing.ID == submission.ID {
			r.f.submissions[i] = submission
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeSubmissions) GetByUserAndInventory(ctx context.Context, userID string, inventoryID int) (*models.Submission, error) {
	for _, submission := range r.f.submissions {
		if submission.UserID == userID && submission.InventoryID == inventoryID {
			return submission, nil
		}
	}
	return nil, nil
}

func (r *fakeSubmissions) GetByUserAndInventoryForUpdate(ctx context.Context, userID string, inventoryID int) (*models.Submission, error) {
	return r.GetByUserAndInventory(ctx, userID, inventoryID)
}

func (r *fakeSubmissions) CountCompleted(ctx context.Context, inventoryID int, sessionIDs []uint) (int64, error) {
	var count int64
	for _, submission := range r.f.submissions {
		if submission.InventoryID == inventoryID && submission.IsComplete() &&
			r.f.userSessionIn(submission.UserID, sessionIDs) {
			count++
		}
	}
	return count, nil
}

func (r *fakeSubmissions) GetCompleted(ctx context.Context, inventoryID int, sessionIDs []uint) ([]*models.Submission, error) {
	var out []*models.Submission
	for _, submission := range r.f.submissions {
		if submission.InventoryID == inventoryID && submission.IsComplete() &&
			r.f.userSessionIn(submission.UserID, sessionIDs) {
			loaded := *submission
			loaded.Metrics = r.f.metricsFor(submission.ID)
			out = append(out, &loaded)
		}
	}
	return out, nil
}

// ===== answers =====

type fakeAnswers struct{ f *fakeRepository }

func (r *fakeAnswers) CreateBatch(ctx context.Context, answers []*models.Answer) error {
	for _, answer := range answers {
		r.f.nextAnswerID++
		answer.ID = r.f.nextAnswerID
		r.f.answers = append(r.f.answers, answer)
	}
	return nil
}

func (r *fakeAnswers) GetBySubmission(ctx context.Context, submissionID uint) ([]*models.Answer, error) {
	var out []*models.Answer
	for _, answer := range r.f.answers {
		if answer.SubmissionID == submissionID {
			out = append(out, answer)
		}
	}
	return out, nil
}

// ===== metrics =====

type fakeMetrics struct{ f *fakeRepository }

func (r *fakeMetrics) CreateBatch(ctx context.Context, metrics []*models.Metric) error {
	for _, metric := range metrics {
		r.f.nextMetricID++
		metric.ID = r.f.nextMetricID
		r.f.metrics = append(r.f.metrics, metric)
	}
	return nil
}

func (r *fakeMetrics) GetBySubmission(ctx context.Context, submissionID uint) ([]*models.Metric, error) {
	var out []*models.Metric
	for _, metric := range r.f.metrics {
		if metric.SubmissionID == submissionID {
			out = append(out, metric)
		}
	}
	return out, nil
}

func (r *fakeMetrics) GetForSessions(ctx context.Context, sessionIDs []uint, excludeInventoryIDs []int) ([]*models.Metric, error) {
	excluded := make(map[int]bool, len(excludeInventoryIDs))
	for _, id := range excludeInventoryIDs {
		excluded[id] = true
	}

	var out []*models.Metric
	for _, metric := range r.f.metrics {
		var submission *models.Submission
		for _, s := range r.f.submissions {
			if s.ID == metric.SubmissionID {
				submission = s
				break
			}
		}
		if submission == nil || !submission.IsComplete() || excluded[submission.InventoryID] {
			continue
		}
		if !r.f.userSessionIn(submission.UserID, sessionIDs) {
			continue
		}
		loaded := *metric
		loaded.Submission = *submission
		out = append(out, &loaded)
	}
	return out, nil
}

// ===== organizations / sessions / users =====

type fakeOrgs struct{ f *fakeRepository }

func (r *fakeOrgs) GetByID(ctx context.Context, id uint) (*models.Organization, error) {
	if org, ok := r.f.organizations[id]; ok {
		return org, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrgs) List(ctx context.Context) ([]*models.Organization, error) {
	var out []*models.Organization
	for _, org := range r.f.organizations {
		out = append(out, org)
	}
	return out, nil
}

type fakeSessions struct{ f *fakeRepository }

func (r *fakeSessions) GetByID(ctx context.Context, id uint) (*models.Session, error) {
	if session, ok := r.f.sessions[id]; ok {
		return session, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSessions) List(ctx context.Context) ([]*models.Session, error) {
	var out []*models.Session
	for _, session := range r.f.sessions {
		out = append(out, session)
	}
	return out, nil
}

func (r *fakeSessions) ListByOrganization(ctx context.Context, organizationID uint) ([]*models.Session, error) {
	var out []*models.Session
	for _, session := range r.f.sessions {
		if session.OrganizationID == organizationID {
			out = append(out, session)
		}
	}
	return out, nil
}

type fakeUsers struct{ f *fakeRepository }

func (r *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := r.f.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUsers) ListBySessions(ctx context.Context, sessionIDs []uint) ([]*models.User, error) {
	var out []*models.User
	for _, user := range r.f.users {
		for _, id := range sessionIDs {
			if user.SessionID == id {
				loaded := *user
				loaded.Submissions = nil
				for _, submission := range r.f.submissions {
					if submission.UserID == user.ID && submission.IsComplete() {
						s := *submission
						s.Metrics = r.f.metricsFor(submission.ID)
						loaded.Submissions = append(loaded.Submissions, s)
					}
				}
				out = append(out, &loaded)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
