package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/leadlab/inventory-service/internal/cache"
	"github.com/leadlab/inventory-service/internal/events"
	"github.com/leadlab/inventory-service/internal/inventories"
	"github.com/leadlab/inventory-service/internal/models"
	"github.com/leadlab/inventory-service/internal/repositories"
	"github.com/leadlab/inventory-service/internal/validator"
)

// SubmissionService drives a user's submission through an inventory's
// pages and scores it on completion.
type SubmissionService interface {
	// GetPage returns the page the user should answer next, resuming
	// an in-progress submission.
	GetPage(ctx context.Context, userID string, inventoryID int) (*PageResponse, error)

	// SubmitPage persists one page of answers. Submitting the final
	// page computes and persists the metrics atomically with the
	// answers and marks the submission complete.
	SubmitPage(ctx context.Context, req *SubmitPageRequest, userID string) (*SubmitPageResponse, error)

	// Review returns the computed metrics and their display
	// presentation for a completed submission.
	Review(ctx context.Context, userID string, inventoryID int) (*ReviewResponse, error)

	// Progress reports the user's status for every inventory.
	Progress(ctx context.Context, userID string) ([]*InventoryProgress, error)
}

type SubmitPageRequest struct {
	InventoryID int            `json:"inventory_id" validate:"inventory_id"`
	Page        int            `json:"page" validate:"min=0"`
	Answers     map[int]string `json:"answers" validate:"required"`
}

type PageResponse struct {
	InventoryID   int                     `json:"inventory_id"`
	InventoryName string                  `json:"inventory_name"`
	Status        models.SubmissionStatus `json:"status"`
	Page          int                     `json:"page"`
	PageCount     int                     `json:"page_count"`
	Questions     []inventories.Question  `json:"questions,omitempty"`
}

type SubmitPageResponse struct {
	SubmissionID int                     `json:"submission_id"`
	InventoryID  int                     `json:"inventory_id"`
	Status       models.SubmissionStatus `json:"status"`

	// NextPage is meaningful only while Status is in_progress.
	NextPage  int `json:"next_page"`
	PageCount int `json:"page_count"`
}

type ReviewResponse struct {
	InventoryID   int                       `json:"inventory_id"`
	InventoryName string                    `json:"inventory_name"`
	CompletedAt   *time.Time                `json:"completed_at"`
	Metrics       []inventories.MetricValue `json:"metrics"`
	Presentation  *inventories.Presentation `json:"presentation"`
}

type InventoryProgress struct {
	InventoryID   int                     `json:"inventory_id"`
	InventoryName string                  `json:"inventory_name"`
	Status        models.SubmissionStatus `json:"status"`
	CurrentPage   int                     `json:"current_page"`
	PageCount     int                     `json:"page_count"`
	Started       bool                    `json:"started"`
}

type submissionService struct {
	repo      repositories.Repository
	registry  *inventories.Registry
	publisher events.EventPublisher
	cache     cache.CacheService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSubmissionService(
	repo repositories.Repository,
	registry *inventories.Registry,
	publisher events.EventPublisher,
	cacheService cache.CacheService,
	logger *slog.Logger,
	v *validator.Validator,
) SubmissionService {
	return &submissionService{
		repo:      repo,
		registry:  registry,
		publisher: publisher,
		cache:     cacheService,
		logger:    logger,
		validator: v,
	}
}

func (s *submissionService) GetPage(ctx context.Context, userID string, inventoryID int) (*PageResponse, error) {
	inv, ok := s.registry.ByID(inventoryID)
	if !ok {
		return nil, ErrUnknownInventory
	}

	submission, err := s.repo.Submission().GetByUserAndInventory(ctx, userID, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	resp := &PageResponse{
		InventoryID:   inv.ID(),
		InventoryName: inv.Name(),
		Status:        models.SubmissionInProgress,
		PageCount:     inv.PageCount(),
	}

	if submission != nil && submission.IsComplete() {
		resp.Status = models.SubmissionComplete
		resp.Page = inv.PageCount()
		return resp, nil
	}

	if submission != nil {
		resp.Page = submission.CurrentPage
	}
	resp.Questions = inv.Questions(resp.Page)
	return resp, nil
}

func (s *submissionService) SubmitPage(ctx context.Context, req *SubmitPageRequest, userID string) (*SubmitPageResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	inv, ok := s.registry.ByID(req.InventoryID)
	if !ok {
		return nil, ErrUnknownInventory
	}

	s.logger.Info("Submitting inventory page",
		"user_id", userID,
		"inventory_id", req.InventoryID,
		"page", req.Page)

	if errs := s.validator.Answers().ValidatePage(inv, req.Page, req.Answers); len(errs) > 0 {
		return nil, errs
	}

	finalPage := req.Page == inv.PageCount()-1
	var (
		submission *models.Submission
		started    bool
		metricKeys []string
	)

	// State checks run inside the transaction under a row lock, so
	// concurrent submits of the same page serialize and the loser sees
	// the advanced CurrentPage. The unique (user, inventory) index
	// covers the no-row case.
	err := s.repo.Transaction(ctx, func(tx repositories.Repository) error {
		var err error
		submission, err = tx.Submission().GetByUserAndInventoryForUpdate(ctx, userID, req.InventoryID)
		if err != nil {
			return fmt.Errorf("failed to get submission: %w", err)
		}

		if submission != nil && submission.IsComplete() {
			return ErrSubmissionComplete
		}

		expectedPage := 0
		if submission != nil {
			expectedPage = submission.CurrentPage
		}
		if req.Page != expectedPage {
			return ErrPageOutOfSequence
		}

		if submission == nil {
			started = true
			submission = &models.Submission{
				UserID:      userID,
				InventoryID: req.InventoryID,
				Status:      models.SubmissionInProgress,
				CurrentPage: 0,
			}
			if err := tx.Submission().Create(ctx, submission); err != nil {
				return fmt.Errorf("failed to create submission: %w", err)
			}
		}

		answers := answerRows(submission.ID, inv, req.Page, req.Answers)
		if err := tx.Answer().CreateBatch(ctx, answers); err != nil {
			return fmt.Errorf("failed to persist answers: %w", err)
		}

		if !finalPage {
			submission.CurrentPage = req.Page + 1
			if err := tx.Submission().Update(ctx, submission); err != nil {
				return fmt.Errorf("failed to advance submission: %w", err)
			}
			return nil
		}

		keys, err := s.completeSubmission(ctx, tx, submission, inv)
		if err != nil {
			return err
		}
		metricKeys = keys
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifySubmission(ctx, submission, inv, req.Page, started, finalPage, metricKeys)

	resp := &SubmitPageResponse{
		SubmissionID: int(submission.ID),
		InventoryID:  inv.ID(),
		Status:       submission.Status,
		NextPage:     submission.CurrentPage,
		PageCount:    inv.PageCount(),
	}
	return resp, nil
}

// completeSubmission scores the full answer set and marks the
// submission complete. Runs inside the page-submission transaction so
// a scoring failure rolls the final page back with it.
func (s *submissionService) completeSubmission(ctx context.Context, tx repositories.Repository, submission *models.Submission, inv inventories.Inventory) ([]string, error) {
	stored, err := tx.Answer().GetBySubmission(ctx, submission.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}

	answerSet := make(map[int]string, len(stored))
	for _, answer := range stored {
		answerSet[answer.QuestionID] = answer.Content
	}

	metrics, err := inv.ComputeMetrics(answerSet)
	if err != nil {
		return nil, fmt.Errorf("failed to compute metrics: %w", err)
	}

	keys := make([]string, 0, len(metrics))
	for key := range metrics {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]*models.Metric, 0, len(metrics))
	for _, key := range keys {
		rows = append(rows, &models.Metric{
			SubmissionID: submission.ID,
			Key:          key,
			Value:        metrics[key],
		})
	}
	if err := tx.Metric().CreateBatch(ctx, rows); err != nil {
		return nil, fmt.Errorf("failed to persist metrics: %w", err)
	}

	now := time.Now().UTC()
	submission.Status = models.SubmissionComplete
	submission.CompletedAt = &now
	if err := tx.Submission().Update(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to complete submission: %w", err)
	}

	return keys, nil
}

// notifySubmission publishes lifecycle events and, on completion,
// invalidates the statistics cache for the user's organization.
// Failures here are logged, not returned: the submission is already
// committed.
func (s *submissionService) notifySubmission(ctx context.Context, submission *models.Submission, inv inventories.Inventory, page int, started, completed bool, metricKeys []string) {
	eventType := events.EventSubmissionPageSaved
	if completed {
		eventType = events.EventSubmissionCompleted
	} else if started {
		eventType = events.EventSubmissionStarted
	}

	event := events.NewSubmissionEvent(eventType, submission.UserID, submission.ID, inv.ID(), page)
	event.MetricKeys = metricKeys
	if err := s.publisher.PublishSubmissionEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish submission event",
			"event_type", eventType,
			"submission_id", submission.ID,
			"error", err)
	}

	if !completed {
		return
	}

	user, err := s.repo.User().GetByID(ctx, submission.UserID)
	if err != nil {
		s.logger.Error("Failed to resolve user for cache invalidation",
			"user_id", submission.UserID,
			"error", err)
		return
	}

	patterns := []string{
		fmt.Sprintf("statistics:org:%d:*", user.OrganizationID),
		"statistics:all:*",
	}
	for _, pattern := range patterns {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			s.logger.Error("Failed to invalidate statistics cache",
				"pattern", pattern,
				"error", err)
		}
	}
}

func (s *submissionService) Review(ctx context.Context, userID string, inventoryID int) (*ReviewResponse, error) {
	inv, ok := s.registry.ByID(inventoryID)
	if !ok {
		return nil, ErrUnknownInventory
	}

	submission, err := s.repo.Submission().GetByUserAndInventory(ctx, userID, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil || !submission.IsComplete() {
		return nil, ErrSubmissionNotFound
	}

	rows, err := s.repo.Metric().GetBySubmission(ctx, submission.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load metrics: %w", err)
	}

	metrics := make(map[string]float64, len(rows))
	ordered := make([]inventories.MetricValue, 0, len(rows))
	for _, row := range rows {
		metrics[row.Key] = row.Value
		ordered = append(ordered, inventories.MetricValue{Key: row.Key, Value: row.Value})
	}

	return &ReviewResponse{
		InventoryID:   inv.ID(),
		InventoryName: inv.Name(),
		CompletedAt:   submission.CompletedAt,
		Metrics:       ordered,
		Presentation:  inv.Present(metrics),
	}, nil
}

func (s *submissionService) Progress(ctx context.Context, userID string) ([]*InventoryProgress, error) {
	all := s.registry.All()
	progress := make([]*InventoryProgress, 0, len(all))

	for _, inv := range all {
		submission, err := s.repo.Submission().GetByUserAndInventory(ctx, userID, inv.ID())
		if err != nil {
			return nil, fmt.Errorf("failed to get submission for inventory %d: %w", inv.ID(), err)
		}

		entry := &InventoryProgress{
			InventoryID:   inv.ID(),
			InventoryName: inv.Name(),
			Status:        models.SubmissionInProgress,
			PageCount:     inv.PageCount(),
		}
		if submission != nil {
			entry.Started = true
			entry.Status = submission.Status
			entry.CurrentPage = submission.CurrentPage
			if submission.IsComplete() {
				entry.CurrentPage = inv.PageCount()
			}
		}
		progress = append(progress, entry)
	}
	return progress, nil
}

// answerRows builds the storage rows for one page in question order.
func answerRows(submissionID uint, inv inventories.Inventory, page int, answers map[int]string) []*models.Answer {
	questions := inv.Questions(page)
	rows := make([]*models.Answer, 0, len(questions))
	for _, question := range questions {
		rows = append(rows, &models.Answer{
			SubmissionID: submissionID,
			QuestionID:   question.ID,
			Content:      answers[question.ID],
		})
	}
	return rows
}
