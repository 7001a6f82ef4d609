package models

import (
	"time"
)

type SubmissionStatus string

const (
	SubmissionInProgress SubmissionStatus = "in_progress"
	SubmissionComplete   SubmissionStatus = "complete"
)

// Submission is one user's attempt at one inventory. It is created on
// the first page submission and advances one page per submit until it
// completes; it is never deleted. The unique index enforces at most
// one submission per (user, inventory).
type Submission struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	UserID      string           `json:"user_id" gorm:"not null;size:255;uniqueIndex:idx_submissions_user_inventory,priority:1"`
	InventoryID int              `json:"inventory_id" gorm:"not null;index;uniqueIndex:idx_submissions_user_inventory,priority:2"`
	Status      SubmissionStatus `json:"status" gorm:"not null;default:in_progress;size:20;index"`

	// Zero-based page the user will submit next. Meaningful only while
	// Status is in_progress.
	CurrentPage int `json:"current_page" gorm:"not null;default:0"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`

	User    User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Answers []Answer `json:"answers,omitempty" gorm:"foreignKey:SubmissionID"`
	Metrics []Metric `json:"metrics,omitempty" gorm:"foreignKey:SubmissionID"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) IsComplete() bool {
	return s.Status == SubmissionComplete
}

// Answer is one raw response. Written once, never mutated. Answers for
// a multi-page inventory accumulate under the same submission.
type Answer struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	SubmissionID uint   `json:"submission_id" gorm:"not null;index"`
	QuestionID   int    `json:"question_id" gorm:"not null"`
	Content      string `json:"content" gorm:"not null;size:1000"`

	CreatedAt time.Time `json:"created_at"`

	Submission Submission `json:"-" gorm:"foreignKey:SubmissionID"`
}

func (Answer) TableName() string {
	return "answers"
}

// Metric is one computed score. The full metric set for a submission
// is written in a single batch when the submission completes and is
// immutable afterwards.
type Metric struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	SubmissionID uint    `json:"submission_id" gorm:"not null;index"`
	Key          string  `json:"key" gorm:"not null;size:50"`
	Value        float64 `json:"value" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`

	Submission Submission `json:"-" gorm:"foreignKey:SubmissionID"`
}

func (Metric) TableName() string {
	return "metrics"
}
