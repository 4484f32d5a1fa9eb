package models

import (
	"time"

	"gorm.io/datatypes"
)

// PracticeKind is the skill a practice module trains.
type PracticeKind string

// SubmissionStatus is the grading state of a practice submission.
type SubmissionStatus string

const (
	// PracticeListening pairs a media file with answer slots.
	PracticeListening PracticeKind = "listening"
	// PracticeWriting asks for free text reviewed by the creator.
	PracticeWriting PracticeKind = "writing"
	// PracticeReading pairs a passage with answer slots.
	PracticeReading PracticeKind = "reading"

	// SubmissionGraded was scored automatically.
	SubmissionGraded SubmissionStatus = "GRADED"
	// SubmissionPendingReview waits for the creator's review.
	SubmissionPendingReview SubmissionStatus = "PENDING_REVIEW"
	// SubmissionReviewed was scored by the creator.
	SubmissionReviewed SubmissionStatus = "REVIEWED"
)

// Practice is a listening, writing or reading exercise.
type Practice struct {
	ID        uint64                      `gorm:"primaryKey" json:"id"`
	Kind      PracticeKind                `gorm:"type:varchar(20);not null;index" json:"kind"`
	CourseID  *uint64                     `gorm:"index" json:"courseId,omitempty"`
	CreatedBy uint64                      `gorm:"not null;index" json:"createdBy"`
	Title     string                      `gorm:"size:200;not null" json:"title"`
	Prompt    string                      `gorm:"type:text" json:"prompt"`
	MediaURL  string                      `gorm:"size:500" json:"mediaUrl,omitempty"`
	Passage   string                      `gorm:"type:text" json:"passage,omitempty"`
	AnswerKey datatypes.JSONSlice[string] `json:"answerKey,omitempty"`
	CreatedAt time.Time                   `json:"createdAt"`
	UpdatedAt time.Time                   `json:"updatedAt"`
}

// TableName specifies the database table name for the Practice model.
func (Practice) TableName() string {
	return "practices"
}

// IsPracticeKind reports whether k names a known practice kind.
func IsPracticeKind(k PracticeKind) bool {
	return k == PracticeListening || k == PracticeWriting || k == PracticeReading
}

// PracticeSubmission is a learner's answer to a practice.
type PracticeSubmission struct {
	ID         uint64                      `gorm:"primaryKey" json:"id"`
	PracticeID uint64                      `gorm:"not null;index" json:"practiceId"`
	UserID     uint64                      `gorm:"not null;index" json:"userId"`
	Kind       PracticeKind                `gorm:"type:varchar(20);not null" json:"kind"`
	Answers    datatypes.JSONSlice[string] `json:"answers,omitempty"`
	Text       string                      `gorm:"type:text" json:"text,omitempty"`
	WordCount  int                         `json:"wordCount"`
	Score      *int                        `json:"score,omitempty"`
	Feedback   string                      `gorm:"type:text" json:"feedback,omitempty"`
	Status     SubmissionStatus            `gorm:"type:varchar(20);not null" json:"status"`
	ReviewedBy *uint64                     `json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time                  `json:"reviewedAt,omitempty"`
	CreatedAt  time.Time                   `json:"createdAt"`
}

// TableName specifies the database table name for the PracticeSubmission model.
func (PracticeSubmission) TableName() string {
	return "practice_submissions"
}
