package models

import (
	"time"

	"gorm.io/datatypes"
)

// Quiz is the question set attached to a quiz content row.
type Quiz struct {
	// ID is the unique identifier for the quiz.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// ContentID is the hosting content; one quiz per content.
	ContentID uint64 `gorm:"not null;uniqueIndex" json:"contentId"`
	// CourseID is denormalised from the content for ownership and enrollment checks.
	CourseID uint64 `gorm:"not null;index" json:"courseId"`
	// Title is the display title.
	Title string `gorm:"size:200;not null" json:"title"`
	// PassingScore is the minimum percentage to pass.
	PassingScore int `gorm:"not null" json:"passingScore"`
	// CreatedBy is the course owner who authored the quiz.
	CreatedBy uint64    `gorm:"not null" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

// TableName specifies the database table name for the Quiz model.
func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion is a single choice question. The correct option never leaves the server.
type QuizQuestion struct {
	ID            uint64                      `gorm:"primaryKey" json:"id"`
	QuizID        uint64                      `gorm:"not null;index" json:"quizId"`
	Prompt        string                      `gorm:"type:text;not null" json:"prompt"`
	Options       datatypes.JSONSlice[string] `json:"options"`
	CorrectOption int                         `gorm:"not null" json:"-"`
	Position      int                         `gorm:"not null;default:0" json:"position"`
}

// TableName specifies the database table name for the QuizQuestion model.
func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizAnswer is one selected option inside an attempt.
type QuizAnswer struct {
	QuestionID     uint64 `json:"questionId"`
	SelectedOption int    `json:"selectedOption"`
	Correct        bool   `json:"correct"`
}

// QuizAttempt is a graded submission of a quiz.
type QuizAttempt struct {
	ID             uint64                          `gorm:"primaryKey" json:"id"`
	QuizID         uint64                          `gorm:"not null;index" json:"quizId"`
	UserID         uint64                          `gorm:"not null;index" json:"userId"`
	Answers        datatypes.JSONSlice[QuizAnswer] `json:"answers"`
	CorrectCount   int                             `json:"correctCount"`
	TotalQuestions int                             `json:"totalQuestions"`
	Score          int                             `json:"score"`
	Passed         bool                            `json:"passed"`
	CreatedAt      time.Time                       `json:"createdAt"`
}

// TableName specifies the database table name for the QuizAttempt model.
func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
