package models

import "time"

// ContentType is the variant of a topic content row.
type ContentType string

const (
	// ContentVideo points at a video by URL.
	ContentVideo ContentType = "video"
	// ContentWritten is an article body.
	ContentWritten ContentType = "written"
	// ContentInterview is an interview transcript or question set.
	ContentInterview ContentType = "interview"
	// ContentQuiz hosts exactly one quiz.
	ContentQuiz ContentType = "quiz"
)

// CourseTopicContent is a typed leaf of the course content tree.
type CourseTopicContent struct {
	// ID is the unique identifier for the content.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// TopicID is the owning topic.
	TopicID uint64 `gorm:"not null;index" json:"topicId"`
	// CourseID is denormalised from the topic for ownership checks.
	CourseID uint64 `gorm:"not null;index" json:"courseId"`
	// Type is one of video, written, interview or quiz.
	Type ContentType `gorm:"type:varchar(20);not null" json:"type"`
	// Title is the display title.
	Title string `gorm:"size:200;not null" json:"title"`
	// Body holds written or interview text.
	Body string `gorm:"type:text" json:"body,omitempty"`
	// VideoURL is required for video content.
	VideoURL string `gorm:"size:500" json:"videoUrl,omitempty"`
	// Position orders contents inside a topic.
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the CourseTopicContent model.
func (CourseTopicContent) TableName() string {
	return "course_topic_contents"
}

// IsContentType reports whether t names a known content type.
func IsContentType(t ContentType) bool {
	switch t {
	case ContentVideo, ContentWritten, ContentInterview, ContentQuiz:
		return true
	default:
		return false
	}
}
