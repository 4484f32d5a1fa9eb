package models

import "time"

// CourseTopic is a chapter of a course.
type CourseTopic struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	CourseID  uint64    `gorm:"not null;index" json:"courseId"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Contents []CourseTopicContent `gorm:"foreignKey:TopicID" json:"contents,omitempty"`
}

// TableName specifies the database table name for the CourseTopic model.
func (CourseTopic) TableName() string {
	return "course_topics"
}
