package models

import "time"

// CourseStatus is the publication state of a course.
type CourseStatus string

const (
	// CourseStatusDraft is only visible to its owner.
	CourseStatusDraft CourseStatus = "DRAFT"
	// CourseStatusPublished is visible to everyone.
	CourseStatusPublished CourseStatus = "PUBLISHED"
	// CourseStatusArchived is hidden from listings but kept for enrolled learners.
	CourseStatusArchived CourseStatus = "ARCHIVED"
)

// Course is the root of the course content tree.
type Course struct {
	// ID is the unique identifier for the course.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// OwnerID is the user who created the course and may edit it.
	OwnerID uint64 `gorm:"not null;index" json:"ownerId"`
	// Title is the display title.
	Title string `gorm:"size:200;not null" json:"title"`
	// Description is a free text summary.
	Description string `gorm:"type:text" json:"description"`
	// Level is a free form difficulty label such as "beginner".
	Level string `gorm:"size:50" json:"level"`
	// Status is the publication state.
	Status    CourseStatus `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`

	// Topics are the ordered chapters of the course.
	Topics []CourseTopic `gorm:"foreignKey:CourseID" json:"topics,omitempty"`
}

// TableName specifies the database table name for the Course model.
func (Course) TableName() string {
	return "courses"
}

// IsCourseStatus reports whether s names a known course status.
func IsCourseStatus(s CourseStatus) bool {
	return s == CourseStatusDraft || s == CourseStatusPublished || s == CourseStatusArchived
}
