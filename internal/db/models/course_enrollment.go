package models

import "time"

// CourseEnrollment records that a user takes a course. Unique on (course, user).
type CourseEnrollment struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	CourseID   uint64    `gorm:"not null;uniqueIndex:idx_course_user" json:"courseId"`
	UserID     uint64    `gorm:"not null;uniqueIndex:idx_course_user;index" json:"userId"`
	EnrolledAt time.Time `gorm:"not null" json:"enrolledAt"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

// TableName specifies the database table name for the CourseEnrollment model.
func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}
