package course

import "github.com/lmsforge/lms-backend/internal/apperr"

var (
	// ErrCourseNotFound is returned when the course does not exist or is not visible.
	ErrCourseNotFound = apperr.NotFound("Course not found")
	// ErrTopicNotFound is returned when the topic does not exist.
	ErrTopicNotFound = apperr.NotFound("Topic not found")
	// ErrContentNotFound is returned when the content does not exist.
	ErrContentNotFound = apperr.NotFound("Content not found")
	// ErrNotOwner is returned when the caller does not own the course.
	ErrNotOwner = apperr.Forbidden("Only the course owner can perform this action")
	// ErrInvalidStatus is returned for an unknown course status.
	ErrInvalidStatus = apperr.Validation("Invalid status")
	// ErrInvalidContentType is returned for an unknown content type.
	ErrInvalidContentType = apperr.Validation("Invalid content type")
	// ErrVideoURLRequired is returned for video content without a URL.
	ErrVideoURLRequired = apperr.Validation("videoUrl is required for video content")
	// ErrAlreadyEnrolled is returned when the user already takes the course.
	ErrAlreadyEnrolled = apperr.Conflict("You are already enrolled in this course")
	// ErrNotEnrolled is returned when unenrolling from a course the user does not take.
	ErrNotEnrolled = apperr.NotFound("You are not enrolled in this course")
	// ErrCourseNotPublished is returned when enrolling into a course that is not published.
	ErrCourseNotPublished = apperr.Validation("Course is not published")
)
