// Package models holds the gorm table definitions.
package models

// All returns every table model in migration order.
func All() []any {
	return []any{
		&User{},
		&Organization{},
		&OrganizationUser{},
		&OrganizationGroup{},
		&OrganizationUserGroup{},
		&OrganizationUserInvite{},
		&Course{},
		&CourseTopic{},
		&CourseTopicContent{},
		&CourseEnrollment{},
		&Quiz{},
		&QuizQuestion{},
		&QuizAttempt{},
		&CourseStudyGroup{},
		&CourseStudyGroupUser{},
		&CourseStudyGroupContent{},
		&Note{},
		&NoteFile{},
		&Practice{},
		&PracticeSubmission{},
	}
}
