package models

import "time"

// StudyGroupRole is the role of a member inside a course study group.
type StudyGroupRole string

const (
	// StudyGroupOwner created the group; only the owner may delete it.
	StudyGroupOwner StudyGroupRole = "OWNER"
	// StudyGroupAdmin may edit the group and manage members and content.
	StudyGroupAdmin StudyGroupRole = "ADMIN"
	// StudyGroupMember may share content.
	StudyGroupMember StudyGroupRole = "MEMBER"
)

// CourseStudyGroup is an ad-hoc collaboration group centered on course content,
// independent of organization membership.
type CourseStudyGroup struct {
	// ID is the unique identifier for the study group.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// OwnerID is the creator of the group.
	OwnerID uint64 `gorm:"not null;index" json:"ownerId"`
	// OrganizationID optionally tags the group with an organization.
	OrganizationID *uint64 `gorm:"index" json:"organizationId,omitempty"`
	// Name is the display name.
	Name string `gorm:"size:150;not null" json:"groupName"`
	// Description is free text.
	Description string    `gorm:"size:1000" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Members  []CourseStudyGroupUser    `gorm:"foreignKey:StudyGroupID" json:"members,omitempty"`
	Contents []CourseStudyGroupContent `gorm:"foreignKey:StudyGroupID" json:"contents,omitempty"`
}

// TableName specifies the database table name for the CourseStudyGroup model.
func (CourseStudyGroup) TableName() string {
	return "course_study_groups"
}

// CourseStudyGroupUser is a study group membership, unique on (group, user).
type CourseStudyGroupUser struct {
	ID           uint64         `gorm:"primaryKey" json:"id"`
	StudyGroupID uint64         `gorm:"not null;uniqueIndex:idx_study_group_user" json:"courseStudyGroupId"`
	UserID       uint64         `gorm:"not null;uniqueIndex:idx_study_group_user;index" json:"userId"`
	Role         StudyGroupRole `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time      `json:"createdAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the database table name for the CourseStudyGroupUser model.
func (CourseStudyGroupUser) TableName() string {
	return "course_study_group_users"
}

// CourseStudyGroupContent shares a course with a study group, unique on (group, course).
type CourseStudyGroupContent struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	StudyGroupID uint64    `gorm:"not null;uniqueIndex:idx_study_group_course" json:"courseStudyGroupId"`
	CourseID     uint64    `gorm:"not null;uniqueIndex:idx_study_group_course;index" json:"courseId"`
	AddedBy      uint64    `gorm:"not null" json:"addedBy"`
	CreatedAt    time.Time `json:"createdAt"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

// TableName specifies the database table name for the CourseStudyGroupContent model.
func (CourseStudyGroupContent) TableName() string {
	return "course_study_group_contents"
}
