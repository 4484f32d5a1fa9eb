package studygroup

type saveInput struct {
	CourseStudyGroupID *uint64 `json:"courseStudyGroupId" validate:"omitempty,min=1"`
	GroupName          string  `json:"groupName" validate:"required,max=150"`
	Description        *string `json:"description" validate:"omitempty,max=1000"`
	OrganizationID     *uint64 `json:"organizationId" validate:"omitempty,min=1"`
}

type memberInput struct {
	CourseStudyGroupID uint64 `json:"courseStudyGroupId" validate:"required"`
	UserID             uint64 `json:"userId" validate:"required"`
	Role               string `json:"role" validate:"max=20"`
}

type memberRef struct {
	CourseStudyGroupID uint64 `json:"courseStudyGroupId" validate:"required"`
	UserID             uint64 `json:"userId" validate:"required"`
}

type groupRef struct {
	CourseStudyGroupID uint64 `json:"courseStudyGroupId" validate:"required"`
}

type contentInput struct {
	CourseStudyGroupID uint64 `json:"courseStudyGroupId" validate:"required"`
	CourseID           uint64 `json:"courseId" validate:"required"`
}
