package orggroup

type createInput struct {
	OrganizationID uint64 `json:"organizationId" validate:"required"`
	Name           string `json:"name" validate:"required,max=150"`
	Description    string `json:"description" validate:"max=500"`
}

type updateInput struct {
	GroupID     uint64  `json:"groupId" validate:"required"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=150"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Status      *string `json:"status" validate:"omitempty,oneof=ACTIVE ARCHIVED"`
}

type groupRef struct {
	GroupID uint64 `json:"groupId" validate:"required"`
}

type addUsersInput struct {
	GroupID uint64   `json:"groupId" validate:"required"`
	UserIDs []uint64 `json:"userIds" validate:"required,min=1,dive,required"`
	Role    string   `json:"role" validate:"omitempty,oneof=MEMBER ADMIN"`
}

type removeUserInput struct {
	GroupID uint64 `json:"groupId" validate:"required"`
	UserID  uint64 `json:"userId" validate:"required"`
}
