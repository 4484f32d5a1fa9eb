package organization

type createInput struct {
	Name   string `json:"name" validate:"required,max=150"`
	Email  string `json:"email" validate:"required,email,max=255"`
	Domain string `json:"domain" validate:"max=255"`
}

type updateInput struct {
	OrganizationID uint64  `json:"organizationId" validate:"required"`
	Name           *string `json:"name" validate:"omitempty,min=1,max=150"`
	Email          *string `json:"email" validate:"omitempty,email,max=255"`
	Domain         *string `json:"domain" validate:"omitempty,max=255"`
	Status         *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type organizationRef struct {
	OrganizationID uint64 `json:"organizationId" validate:"required"`
}

type memberInput struct {
	OrganizationID uint64 `json:"organizationId" validate:"required"`
	UserID         uint64 `json:"userId" validate:"required"`
	Role           string `json:"role" validate:"required,oneof=ADMIN MANAGER INSTRUCTOR MEMBER"`
}

type removeUserInput struct {
	OrganizationID uint64 `json:"organizationId" validate:"required"`
	UserID         uint64 `json:"userId" validate:"required"`
}

type inviteInput struct {
	OrganizationID uint64 `json:"organizationId" validate:"required"`
	Email          string `json:"email" validate:"required,email,max=255"`
	Role           string `json:"role" validate:"required,oneof=ADMIN MANAGER INSTRUCTOR MEMBER"`
}

type tokenInput struct {
	Token string `json:"token" validate:"required,max=128"`
}

type cancelInviteInput struct {
	InviteID uint64 `json:"inviteId" validate:"required"`
}
